package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/services"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/middleware"
)

// UserController handles reports and the follower graph
type UserController struct {
	moderationService services.ModerationService
	socialService     services.SocialService
}

// NewUserController creates a new UserController
func NewUserController(moderationService services.ModerationService, socialService services.SocialService) *UserController {
	return &UserController{
		moderationService: moderationService,
		socialService:     socialService,
	}
}

// FileReport handles reporting a user
// @Summary Report a user
// @Description Files an abuse report. 5 reports warn the user, 10 reports deactivate a non-staff account.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Reported user ID"
// @Param request body dto.ReportRequest true "Report"
// @Success 201 {object} dto.APIResponse{data=dto.ReportResult} "Report filed"
// @Failure 400 {object} dto.ErrorResponse "Empty reason"
// @Failure 403 {object} dto.ErrorResponse "Cannot report yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 429 {object} dto.ErrorResponse "Too many reports"
// @Router /users/{userId}/reports [post]
func (c *UserController) FileReport(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}
	var req dto.ReportRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.moderationService.FileReport(ctx.Request.Context(), requesterID(ctx), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}

// GetModerationStatus handles the staff view of a user's reports
// @Summary Get moderation status
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.ModerationStatusResponse} "Status retrieved"
// @Failure 403 {object} dto.ErrorResponse "Staff only"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userId}/moderation [get]
func (c *UserController) GetModerationStatus(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	status, err := c.moderationService.GetModerationStatus(ctx.Request.Context(), requesterID(ctx), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// ToggleFollow handles following and unfollowing a user
// @Summary Follow or unfollow a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.FollowResult} "Follow toggled"
// @Failure 403 {object} dto.ErrorResponse "Cannot follow yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userId}/follow [post]
func (c *UserController) ToggleFollow(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	result, err := c.socialService.ToggleFollow(ctx.Request.Context(), requesterID(ctx), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// ListFollowers handles listing the followers of a user
// @Summary List followers
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.FollowListResponse} "Followers retrieved"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userId}/followers [get]
func (c *UserController) ListFollowers(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	list, err := c.socialService.ListFollowers(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list))
}

// ListFollowing handles listing the users a user follows
// @Summary List followed users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.FollowListResponse} "Followed users retrieved"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userId}/following [get]
func (c *UserController) ListFollowing(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	list, err := c.socialService.ListFollowing(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list))
}
