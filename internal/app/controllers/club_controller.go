package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/services"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/middleware"
)

// ClubController handles clubs, memberships and page subscriptions
type ClubController struct {
	clubService   services.ClubService
	socialService services.SocialService
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService, socialService services.SocialService) *ClubController {
	return &ClubController{
		clubService:   clubService,
		socialService: socialService,
	}
}

// CreateClub handles creating a club
// @Summary Create a club
// @Description The creator becomes the first member and admin
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClubRequest true "Club"
// @Success 201 {object} dto.APIResponse{data=dto.ClubResponse} "Club created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 409 {object} dto.ErrorResponse "Club name already taken"
// @Router /clubs [post]
func (c *ClubController) CreateClub(ctx *gin.Context) {
	var req dto.CreateClubRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	club, err := c.clubService.CreateClub(ctx.Request.Context(), requesterID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(club))
}

// GetClub handles retrieving a club
// @Summary Get a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.ClubResponse} "Club retrieved"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /clubs/{clubId} [get]
func (c *ClubController) GetClub(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "clubId")
	if !ok {
		return
	}

	club, err := c.clubService.GetClub(ctx.Request.Context(), requesterID(ctx), clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club))
}

// JoinClub handles joining a club
// @Summary Join a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.MembershipResponse} "Joined"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Failure 409 {object} dto.ErrorResponse "Already a member"
// @Router /clubs/{clubId}/members [post]
func (c *ClubController) JoinClub(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "clubId")
	if !ok {
		return
	}

	membership, err := c.clubService.JoinClub(ctx.Request.Context(), requesterID(ctx), clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(membership))
}

// LeaveClub handles leaving a club
// @Summary Leave a club
// @Tags clubs
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club ID"
// @Success 200 {object} dto.APIResponse{data=dto.MembershipResponse} "Left"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Failure 409 {object} dto.ErrorResponse "Not a member, or the creator"
// @Router /clubs/{clubId}/members [delete]
func (c *ClubController) LeaveClub(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "clubId")
	if !ok {
		return
	}

	membership, err := c.clubService.LeaveClub(ctx.Request.Context(), requesterID(ctx), clubID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(membership))
}

// ManageAdmin handles granting and revoking admin rights
// @Summary Add or remove a club admin
// @Tags clubs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club ID"
// @Param request body dto.AdminRequest true "Admin change"
// @Success 200 {object} dto.APIResponse{data=dto.AdminResponse} "Admin updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid action"
// @Failure 403 {object} dto.ErrorResponse "Only the creator or an admin can do this"
// @Failure 409 {object} dto.ErrorResponse "Target is not a member, or is the creator"
// @Router /clubs/{clubId}/admins [post]
func (c *ClubController) ManageAdmin(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "clubId")
	if !ok {
		return
	}
	var req dto.AdminRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.clubService.ManageAdmin(ctx.Request.Context(), requesterID(ctx), clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// SubscribePage handles subscribing to a page
// @Summary Subscribe to a page
// @Tags pages
// @Produce json
// @Security BearerAuth
// @Param pageId path int true "Page ID"
// @Success 200 {object} dto.APIResponse{data=dto.PageSubscriptionResponse} "Subscribed"
// @Failure 404 {object} dto.ErrorResponse "Page not found"
// @Router /pages/{pageId}/subscribers [post]
func (c *ClubController) SubscribePage(ctx *gin.Context) {
	pageID, ok := parseIDParam(ctx, "pageId")
	if !ok {
		return
	}

	result, err := c.socialService.SubscribePage(ctx.Request.Context(), requesterID(ctx), pageID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// UnsubscribePage handles unsubscribing from a page
// @Summary Unsubscribe from a page
// @Tags pages
// @Produce json
// @Security BearerAuth
// @Param pageId path int true "Page ID"
// @Success 200 {object} dto.APIResponse{data=dto.PageSubscriptionResponse} "Unsubscribed"
// @Failure 404 {object} dto.ErrorResponse "Page not found"
// @Router /pages/{pageId}/subscribers [delete]
func (c *ClubController) UnsubscribePage(ctx *gin.Context) {
	pageID, ok := parseIDParam(ctx, "pageId")
	if !ok {
		return
	}

	result, err := c.socialService.UnsubscribePage(ctx.Request.Context(), requesterID(ctx), pageID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
