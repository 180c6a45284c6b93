package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/services"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/middleware"
)

// PublicationController handles publications, votes and reactions
type PublicationController struct {
	engagementService services.EngagementService
}

// NewPublicationController creates a new PublicationController
func NewPublicationController(engagementService services.EngagementService) *PublicationController {
	return &PublicationController{
		engagementService: engagementService,
	}
}

// CreatePublication handles creating a publication
// @Summary Create a publication
// @Tags publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePublicationRequest true "Publication"
// @Success 201 {object} dto.APIResponse{data=dto.PublicationResponse} "Publication created"
// @Failure 400 {object} dto.ErrorResponse "Empty or invalid content"
// @Failure 403 {object} dto.ErrorResponse "Not a club member"
// @Router /publications [post]
func (c *PublicationController) CreatePublication(ctx *gin.Context) {
	var req dto.CreatePublicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	pub, err := c.engagementService.CreatePublication(ctx.Request.Context(), requesterID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(pub))
}

// GetPublication handles retrieving a publication
// @Summary Get a publication
// @Tags publications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Success 200 {object} dto.APIResponse{data=dto.PublicationResponse} "Publication retrieved"
// @Failure 404 {object} dto.ErrorResponse "Publication not found"
// @Router /publications/{id} [get]
func (c *PublicationController) GetPublication(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	pub, err := c.engagementService.GetPublication(ctx.Request.Context(), requesterID(ctx), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pub))
}

// Vote handles like and dislike toggles
// @Summary Vote on a publication
// @Description "like" or "dislike". Repeating the same vote removes it, the opposite vote replaces it.
// @Tags publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Param request body dto.VoteRequest true "Vote"
// @Success 200 {object} dto.APIResponse{data=dto.VoteResult} "Vote applied"
// @Failure 400 {object} dto.ErrorResponse "Invalid action"
// @Failure 404 {object} dto.ErrorResponse "Publication not found"
// @Router /publications/{id}/vote [post]
func (c *PublicationController) Vote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.VoteRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.engagementService.ApplyVote(ctx.Request.Context(), requesterID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// AddReaction handles adding a typed reaction
// @Summary React to a publication
// @Tags publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Param request body dto.ReactionRequest true "Reaction"
// @Success 201 {object} dto.APIResponse{data=dto.ReactionResult} "Reaction added"
// @Failure 400 {object} dto.ErrorResponse "Invalid type, empty comment or invalid parent"
// @Failure 404 {object} dto.ErrorResponse "Publication or parent not found"
// @Router /publications/{id}/reactions [post]
func (c *PublicationController) AddReaction(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ReactionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.engagementService.ApplyReaction(ctx.Request.Context(), requesterID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}

// ListReactions handles listing the reactions of a publication
// @Summary List reactions
// @Tags publications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Publication ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ReactionResult} "Reactions retrieved"
// @Failure 404 {object} dto.ErrorResponse "Publication not found"
// @Router /publications/{id}/reactions [get]
func (c *PublicationController) ListReactions(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	reactions, err := c.engagementService.ListReactions(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(reactions))
}

// ReplyToReaction handles replying to a reaction
// @Summary Reply to a reaction
// @Description Adds a CLARIFY reaction on the same publication, linked to the parent reaction
// @Tags publications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reaction ID"
// @Param request body dto.ReplyRequest true "Reply"
// @Success 201 {object} dto.APIResponse{data=dto.ReactionResult} "Reply added"
// @Failure 400 {object} dto.ErrorResponse "Empty comment"
// @Failure 404 {object} dto.ErrorResponse "Reaction not found"
// @Router /reactions/{id}/replies [post]
func (c *PublicationController) ReplyToReaction(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ReplyRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.engagementService.ReplyToReaction(ctx.Request.Context(), requesterID(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}
