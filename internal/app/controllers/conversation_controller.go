package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/services"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/middleware"
)

// ConversationController handles the conversation list and thread views
type ConversationController struct {
	conversationService services.ConversationService
	threadService       services.ThreadService
}

// NewConversationController creates a new ConversationController
func NewConversationController(conversationService services.ConversationService, threadService services.ThreadService) *ConversationController {
	return &ConversationController{
		conversationService: conversationService,
		threadService:       threadService,
	}
}

// ListConversations handles listing the requester's conversations
// @Summary List conversations
// @Description Lists direct and club conversations, most recent first. With a query only matching messages are considered and at most 10 conversations are returned.
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param query query string false "Search in message content"
// @Success 200 {object} dto.APIResponse{data=dto.ConversationListResponse} "Conversations retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /conversations [get]
func (c *ConversationController) ListConversations(ctx *gin.Context) {
	response, err := c.conversationService.ListConversations(ctx.Request.Context(), requesterID(ctx), ctx.Query("query"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// OpenDirectThread handles opening a direct conversation
// @Summary Open a direct conversation
// @Description Marks the messages received from the user as read and returns the whole conversation in ascending order
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Other user ID"
// @Success 200 {object} dto.APIResponse{data=dto.DirectThread} "Thread retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 403 {object} dto.ErrorResponse "Cannot open a conversation with yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /conversations/users/{userId} [get]
func (c *ConversationController) OpenDirectThread(ctx *gin.Context) {
	otherID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	thread, err := c.threadService.OpenDirectThread(ctx.Request.Context(), requesterID(ctx), otherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(thread))
}

// OpenClubThread handles opening a club board
// @Summary Open a club conversation
// @Description Returns the club messages in ascending order. Set tree=true to also get the reply tree.
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club ID"
// @Param tree query bool false "Include the reply tree"
// @Success 200 {object} dto.APIResponse{data=dto.ClubThread} "Thread retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid club ID"
// @Failure 403 {object} dto.ErrorResponse "Not a club member"
// @Failure 404 {object} dto.ErrorResponse "Club not found"
// @Router /conversations/clubs/{clubId} [get]
func (c *ConversationController) OpenClubThread(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "clubId")
	if !ok {
		return
	}
	asTree, _ := strconv.ParseBool(ctx.DefaultQuery("tree", "false"))

	thread, err := c.threadService.OpenClubThread(ctx.Request.Context(), requesterID(ctx), clubID, asTree)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(thread))
}
