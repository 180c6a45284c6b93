package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/services"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/middleware"
)

// MessageController handles sending messages and read receipts
type MessageController struct {
	messagingService services.MessagingService
	threadService    services.ThreadService
}

// NewMessageController creates a new MessageController
func NewMessageController(messagingService services.MessagingService, threadService services.ThreadService) *MessageController {
	return &MessageController{
		messagingService: messagingService,
		threadService:    threadService,
	}
}

// SendMessage handles sending a direct message
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.DirectMessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Empty or invalid message"
// @Failure 403 {object} dto.ErrorResponse "Cannot message yourself"
// @Failure 404 {object} dto.ErrorResponse "Recipient not found"
// @Failure 429 {object} dto.ErrorResponse "Too many messages"
// @Router /messages [post]
func (c *MessageController) SendMessage(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.messagingService.SendMessage(ctx.Request.Context(), requesterID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(msg))
}

// SendClubMessage handles posting on a club board
// @Summary Send a club message
// @Description Posts a message on the club board. Set parentId to reply to a message of the same club.
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clubId path int true "Club ID"
// @Param request body dto.SendClubMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=dto.ClubMessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Empty or invalid message"
// @Failure 403 {object} dto.ErrorResponse "Not a club member"
// @Failure 404 {object} dto.ErrorResponse "Club or parent message not found"
// @Failure 429 {object} dto.ErrorResponse "Too many messages"
// @Router /clubs/{clubId}/messages [post]
func (c *MessageController) SendClubMessage(ctx *gin.Context) {
	clubID, ok := parseIDParam(ctx, "clubId")
	if !ok {
		return
	}
	var req dto.SendClubMessageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.messagingService.SendClubMessage(ctx.Request.Context(), requesterID(ctx), clubID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(msg))
}

// MarkRead handles marking a message as read
// @Summary Mark a message as read
// @Description Direct messages can only be marked by their recipient. Club messages add the requester to the readers.
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkReadRequest true "Message reference"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Message marked as read"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to mark this message"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Router /messages/read [post]
func (c *MessageController) MarkRead(ctx *gin.Context) {
	var req dto.MarkReadRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.threadService.MarkRead(ctx.Request.Context(), requesterID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Message marked as read"}))
}
