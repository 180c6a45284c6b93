package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/services"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/middleware"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/helpers"
)

// NotificationController handles the requester's notifications
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// ListNotifications handles listing notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Only unread notifications"
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.NotificationListResponse} "Notifications retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized: JWT token missing or invalid"
// @Router /notifications [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	unreadOnly, _ := strconv.ParseBool(ctx.DefaultQuery("unread", "false"))

	list, err := c.notificationService.ListNotifications(ctx.Request.Context(), requesterID(ctx), unreadOnly, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(list))
}

// MarkRead handles marking one notification as read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Notification marked as read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [patch]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.notificationService.MarkNotificationRead(ctx.Request.Context(), requesterID(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Notification marked as read"}))
}

// MarkAllRead handles marking every notification as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.MarkAllReadResponse} "Notifications marked as read"
// @Router /notifications/read-all [patch]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	result, err := c.notificationService.MarkAllNotificationsRead(ctx.Request.Context(), requesterID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
