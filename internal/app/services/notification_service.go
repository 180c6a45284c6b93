package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/helpers"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/metrics"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	// Emit persists a notification and publishes it
	Emit(ctx context.Context, userID int64, message string) (*models.Notification, error)
	// EmitWithin persists a notification inside the caller's transaction.
	// The caller publishes it with Publish once the transaction committed.
	EmitWithin(ctx context.Context, repos *repositories.Repositories, userID int64, message string) (*models.Notification, error)
	// Publish pushes persisted notifications to live clients and the message bus
	Publish(notifications ...*models.Notification)
	ListNotifications(ctx context.Context, userID int64, unreadOnly bool, page, size int) (*dto.NotificationListResponse, error)
	MarkNotificationRead(ctx context.Context, userID, id int64) error
	MarkAllNotificationsRead(ctx context.Context, userID int64) (*dto.MarkAllReadResponse, error)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	store     repositories.Store
	pusher    Pusher
	publisher EventPublisher
	logger    zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(store repositories.Store, pusher Pusher, publisher EventPublisher, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{
		store:     store,
		pusher:    pusher,
		publisher: publisher,
		logger:    logger,
	}
}

// Emit persists a notification and publishes it
func (s *notificationServiceImpl) Emit(ctx context.Context, userID int64, message string) (*models.Notification, error) {
	n, err := s.EmitWithin(ctx, s.store.Repos(), userID, message)
	if err != nil {
		return nil, err
	}
	s.Publish(n)
	return n, nil
}

// EmitWithin appends a notification using repos
func (s *notificationServiceImpl) EmitWithin(ctx context.Context, repos *repositories.Repositories, userID int64, message string) (*models.Notification, error) {
	n := &models.Notification{
		UserID:  userID,
		Message: message,
	}
	if err := repos.NotificationRepository.Create(ctx, n); err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("userID", userID).Int64("notificationID", n.ID).Msg("Notification created")
	return n, nil
}

// Publish delivers notifications on a best effort basis
func (s *notificationServiceImpl) Publish(notifications ...*models.Notification) {
	for _, n := range notifications {
		if n == nil {
			continue
		}
		metrics.NotificationsTotal.Inc()

		s.pusher.PushToUsers([]int64{n.UserID}, EventNotification, notificationResponse(n))

		if err := s.publisher.PublishNotification(n); err != nil {
			s.logger.Warn().Err(err).
				Int64("userID", n.UserID).
				Int64("notificationID", n.ID).
				Msg("Failed to publish notification event")
		}
	}
}

// ListNotifications returns a page of the user's notifications, newest first
func (s *notificationServiceImpl) ListNotifications(ctx context.Context, userID int64, unreadOnly bool, page, size int) (*dto.NotificationListResponse, error) {
	s.logger.Debug().
		Int64("userID", userID).
		Bool("unreadOnly", unreadOnly).
		Int("page", page).
		Int("size", size).
		Msg("Listing notifications")

	repos := s.store.Repos()
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	items, total, err := repos.NotificationRepository.ListByUser(ctx, userID, unreadOnly, offset, limit)
	if err != nil {
		return nil, err
	}
	unread, err := repos.NotificationRepository.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(items)),
		UnreadCount:   unread,
		Pagination:    helpers.NewPaginationInfo(total, page, limit),
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, notificationResponse(n))
	}
	return resp, nil
}

// MarkNotificationRead marks one of the user's notifications as read
func (s *notificationServiceImpl) MarkNotificationRead(ctx context.Context, userID, id int64) error {
	s.logger.Debug().Int64("userID", userID).Int64("notificationID", id).Msg("Marking notification as read")
	return s.store.Repos().NotificationRepository.MarkRead(ctx, userID, id)
}

// MarkAllNotificationsRead marks every unread notification of the user as read
func (s *notificationServiceImpl) MarkAllNotificationsRead(ctx context.Context, userID int64) (*dto.MarkAllReadResponse, error) {
	updated, err := s.store.Repos().NotificationRepository.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("userID", userID).Int64("updated", updated).Msg("Marked all notifications as read")
	return &dto.MarkAllReadResponse{Updated: updated}, nil
}
