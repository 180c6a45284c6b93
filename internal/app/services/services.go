// Package services holds the business logic: conversations, threads,
// messaging, engagement, moderation, notifications and the social graph.
// Services run on a repositories.Store and never touch the transport layer.
package services

import (
	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/auth"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/events"
)

// Realtime event types pushed to connected clients
const (
	EventNotification = "notification"
	EventMessage      = "message"
	EventClubMessage  = "club_message"
)

// Pusher delivers realtime events to the live connections of users
type Pusher interface {
	PushToUsers(userIDs []int64, eventType string, payload interface{})
}

// EventPublisher publishes persisted notifications to the message bus
type EventPublisher interface {
	PublishNotification(notification *models.Notification) error
}

type noopPusher struct{}

func (noopPusher) PushToUsers([]int64, string, interface{}) {}

// Dependencies are the collaborators shared by every service.
// Pusher and Publisher are optional.
type Dependencies struct {
	Store     repositories.Store
	Pusher    Pusher
	Publisher EventPublisher
	Logger    zerolog.Logger
}

// Services holds all the service instances
type Services struct {
	Notification NotificationService
	Conversation ConversationService
	Thread       ThreadService
	Messaging    MessagingService
	Engagement   EngagementService
	Moderation   ModerationService
	Club         ClubService
	Social       SocialService
}

// NewServices wires every service on top of deps
func NewServices(deps Dependencies) *Services {
	if deps.Pusher == nil {
		deps.Pusher = noopPusher{}
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NoopPublisher{}
	}

	authz := auth.NewAuthorizationService(deps.Logger.With().Str("component", "authorization").Logger())
	notifications := NewNotificationService(deps.Store, deps.Pusher, deps.Publisher, deps.Logger.With().Str("service", "notification").Logger())

	return &Services{
		Notification: notifications,
		Conversation: NewConversationService(deps.Store, deps.Logger.With().Str("service", "conversation").Logger()),
		Thread:       NewThreadService(deps.Store, authz, deps.Logger.With().Str("service", "thread").Logger()),
		Messaging:    NewMessagingService(deps.Store, authz, notifications, deps.Pusher, deps.Logger.With().Str("service", "messaging").Logger()),
		Engagement:   NewEngagementService(deps.Store, authz, deps.Logger.With().Str("service", "engagement").Logger()),
		Moderation:   NewModerationService(deps.Store, authz, notifications, deps.Logger.With().Str("service", "moderation").Logger()),
		Club:         NewClubService(deps.Store, authz, notifications, deps.Logger.With().Str("service", "club").Logger()),
		Social:       NewSocialService(deps.Store, notifications, deps.Logger.With().Str("service", "social").Logger()),
	}
}
