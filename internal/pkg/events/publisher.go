// Package events publishes domain events to NATS for consumers outside the
// API process (mail digests, mobile push gateways).
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
)

// SubjectNotifications is the subject prefix of notification events; the
// recipient user ID is appended (notifications.<userID>).
const SubjectNotifications = "notifications"

// NotificationEvent is the payload published for each persisted notification
type NotificationEvent struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationSubject returns the subject a user's notifications are published on
func NotificationSubject(userID int64) string {
	return fmt.Sprintf("%s.%d", SubjectNotifications, userID)
}

// Config holds NATS connection settings
type Config struct {
	URL           string
	Name          string
	ReconnectWait time.Duration
	MaxReconnects int
}

// NATSPublisher publishes events on a NATS connection
type NATSPublisher struct {
	conn   *nats.Conn
	logger zerolog.Logger
}

// NewNATSPublisher connects to NATS. It returns an error if the initial connection fails.
func NewNATSPublisher(cfg Config, logger zerolog.Logger) (*NATSPublisher, error) {
	if cfg.ReconnectWait <= 0 {
		cfg.ReconnectWait = 2 * time.Second
	}
	if cfg.MaxReconnects == 0 {
		cfg.MaxReconnects = -1
	}

	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info().Msg("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	logger.Info().Str("url", nc.ConnectedUrl()).Msg("Connected to NATS")

	return &NATSPublisher{conn: nc, logger: logger}, nil
}

// PublishNotification publishes n on notifications.<userID>
func (p *NATSPublisher) PublishNotification(n *models.Notification) error {
	data, err := json.Marshal(NotificationEvent{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal notification event: %w", err)
	}
	return p.conn.Publish(NotificationSubject(n.UserID), data)
}

// Subscribe registers handler for subject. Wildcards are allowed (notifications.*).
func (p *NATSPublisher) Subscribe(subject string, handler func(data []byte)) (*nats.Subscription, error) {
	sub, err := p.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("nats subscribe %s: %w", subject, err)
	}
	return sub, nil
}

// Close drains the connection
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn().Err(err).Msg("NATS connection drain failed")
	}
}

// NoopPublisher drops every event. It is used when NATS is disabled.
type NoopPublisher struct{}

// PublishNotification does nothing
func (NoopPublisher) PublishNotification(*models.Notification) error { return nil }
