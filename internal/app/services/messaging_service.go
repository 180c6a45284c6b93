package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/auth"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/helpers"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/metrics"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/validation"
)

// ClubPreviewLength is the number of runes of a club message quoted in notifications
const ClubPreviewLength = 50

// MessagingService defines the interface for sending messages
type MessagingService interface {
	SendMessage(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*dto.DirectMessageResponse, error)
	SendClubMessage(ctx context.Context, senderID, clubID int64, req *dto.SendClubMessageRequest) (*dto.ClubMessageResponse, error)
}

// messagingServiceImpl implements MessagingService
type messagingServiceImpl struct {
	store         repositories.Store
	authz         *auth.AuthorizationService
	notifications NotificationService
	pusher        Pusher
	logger        zerolog.Logger
}

// NewMessagingService creates a new MessagingService
func NewMessagingService(
	store repositories.Store,
	authz *auth.AuthorizationService,
	notifications NotificationService,
	pusher Pusher,
	logger zerolog.Logger,
) MessagingService {
	return &messagingServiceImpl{
		store:         store,
		authz:         authz,
		notifications: notifications,
		pusher:        pusher,
		logger:        logger,
	}
}

// SendMessage sends a direct message and notifies the recipient
func (s *messagingServiceImpl) SendMessage(ctx context.Context, senderID int64, req *dto.SendMessageRequest) (*dto.DirectMessageResponse, error) {
	s.logger.Debug().Int64("senderID", senderID).Int64("recipientID", req.RecipientID).Msg("Sending direct message")

	if req.RecipientID == senderID {
		return nil, apperrors.ErrSelfMessageForbidden
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyContent
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var (
		msg    *models.Message
		notice *models.Notification
	)
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if _, err := repos.UserRepository.GetByID(ctx, req.RecipientID); err != nil {
			return err
		}
		sender, err := repos.UserRepository.GetByID(ctx, senderID)
		if err != nil {
			return err
		}

		msg = &models.Message{
			SenderID:    senderID,
			RecipientID: req.RecipientID,
			Content:     content,
		}
		if err := repos.MessageRepository.Create(ctx, msg); err != nil {
			return err
		}

		notice, err = s.notifications.EmitWithin(ctx, repos, req.RecipientID, fmt.Sprintf("New message from %s", sender.Username))
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := directMessageResponse(msg)
	s.notifications.Publish(notice)
	s.pusher.PushToUsers([]int64{req.RecipientID, senderID}, EventMessage, resp)
	metrics.MessagesTotal.WithLabelValues("direct").Inc()

	return &resp, nil
}

// SendClubMessage posts a message on a club board and notifies the other members
func (s *messagingServiceImpl) SendClubMessage(ctx context.Context, senderID, clubID int64, req *dto.SendClubMessageRequest) (*dto.ClubMessageResponse, error) {
	s.logger.Debug().Int64("senderID", senderID).Int64("clubID", clubID).Msg("Sending club message")

	var (
		msg       *models.ClubMessage
		memberIDs []int64
		notices   []*models.Notification
	)
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		club, err := repos.ClubRepository.GetByID(ctx, clubID)
		if err != nil {
			return err
		}
		if err := s.authz.RequireMember(ctx, repos, clubID, senderID); err != nil {
			return err
		}

		content := strings.TrimSpace(req.Content)
		if content == "" {
			return apperrors.ErrEmptyContent
		}
		if err := validation.Struct(req); err != nil {
			return err
		}

		if req.ParentID != nil {
			parent, err := repos.ClubMessageRepository.GetByID(ctx, *req.ParentID)
			if err != nil {
				return err
			}
			if parent.ClubID != clubID {
				return apperrors.ErrMessageNotFound
			}
		}

		sender, err := repos.UserRepository.GetByID(ctx, senderID)
		if err != nil {
			return err
		}

		msg = &models.ClubMessage{
			ClubID:   clubID,
			SenderID: senderID,
			Content:  content,
			ParentID: req.ParentID,
		}
		if err := repos.ClubMessageRepository.Create(ctx, msg); err != nil {
			return err
		}
		if err := repos.ClubMessageRepository.MarkRead(ctx, msg.ID, senderID); err != nil {
			return err
		}
		msg.Sender = sender
		msg.ReadByViewer = true

		memberIDs, err = repos.ClubRepository.ListMemberIDs(ctx, clubID)
		if err != nil {
			return err
		}

		text := fmt.Sprintf("New message in %s: %s...", club.Name, helpers.TruncateRunes(content, ClubPreviewLength))
		notices = notices[:0]
		for _, memberID := range memberIDs {
			if memberID == senderID {
				continue
			}
			n, err := s.notifications.EmitWithin(ctx, repos, memberID, text)
			if err != nil {
				return err
			}
			notices = append(notices, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := clubMessageResponse(msg)
	s.notifications.Publish(notices...)
	s.pusher.PushToUsers(memberIDs, EventClubMessage, resp)
	metrics.MessagesTotal.WithLabelValues("club").Inc()

	return &resp, nil
}
