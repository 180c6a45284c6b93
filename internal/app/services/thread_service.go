package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/auth"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/validation"
)

// ThreadService defines the interface for reading conversation threads
type ThreadService interface {
	// OpenDirectThread marks the messages received from otherID as read and
	// returns the whole conversation in ascending order
	OpenDirectThread(ctx context.Context, requesterID, otherID int64) (*dto.DirectThread, error)
	// OpenClubThread returns the club board. It never marks messages as read.
	OpenClubThread(ctx context.Context, requesterID, clubID int64, asTree bool) (*dto.ClubThread, error)
	MarkRead(ctx context.Context, requesterID int64, req *dto.MarkReadRequest) error
}

// threadServiceImpl implements ThreadService
type threadServiceImpl struct {
	store  repositories.Store
	authz  *auth.AuthorizationService
	logger zerolog.Logger
}

// NewThreadService creates a new ThreadService
func NewThreadService(store repositories.Store, authz *auth.AuthorizationService, logger zerolog.Logger) ThreadService {
	return &threadServiceImpl{
		store:  store,
		authz:  authz,
		logger: logger,
	}
}

// OpenDirectThread opens the conversation between requesterID and otherID
func (s *threadServiceImpl) OpenDirectThread(ctx context.Context, requesterID, otherID int64) (*dto.DirectThread, error) {
	s.logger.Debug().Int64("requesterID", requesterID).Int64("otherID", otherID).Msg("Opening direct thread")

	if requesterID == otherID {
		return nil, apperrors.ErrSelfMessageForbidden
	}

	var (
		other    *models.User
		marked   int64
		messages []*models.Message
	)
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		if other, err = repos.UserRepository.GetByID(ctx, otherID); err != nil {
			return err
		}
		if marked, err = repos.MessageRepository.MarkThreadRead(ctx, requesterID, otherID); err != nil {
			return err
		}
		messages, err = repos.MessageRepository.ListThread(ctx, requesterID, otherID)
		return err
	})
	if err != nil {
		return nil, err
	}

	thread := &dto.DirectThread{
		Counterpart: userSummary(other),
		Messages:    make([]dto.DirectMessageResponse, 0, len(messages)),
		MarkedRead:  marked,
	}
	for _, m := range messages {
		thread.Messages = append(thread.Messages, directMessageResponse(m))
	}
	return thread, nil
}

// OpenClubThread returns the messages of a club the requester belongs to
func (s *threadServiceImpl) OpenClubThread(ctx context.Context, requesterID, clubID int64, asTree bool) (*dto.ClubThread, error) {
	s.logger.Debug().Int64("requesterID", requesterID).Int64("clubID", clubID).Bool("asTree", asTree).Msg("Opening club thread")

	repos := s.store.Repos()

	club, err := repos.ClubRepository.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.RequireMember(ctx, repos, clubID, requesterID); err != nil {
		return nil, err
	}

	messages, err := repos.ClubMessageRepository.ListByClub(ctx, clubID, requesterID)
	if err != nil {
		return nil, err
	}
	info, err := clubResponse(ctx, repos, s.authz, club, requesterID)
	if err != nil {
		return nil, err
	}

	thread := &dto.ClubThread{
		Club:     *info,
		Messages: make([]dto.ClubMessageResponse, 0, len(messages)),
	}
	for _, m := range messages {
		thread.Messages = append(thread.Messages, clubMessageResponse(m))
	}
	if asTree {
		thread.Tree = buildReplyTree(thread.Messages)
	}
	return thread, nil
}

// buildReplyTree nests replies under their parents. messages must be in
// ascending order; replies whose parent is missing become roots.
func buildReplyTree(messages []dto.ClubMessageResponse) []*dto.ClubMessageResponse {
	nodes := make(map[int64]*dto.ClubMessageResponse, len(messages))
	for i := range messages {
		node := messages[i]
		node.Replies = nil
		nodes[node.ID] = &node
	}

	roots := make([]*dto.ClubMessageResponse, 0)
	for _, m := range messages {
		node := nodes[m.ID]
		if m.ParentID != nil {
			if parent, ok := nodes[*m.ParentID]; ok && parent != node {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// MarkRead marks a direct message or a club message as read by the requester
func (s *threadServiceImpl) MarkRead(ctx context.Context, requesterID int64, req *dto.MarkReadRequest) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	s.logger.Debug().Int64("requesterID", requesterID).Str("type", req.Type).Int64("messageID", req.MessageID).Msg("Marking message as read")

	repos := s.store.Repos()

	switch models.ConversationType(req.Type) {
	case models.ConversationUser:
		msg, err := repos.MessageRepository.GetByID(ctx, req.MessageID)
		if err != nil {
			return err
		}
		if msg.RecipientID != requesterID {
			return apperrors.ErrNotRecipient
		}
		return repos.MessageRepository.MarkRead(ctx, msg.ID)

	case models.ConversationClub:
		msg, err := repos.ClubMessageRepository.GetByID(ctx, req.MessageID)
		if err != nil {
			return err
		}
		if err := s.authz.RequireMember(ctx, repos, msg.ClubID, requesterID); err != nil {
			return err
		}
		return repos.ClubMessageRepository.MarkRead(ctx, msg.ID, requesterID)
	}

	return apperrors.ErrInvalidAction
}
