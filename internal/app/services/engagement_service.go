package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/auth"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/metrics"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/validation"
)

// Vote actions accepted by ApplyVote
const (
	ActionLike    = "like"
	ActionDislike = "dislike"
)

// Vote outcomes, used as metric labels
const (
	voteAdded    = "added"
	voteSwitched = "switched"
	voteRemoved  = "removed"
)

// EngagementService defines the interface for publications, votes and reactions
type EngagementService interface {
	CreatePublication(ctx context.Context, authorID int64, req *dto.CreatePublicationRequest) (*dto.PublicationResponse, error)
	GetPublication(ctx context.Context, viewerID, publicationID int64) (*dto.PublicationResponse, error)
	// ApplyVote toggles a like or dislike. Voting the opposite kind replaces
	// the previous vote, voting the same kind again removes it.
	ApplyVote(ctx context.Context, userID, publicationID int64, req *dto.VoteRequest) (*dto.VoteResult, error)
	ApplyReaction(ctx context.Context, userID, publicationID int64, req *dto.ReactionRequest) (*dto.ReactionResult, error)
	// ReplyToReaction answers a reaction with a CLARIFY reaction on the same publication
	ReplyToReaction(ctx context.Context, userID, reactionID int64, req *dto.ReplyRequest) (*dto.ReactionResult, error)
	ListReactions(ctx context.Context, publicationID int64) ([]dto.ReactionResult, error)
}

// engagementServiceImpl implements EngagementService
type engagementServiceImpl struct {
	store  repositories.Store
	authz  *auth.AuthorizationService
	logger zerolog.Logger
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(store repositories.Store, authz *auth.AuthorizationService, logger zerolog.Logger) EngagementService {
	return &engagementServiceImpl{
		store:  store,
		authz:  authz,
		logger: logger,
	}
}

// CreatePublication creates a publication. Club publications require membership.
func (s *engagementServiceImpl) CreatePublication(ctx context.Context, authorID int64, req *dto.CreatePublicationRequest) (*dto.PublicationResponse, error) {
	s.logger.Debug().Int64("authorID", authorID).Msg("Creating publication")

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.ErrEmptyContent
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var (
		pub    *models.Publication
		author *models.User
	)
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		if author, err = repos.UserRepository.GetByID(ctx, authorID); err != nil {
			return err
		}
		if req.ClubID != nil {
			if _, err := repos.ClubRepository.GetByID(ctx, *req.ClubID); err != nil {
				return err
			}
			if err := s.authz.RequireMember(ctx, repos, *req.ClubID, authorID); err != nil {
				return err
			}
		}

		pub = &models.Publication{
			AuthorID: authorID,
			ClubID:   req.ClubID,
			Content:  content,
		}
		return repos.PublicationRepository.Create(ctx, pub)
	})
	if err != nil {
		return nil, err
	}

	return &dto.PublicationResponse{
		ID:        pub.ID,
		Author:    userSummary(author),
		ClubID:    pub.ClubID,
		Content:   pub.Content,
		CreatedAt: pub.CreatedAt,
	}, nil
}

// GetPublication returns a publication with its counts and the viewer's vote
func (s *engagementServiceImpl) GetPublication(ctx context.Context, viewerID, publicationID int64) (*dto.PublicationResponse, error) {
	repos := s.store.Repos()

	pub, err := repos.PublicationRepository.GetByID(ctx, publicationID)
	if err != nil {
		return nil, err
	}
	author, err := repos.UserRepository.GetByID(ctx, pub.AuthorID)
	if err != nil {
		return nil, err
	}
	counts, err := repos.PublicationRepository.CountVotes(ctx, publicationID)
	if err != nil {
		return nil, err
	}
	vote, err := repos.PublicationRepository.GetVote(ctx, publicationID, viewerID)
	if err != nil {
		return nil, err
	}

	return &dto.PublicationResponse{
		ID:           pub.ID,
		Author:       userSummary(author),
		ClubID:       pub.ClubID,
		Content:      pub.Content,
		Likes:        counts.Likes,
		Dislikes:     counts.Dislikes,
		UserLiked:    vote == models.VoteLike,
		UserDisliked: vote == models.VoteDislike,
		CreatedAt:    pub.CreatedAt,
	}, nil
}

// ApplyVote applies a like or dislike action of userID on a publication
func (s *engagementServiceImpl) ApplyVote(ctx context.Context, userID, publicationID int64, req *dto.VoteRequest) (*dto.VoteResult, error) {
	s.logger.Debug().Int64("userID", userID).Int64("publicationID", publicationID).Str("action", req.Action).Msg("Applying vote")

	var kind models.VoteKind
	switch req.Action {
	case ActionLike:
		kind = models.VoteLike
	case ActionDislike:
		kind = models.VoteDislike
	default:
		return nil, apperrors.ErrInvalidAction
	}

	var (
		outcome string
		final   models.VoteKind
		counts  models.VoteCounts
	)
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if _, err := repos.PublicationRepository.GetByIDForUpdate(ctx, publicationID); err != nil {
			return err
		}

		current, err := repos.PublicationRepository.GetVote(ctx, publicationID, userID)
		if err != nil {
			return err
		}

		switch current {
		case kind:
			outcome, final = voteRemoved, ""
			err = repos.PublicationRepository.DeleteVote(ctx, publicationID, userID)
		case "":
			outcome, final = voteAdded, kind
			err = repos.PublicationRepository.SetVote(ctx, publicationID, userID, kind)
		default:
			outcome, final = voteSwitched, kind
			err = repos.PublicationRepository.SetVote(ctx, publicationID, userID, kind)
		}
		if err != nil {
			return err
		}

		counts, err = repos.PublicationRepository.CountVotes(ctx, publicationID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.VotesTotal.WithLabelValues(outcome).Inc()

	return &dto.VoteResult{
		Likes:        counts.Likes,
		Dislikes:     counts.Dislikes,
		UserLiked:    final == models.VoteLike,
		UserDisliked: final == models.VoteDislike,
	}, nil
}

// ApplyReaction adds a typed reaction, or a reply when ParentID is set
func (s *engagementServiceImpl) ApplyReaction(ctx context.Context, userID, publicationID int64, req *dto.ReactionRequest) (*dto.ReactionResult, error) {
	s.logger.Debug().Int64("userID", userID).Int64("publicationID", publicationID).Str("type", req.Type).Msg("Applying reaction")

	reactionType := models.ReactionType(req.Type)
	if !reactionType.IsValid() {
		return nil, apperrors.ErrInvalidReactionType
	}
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, apperrors.ErrEmptyComment
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	return s.addReaction(ctx, userID, publicationID, reactionType, comment, req.ParentID)
}

// ReplyToReaction replies to an existing reaction
func (s *engagementServiceImpl) ReplyToReaction(ctx context.Context, userID, reactionID int64, req *dto.ReplyRequest) (*dto.ReactionResult, error) {
	s.logger.Debug().Int64("userID", userID).Int64("reactionID", reactionID).Msg("Replying to reaction")

	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, apperrors.ErrEmptyComment
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	parent, err := s.store.Repos().ReactionRepository.GetByID(ctx, reactionID)
	if err != nil {
		return nil, err
	}

	return s.addReaction(ctx, userID, parent.PublicationID, models.ReactionClarify, comment, &parent.ID)
}

func (s *engagementServiceImpl) addReaction(ctx context.Context, userID, publicationID int64, reactionType models.ReactionType, comment string, parentID *int64) (*dto.ReactionResult, error) {
	var (
		reaction *models.Reaction
		user     *models.User
	)
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if _, err := repos.PublicationRepository.GetByID(ctx, publicationID); err != nil {
			return err
		}
		if parentID != nil {
			parent, err := repos.ReactionRepository.GetByID(ctx, *parentID)
			if err != nil {
				return err
			}
			if parent.PublicationID != publicationID {
				return apperrors.ErrInvalidParent
			}
		}

		var err error
		if user, err = repos.UserRepository.GetByID(ctx, userID); err != nil {
			return err
		}

		reaction = &models.Reaction{
			PublicationID: publicationID,
			UserID:        userID,
			Type:          reactionType,
			Comment:       comment,
			ParentID:      parentID,
		}
		return repos.ReactionRepository.Create(ctx, reaction)
	})
	if err != nil {
		return nil, err
	}

	metrics.ReactionsTotal.WithLabelValues(string(reactionType)).Inc()

	result := reactionResult(reaction, user.Username)
	return &result, nil
}

// ListReactions returns the reactions of a publication in ascending order
func (s *engagementServiceImpl) ListReactions(ctx context.Context, publicationID int64) ([]dto.ReactionResult, error) {
	repos := s.store.Repos()

	if _, err := repos.PublicationRepository.GetByID(ctx, publicationID); err != nil {
		return nil, err
	}
	reactions, err := repos.ReactionRepository.ListByPublication(ctx, publicationID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReactionResult, 0, len(reactions))
	for _, r := range reactions {
		username := ""
		if r.User != nil {
			username = r.User.Username
		}
		out = append(out, reactionResult(r, username))
	}
	return out, nil
}
