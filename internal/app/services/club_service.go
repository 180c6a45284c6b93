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
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/validation"
)

// Admin actions accepted by ManageAdmin
const (
	AdminActionAdd    = "add"
	AdminActionRemove = "remove"
)

// ClubService defines the interface for club operations
type ClubService interface {
	CreateClub(ctx context.Context, creatorID int64, req *dto.CreateClubRequest) (*dto.ClubResponse, error)
	GetClub(ctx context.Context, viewerID, clubID int64) (*dto.ClubResponse, error)
	JoinClub(ctx context.Context, userID, clubID int64) (*dto.MembershipResponse, error)
	LeaveClub(ctx context.Context, userID, clubID int64) (*dto.MembershipResponse, error)
	// ManageAdmin grants or revokes admin rights. Only the creator or an
	// existing admin may do it and the creator can never be demoted.
	ManageAdmin(ctx context.Context, actorID, clubID int64, req *dto.AdminRequest) (*dto.AdminResponse, error)
}

// clubServiceImpl implements ClubService
type clubServiceImpl struct {
	store         repositories.Store
	authz         *auth.AuthorizationService
	notifications NotificationService
	logger        zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(
	store repositories.Store,
	authz *auth.AuthorizationService,
	notifications NotificationService,
	logger zerolog.Logger,
) ClubService {
	return &clubServiceImpl{
		store:         store,
		authz:         authz,
		notifications: notifications,
		logger:        logger,
	}
}

// CreateClub creates a club whose creator is its first member and admin
func (s *clubServiceImpl) CreateClub(ctx context.Context, creatorID int64, req *dto.CreateClubRequest) (*dto.ClubResponse, error) {
	s.logger.Debug().Int64("creatorID", creatorID).Str("name", req.Name).Msg("Creating club")

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var resp *dto.ClubResponse
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if _, err := repos.UserRepository.GetByID(ctx, creatorID); err != nil {
			return err
		}

		club := &models.Club{
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			CreatorID:   creatorID,
		}
		if err := repos.ClubRepository.Create(ctx, club); err != nil {
			return err
		}
		if _, err := repos.ClubRepository.AddMember(ctx, club.ID, creatorID); err != nil {
			return err
		}
		if _, err := repos.ClubRepository.AddAdmin(ctx, club.ID, creatorID); err != nil {
			return err
		}

		var err error
		resp, err = clubResponse(ctx, repos, s.authz, club, creatorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetClub returns a club as seen by viewerID
func (s *clubServiceImpl) GetClub(ctx context.Context, viewerID, clubID int64) (*dto.ClubResponse, error) {
	repos := s.store.Repos()

	club, err := repos.ClubRepository.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return clubResponse(ctx, repos, s.authz, club, viewerID)
}

// JoinClub adds userID to the club members
func (s *clubServiceImpl) JoinClub(ctx context.Context, userID, clubID int64) (*dto.MembershipResponse, error) {
	s.logger.Debug().Int64("userID", userID).Int64("clubID", clubID).Msg("Joining club")

	var count int64
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if _, err := repos.ClubRepository.GetByID(ctx, clubID); err != nil {
			return err
		}
		added, err := repos.ClubRepository.AddMember(ctx, clubID, userID)
		if err != nil {
			return err
		}
		if !added {
			return apperrors.ErrAlreadyMember
		}
		count, err = repos.ClubRepository.CountMembers(ctx, clubID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.MembershipResponse{ClubID: clubID, IsMember: true, MembersCount: count}, nil
}

// LeaveClub removes userID from the club. The creator cannot leave.
func (s *clubServiceImpl) LeaveClub(ctx context.Context, userID, clubID int64) (*dto.MembershipResponse, error) {
	s.logger.Debug().Int64("userID", userID).Int64("clubID", clubID).Msg("Leaving club")

	var count int64
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		club, err := repos.ClubRepository.GetByID(ctx, clubID)
		if err != nil {
			return err
		}
		if club.CreatorID == userID {
			return apperrors.ErrCreatorCannotLeave
		}
		removed, err := repos.ClubRepository.RemoveMember(ctx, clubID, userID)
		if err != nil {
			return err
		}
		if !removed {
			return apperrors.ErrNotMember
		}
		count, err = repos.ClubRepository.CountMembers(ctx, clubID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.MembershipResponse{ClubID: clubID, IsMember: false, MembersCount: count}, nil
}

// ManageAdmin adds or removes a club admin and notifies the target on change
func (s *clubServiceImpl) ManageAdmin(ctx context.Context, actorID, clubID int64, req *dto.AdminRequest) (*dto.AdminResponse, error) {
	s.logger.Debug().
		Int64("actorID", actorID).
		Int64("clubID", clubID).
		Int64("targetID", req.UserID).
		Str("action", req.Action).
		Msg("Managing club admin")

	if req.Action != AdminActionAdd && req.Action != AdminActionRemove {
		return nil, apperrors.ErrInvalidAction
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var notice *models.Notification
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		notice = nil

		club, err := repos.ClubRepository.GetByID(ctx, clubID)
		if err != nil {
			return err
		}
		if err := s.authz.RequireClubAdmin(ctx, repos, club, actorID); err != nil {
			return err
		}

		isMember, err := repos.ClubRepository.IsMember(ctx, clubID, req.UserID)
		if err != nil {
			return err
		}
		if !isMember {
			return apperrors.ErrNotMember
		}

		var (
			changed bool
			text    string
		)
		if req.Action == AdminActionAdd {
			changed, err = repos.ClubRepository.AddAdmin(ctx, clubID, req.UserID)
			text = fmt.Sprintf("You have been appointed admin of the club %s", club.Name)
		} else {
			if req.UserID == club.CreatorID {
				return apperrors.ErrCreatorCannotLeave
			}
			changed, err = repos.ClubRepository.RemoveAdmin(ctx, clubID, req.UserID)
			text = fmt.Sprintf("You are no longer an admin of the club %s", club.Name)
		}
		if err != nil || !changed {
			return err
		}

		notice, err = s.notifications.EmitWithin(ctx, repos, req.UserID, text)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Publish(notice)

	return &dto.AdminResponse{
		ClubID:  clubID,
		UserID:  req.UserID,
		IsAdmin: req.Action == AdminActionAdd,
	}, nil
}
