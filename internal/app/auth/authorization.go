package auth

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

// AuthorizationService answers club and staff permission questions. Every
// check takes the repositories to run on, so it works inside a transaction.
type AuthorizationService struct {
	logger zerolog.Logger
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(logger zerolog.Logger) *AuthorizationService {
	return &AuthorizationService{logger: logger}
}

// RequireMember returns ErrUnauthorizedClubAccess unless userID belongs to the club
func (s *AuthorizationService) RequireMember(ctx context.Context, repos *repositories.Repositories, clubID, userID int64) error {
	isMember, err := repos.ClubRepository.IsMember(ctx, clubID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		s.logger.Debug().Int64("clubID", clubID).Int64("userID", userID).Msg("Club access denied")
		return apperrors.ErrUnauthorizedClubAccess
	}
	return nil
}

// IsClubAdmin reports whether userID may administer the club.
// The creator is always privileged.
func (s *AuthorizationService) IsClubAdmin(ctx context.Context, repos *repositories.Repositories, club *models.Club, userID int64) (bool, error) {
	if club.CreatorID == userID {
		return true, nil
	}
	return repos.ClubRepository.IsAdmin(ctx, club.ID, userID)
}

// RequireClubAdmin returns ErrNotClubAdmin unless userID may administer the club
func (s *AuthorizationService) RequireClubAdmin(ctx context.Context, repos *repositories.Repositories, club *models.Club, userID int64) error {
	ok, err := s.IsClubAdmin(ctx, repos, club, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotClubAdmin
	}
	return nil
}

// RequireStaff returns ErrStaffOnly unless userID is a staff account
func (s *AuthorizationService) RequireStaff(ctx context.Context, repos *repositories.Repositories, userID int64) (*models.User, error) {
	user, err := repos.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsStaff {
		return nil, apperrors.ErrStaffOnly
	}
	return user, nil
}
