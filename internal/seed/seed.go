package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	appRepos "github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/auth"
)

// DefaultPassword is the password of every seeded account
const DefaultPassword = "Password123!"

type seedUser struct {
	username string
	email    string
	isStaff  bool
}

var defaultUsers = []seedUser{
	{username: "alice", email: "alice@example.com"},
	{username: "bob", email: "bob@example.com"},
	{username: "carol", email: "carol@example.com"},
	{username: "moderator", email: "moderator@example.com", isStaff: true},
}

// CreateDefaultData creates demo users, a club, a page and a publication.
// It does nothing when the first demo user already exists.
func CreateDefaultData(ctx context.Context, store appRepos.Store, lgr zerolog.Logger) ([]*appModels.User, error) {
	lgr.Info().Msg("Checking/Creating default data (users/clubs/pages)...")

	existing, err := store.Repos().UserRepository.GetByUsername(ctx, defaultUsers[0].username)
	if err == nil && existing != nil {
		lgr.Info().Msg("Default data already present, skipping seed")
		return nil, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("checking seed state: %w", err)
	}

	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}

	var users []*appModels.User
	err = store.InTx(ctx, func(ctx context.Context, repos *appRepos.Repositories) error {
		users = users[:0]
		for _, su := range defaultUsers {
			user := &appModels.User{
				Username: su.username,
				Email:    su.email,
				Password: hash,
				IsStaff:  su.isStaff,
				IsActive: true,
			}
			if err := repos.UserRepository.Create(ctx, user); err != nil {
				return fmt.Errorf("creating user %s: %w", su.username, err)
			}
			users = append(users, user)
		}
		alice, bob, carol := users[0], users[1], users[2]

		club := &appModels.Club{Name: "Chess Club", Description: "Weekly games and puzzles", CreatorID: alice.ID}
		if err := repos.ClubRepository.Create(ctx, club); err != nil {
			return fmt.Errorf("creating club: %w", err)
		}
		if _, err := repos.ClubRepository.AddMember(ctx, club.ID, alice.ID); err != nil {
			return err
		}
		if _, err := repos.ClubRepository.AddAdmin(ctx, club.ID, alice.ID); err != nil {
			return err
		}
		if _, err := repos.ClubRepository.AddMember(ctx, club.ID, bob.ID); err != nil {
			return err
		}

		page := &appModels.Page{Name: "Campus News", Description: "Announcements", CreatorID: carol.ID}
		if err := repos.PageRepository.Create(ctx, page); err != nil {
			return fmt.Errorf("creating page: %w", err)
		}

		publication := &appModels.Publication{AuthorID: alice.ID, ClubID: &club.ID, Content: "First tournament this Friday"}
		if err := repos.PublicationRepository.Create(ctx, publication); err != nil {
			return fmt.Errorf("creating publication: %w", err)
		}
		return nil
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default data")
		return nil, err
	}

	lgr.Info().Int("users", len(users)).Msg("Default data created")
	return users, nil
}

// LogDevTokens logs a bearer token for each seeded user at debug level
func LogDevTokens(jwtService *auth.JWTService, users []*appModels.User, lgr zerolog.Logger) {
	for _, u := range users {
		token, err := jwtService.GenerateToken(u)
		if err != nil {
			lgr.Warn().Err(err).Str("username", u.Username).Msg("Failed to generate dev token")
			continue
		}
		lgr.Debug().Str("username", u.Username).Int64("userID", u.ID).Str("token", token).Msg("Dev token")
	}
}
