package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

// SocialService defines the interface for follows and page subscriptions
type SocialService interface {
	ToggleFollow(ctx context.Context, followerID, followeeID int64) (*dto.FollowResult, error)
	ListFollowers(ctx context.Context, userID int64) (*dto.FollowListResponse, error)
	ListFollowing(ctx context.Context, userID int64) (*dto.FollowListResponse, error)
	SubscribePage(ctx context.Context, userID, pageID int64) (*dto.PageSubscriptionResponse, error)
	UnsubscribePage(ctx context.Context, userID, pageID int64) (*dto.PageSubscriptionResponse, error)
}

// socialServiceImpl implements SocialService
type socialServiceImpl struct {
	store         repositories.Store
	notifications NotificationService
	logger        zerolog.Logger
}

// NewSocialService creates a new SocialService
func NewSocialService(store repositories.Store, notifications NotificationService, logger zerolog.Logger) SocialService {
	return &socialServiceImpl{
		store:         store,
		notifications: notifications,
		logger:        logger,
	}
}

// ToggleFollow follows followeeID, or unfollows it when already followed
func (s *socialServiceImpl) ToggleFollow(ctx context.Context, followerID, followeeID int64) (*dto.FollowResult, error) {
	s.logger.Debug().Int64("followerID", followerID).Int64("followeeID", followeeID).Msg("Toggling follow")

	if followerID == followeeID {
		return nil, apperrors.ErrSelfFollowForbidden
	}

	var (
		result dto.FollowResult
		notice *models.Notification
	)
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		notice = nil

		if _, err := repos.UserRepository.GetByID(ctx, followeeID); err != nil {
			return err
		}

		following, err := repos.FollowRepository.Exists(ctx, followerID, followeeID)
		if err != nil {
			return err
		}

		if following {
			if _, err := repos.FollowRepository.Remove(ctx, followerID, followeeID); err != nil {
				return err
			}
		} else {
			follower, err := repos.UserRepository.GetByID(ctx, followerID)
			if err != nil {
				return err
			}
			if _, err := repos.FollowRepository.Add(ctx, followerID, followeeID); err != nil {
				return err
			}
			notice, err = s.notifications.EmitWithin(ctx, repos, followeeID, fmt.Sprintf("%s started following you", follower.Username))
			if err != nil {
				return err
			}
		}

		result.Following = !following
		result.FollowersCount, err = repos.FollowRepository.CountFollowers(ctx, followeeID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.notifications.Publish(notice)
	return &result, nil
}

// ListFollowers lists the users following userID
func (s *socialServiceImpl) ListFollowers(ctx context.Context, userID int64) (*dto.FollowListResponse, error) {
	repos := s.store.Repos()
	if _, err := repos.UserRepository.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	users, err := repos.FollowRepository.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowListResponse{Users: userSummaries(users), Total: len(users)}, nil
}

// ListFollowing lists the users followed by userID
func (s *socialServiceImpl) ListFollowing(ctx context.Context, userID int64) (*dto.FollowListResponse, error) {
	repos := s.store.Repos()
	if _, err := repos.UserRepository.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	users, err := repos.FollowRepository.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowListResponse{Users: userSummaries(users), Total: len(users)}, nil
}

// SubscribePage subscribes userID to a page. Subscribing twice is a no-op.
func (s *socialServiceImpl) SubscribePage(ctx context.Context, userID, pageID int64) (*dto.PageSubscriptionResponse, error) {
	return s.setSubscription(ctx, userID, pageID, true)
}

// UnsubscribePage removes the subscription of userID to a page
func (s *socialServiceImpl) UnsubscribePage(ctx context.Context, userID, pageID int64) (*dto.PageSubscriptionResponse, error) {
	return s.setSubscription(ctx, userID, pageID, false)
}

func (s *socialServiceImpl) setSubscription(ctx context.Context, userID, pageID int64, subscribe bool) (*dto.PageSubscriptionResponse, error) {
	s.logger.Debug().Int64("userID", userID).Int64("pageID", pageID).Bool("subscribe", subscribe).Msg("Updating page subscription")

	var count int64
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if _, err := repos.PageRepository.GetByID(ctx, pageID); err != nil {
			return err
		}

		var err error
		if subscribe {
			_, err = repos.PageRepository.AddSubscriber(ctx, pageID, userID)
		} else {
			_, err = repos.PageRepository.RemoveSubscriber(ctx, pageID, userID)
		}
		if err != nil {
			return err
		}

		count, err = repos.PageRepository.CountSubscribers(ctx, pageID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &dto.PageSubscriptionResponse{PageID: pageID, Subscribed: subscribe, SubscribersCount: count}, nil
}
