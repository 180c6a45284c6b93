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

// Report thresholds
const (
	WarningThreshold    = 5
	SuspensionThreshold = 10
)

// Moderation notices
const (
	WarningMessage    = "Warning: you have received 5 reports. Please respect the community rules."
	SuspensionMessage = "Your account has been deactivated for 48 hours following excessive reports."
)

// ModerationService defines the interface for abuse reports
type ModerationService interface {
	// FileReport records a report and escalates the reported user
	FileReport(ctx context.Context, reporterID, reportedID int64, req *dto.ReportRequest) (*dto.ReportResult, error)
	GetModerationStatus(ctx context.Context, requesterID, userID int64) (*dto.ModerationStatusResponse, error)
}

// moderationServiceImpl implements ModerationService
type moderationServiceImpl struct {
	store         repositories.Store
	authz         *auth.AuthorizationService
	notifications NotificationService
	logger        zerolog.Logger
}

// NewModerationService creates a new ModerationService
func NewModerationService(
	store repositories.Store,
	authz *auth.AuthorizationService,
	notifications NotificationService,
	logger zerolog.Logger,
) ModerationService {
	return &moderationServiceImpl{
		store:         store,
		authz:         authz,
		notifications: notifications,
		logger:        logger,
	}
}

// escalate returns the state reached once a user has total reports.
// NORMAL moves to WARNED at the warning threshold and any state but
// SUSPENDED moves to SUSPENDED at the suspension threshold, except for staff.
// Both steps may happen at once.
func escalate(state models.ModerationState, total int64, isStaff bool) (next models.ModerationState, warned, suspended bool) {
	next = state
	if next == models.ModerationNormal && total >= WarningThreshold {
		next = models.ModerationWarned
		warned = true
	}
	if next != models.ModerationSuspended && total >= SuspensionThreshold && !isStaff {
		next = models.ModerationSuspended
		suspended = true
	}
	return next, warned, suspended
}

// FileReport files a report of reporterID against reportedID
func (s *moderationServiceImpl) FileReport(ctx context.Context, reporterID, reportedID int64, req *dto.ReportRequest) (*dto.ReportResult, error) {
	s.logger.Debug().Int64("reporterID", reporterID).Int64("reportedID", reportedID).Msg("Filing report")

	if reporterID == reportedID {
		return nil, apperrors.ErrSelfReportForbidden
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperrors.ErrEmptyReason
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var (
		result  *dto.ReportResult
		notices []*models.Notification
	)
	err := s.store.InTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		notices = notices[:0]

		reported, err := repos.UserRepository.GetByIDForUpdate(ctx, reportedID)
		if err != nil {
			return err
		}

		report := &models.Report{
			ReporterID: reporterID,
			ReportedID: reportedID,
			Reason:     reason,
		}
		if err := repos.ReportRepository.Create(ctx, report); err != nil {
			return err
		}

		total, err := repos.ReportRepository.CountAgainst(ctx, reportedID)
		if err != nil {
			return err
		}
		state, err := repos.ModerationRepository.GetState(ctx, reportedID)
		if err != nil {
			return err
		}

		next, warned, suspended := escalate(state, total, reported.IsStaff)
		if next != state {
			if err := repos.ModerationRepository.SetState(ctx, reportedID, next); err != nil {
				return err
			}
		}
		if warned {
			n, err := s.notifications.EmitWithin(ctx, repos, reportedID, WarningMessage)
			if err != nil {
				return err
			}
			notices = append(notices, n)
		}
		if suspended {
			if err := repos.UserRepository.SetActive(ctx, reportedID, false); err != nil {
				return err
			}
			n, err := s.notifications.EmitWithin(ctx, repos, reportedID, SuspensionMessage)
			if err != nil {
				return err
			}
			notices = append(notices, n)
		}

		result = &dto.ReportResult{
			ReportID:     report.ID,
			TotalReports: total,
			State:        string(next),
			Warned:       warned,
			Suspended:    suspended,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ReportsTotal.Inc()
	if result.Warned {
		metrics.ModerationTransitionsTotal.WithLabelValues(string(models.ModerationWarned)).Inc()
	}
	if result.Suspended {
		metrics.ModerationTransitionsTotal.WithLabelValues(string(models.ModerationSuspended)).Inc()
		s.logger.Info().Int64("userID", reportedID).Int64("totalReports", result.TotalReports).Msg("User suspended after excessive reports")
	}
	s.notifications.Publish(notices...)

	return result, nil
}

// GetModerationStatus returns the report count and state of a user. Staff only.
func (s *moderationServiceImpl) GetModerationStatus(ctx context.Context, requesterID, userID int64) (*dto.ModerationStatusResponse, error) {
	repos := s.store.Repos()

	if _, err := s.authz.RequireStaff(ctx, repos, requesterID); err != nil {
		return nil, err
	}

	user, err := repos.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := repos.ReportRepository.CountAgainst(ctx, userID)
	if err != nil {
		return nil, err
	}
	state, err := repos.ModerationRepository.GetState(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ModerationStatusResponse{
		UserID:       user.ID,
		Username:     user.Username,
		TotalReports: total,
		State:        string(state),
		IsActive:     user.IsActive,
	}, nil
}
