package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

func TestEscalate(t *testing.T) {
	tests := []struct {
		name          string
		state         models.ModerationState
		total         int64
		staff         bool
		want          models.ModerationState
		wantWarned    bool
		wantSuspended bool
	}{
		{"below warning", models.ModerationNormal, 4, false, models.ModerationNormal, false, false},
		{"warning threshold", models.ModerationNormal, 5, false, models.ModerationWarned, true, false},
		{"already warned", models.ModerationWarned, 6, false, models.ModerationWarned, false, false},
		{"suspension threshold", models.ModerationWarned, 10, false, models.ModerationSuspended, false, true},
		{"both at once", models.ModerationNormal, 12, false, models.ModerationSuspended, true, true},
		{"already suspended", models.ModerationSuspended, 15, false, models.ModerationSuspended, false, false},
		{"staff stays warned", models.ModerationWarned, 10, true, models.ModerationWarned, false, false},
		{"staff from normal", models.ModerationNormal, 10, true, models.ModerationWarned, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, warned, suspended := escalate(tt.state, tt.total, tt.staff)
			assert.Equal(t, tt.want, next)
			assert.Equal(t, tt.wantWarned, warned)
			assert.Equal(t, tt.wantSuspended, suspended)
		})
	}
}

func fileReports(t *testing.T, f *fixture, reportedID int64, n int) []*dto.ReportResult {
	t.Helper()
	out := make([]*dto.ReportResult, 0, n)
	for i := 0; i < n; i++ {
		reporter := f.user(fmt.Sprintf("reporter%d", f.next()))
		res, err := f.svc.Moderation.FileReport(f.ctx, reporter.ID, reportedID, &dto.ReportRequest{Reason: "spam"})
		require.NoError(t, err)
		out = append(out, res)
	}
	return out
}

func countOf(messages []string, want string) int {
	n := 0
	for _, m := range messages {
		if m == want {
			n++
		}
	}
	return n
}

func TestFileReport_WarningFiresOnce(t *testing.T) {
	f := newFixture(t)
	bob := f.user("bob")

	results := fileReports(t, f, bob.ID, 6)
	for i, res := range results {
		assert.Equal(t, int64(i+1), res.TotalReports)
		assert.Equal(t, i == 4, res.Warned, "report %d", i+1)
		assert.False(t, res.Suspended)
	}
	assert.Equal(t, string(models.ModerationWarned), results[5].State)

	notes := f.notifications(bob.ID)
	assert.Equal(t, 1, countOf(notes, WarningMessage))
	assert.Zero(t, countOf(notes, SuspensionMessage))

	user, err := f.repos.UserRepository.GetByID(f.ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
}

func TestFileReport_SuspensionAtTen(t *testing.T) {
	f := newFixture(t)
	bob := f.user("bob")

	results := fileReports(t, f, bob.ID, 11)
	assert.True(t, results[9].Suspended)
	assert.Equal(t, string(models.ModerationSuspended), results[9].State)
	assert.False(t, results[10].Suspended, "suspension fires once")

	user, err := f.repos.UserRepository.GetByID(f.ctx, bob.ID)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	notes := f.notifications(bob.ID)
	assert.Equal(t, 1, countOf(notes, WarningMessage))
	assert.Equal(t, 1, countOf(notes, SuspensionMessage))

	published := 0
	for _, n := range f.publisher.published {
		if n.UserID == bob.ID {
			published++
		}
	}
	assert.Equal(t, 2, published)
	assert.Len(t, f.pusher.ofType(EventNotification), 2)
}

func TestFileReport_StaffIsNeverSuspended(t *testing.T) {
	f := newFixture(t)
	mod := f.staff("mod")

	results := fileReports(t, f, mod.ID, 12)
	for _, res := range results {
		assert.False(t, res.Suspended)
	}
	assert.Equal(t, string(models.ModerationWarned), results[11].State)

	user, err := f.repos.UserRepository.GetByID(f.ctx, mod.ID)
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.Zero(t, countOf(f.notifications(mod.ID), SuspensionMessage))
}

func TestFileReport_Rejections(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice")
	bob := f.user("bob")

	_, err := f.svc.Moderation.FileReport(f.ctx, alice.ID, alice.ID, &dto.ReportRequest{Reason: "x"})
	assert.ErrorIs(t, err, apperrors.ErrSelfReportForbidden)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	total, err := f.repos.ReportRepository.CountAgainst(f.ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, total, "a self report writes nothing")

	_, err = f.svc.Moderation.FileReport(f.ctx, alice.ID, bob.ID, &dto.ReportRequest{Reason: "   "})
	assert.ErrorIs(t, err, apperrors.ErrEmptyReason)

	_, err = f.svc.Moderation.FileReport(f.ctx, alice.ID, 999, &dto.ReportRequest{Reason: "spam"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestGetModerationStatus(t *testing.T) {
	f := newFixture(t)
	mod := f.staff("mod")
	alice := f.user("alice")
	bob := f.user("bob")

	fileReports(t, f, bob.ID, 5)

	status, err := f.svc.Moderation.GetModerationStatus(f.ctx, mod.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), status.TotalReports)
	assert.Equal(t, string(models.ModerationWarned), status.State)
	assert.True(t, status.IsActive)

	_, err = f.svc.Moderation.GetModerationStatus(f.ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrStaffOnly)
}
