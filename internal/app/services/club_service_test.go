package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

func TestClubLifecycle(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	bob := f.user("bob")

	club, err := f.svc.Club.CreateClub(f.ctx, owner.ID, &dto.CreateClubRequest{Name: " Chess Club ", Description: "Weekly games"})
	require.NoError(t, err)
	assert.Equal(t, "Chess Club", club.Name)
	assert.Equal(t, int64(1), club.MembersCount)
	assert.True(t, club.IsMember)
	assert.True(t, club.IsAdmin)
	assert.Equal(t, "owner", club.Creator.Username)

	_, err = f.svc.Club.CreateClub(f.ctx, bob.ID, &dto.CreateClubRequest{Name: "Chess Club"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.svc.Club.CreateClub(f.ctx, bob.ID, &dto.CreateClubRequest{Name: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	joined, err := f.svc.Club.JoinClub(f.ctx, bob.ID, club.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), joined.MembersCount)

	_, err = f.svc.Club.JoinClub(f.ctx, bob.ID, club.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyMember)

	view, err := f.svc.Club.GetClub(f.ctx, bob.ID, club.ID)
	require.NoError(t, err)
	assert.True(t, view.IsMember)
	assert.False(t, view.IsAdmin)

	_, err = f.svc.Club.LeaveClub(f.ctx, owner.ID, club.ID)
	assert.ErrorIs(t, err, apperrors.ErrCreatorCannotLeave)

	left, err := f.svc.Club.LeaveClub(f.ctx, bob.ID, club.ID)
	require.NoError(t, err)
	assert.False(t, left.IsMember)
	assert.Equal(t, int64(1), left.MembersCount)

	_, err = f.svc.Club.LeaveClub(f.ctx, bob.ID, club.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotMember)

	_, err = f.svc.Club.JoinClub(f.ctx, bob.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrClubNotFound)
}

func TestManageAdmin(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	admin := f.user("admin")
	member := f.user("member")
	outsider := f.user("outsider")
	club := f.club("Chess", owner, admin, member)

	res, err := f.svc.Club.ManageAdmin(f.ctx, owner.ID, club.ID, &dto.AdminRequest{UserID: admin.ID, Action: AdminActionAdd})
	require.NoError(t, err)
	assert.True(t, res.IsAdmin)
	assert.Equal(t, []string{"You have been appointed admin of the club Chess"}, f.notifications(admin.ID))

	_, err = f.svc.Club.ManageAdmin(f.ctx, owner.ID, club.ID, &dto.AdminRequest{UserID: admin.ID, Action: AdminActionAdd})
	require.NoError(t, err)
	assert.Len(t, f.notifications(admin.ID), 1, "no notice without a change")

	_, err = f.svc.Club.ManageAdmin(f.ctx, member.ID, club.ID, &dto.AdminRequest{UserID: member.ID, Action: AdminActionAdd})
	assert.ErrorIs(t, err, apperrors.ErrNotClubAdmin)

	_, err = f.svc.Club.ManageAdmin(f.ctx, admin.ID, club.ID, &dto.AdminRequest{UserID: outsider.ID, Action: AdminActionAdd})
	assert.ErrorIs(t, err, apperrors.ErrNotMember)

	_, err = f.svc.Club.ManageAdmin(f.ctx, admin.ID, club.ID, &dto.AdminRequest{UserID: owner.ID, Action: AdminActionRemove})
	assert.ErrorIs(t, err, apperrors.ErrCreatorCannotLeave)

	_, err = f.svc.Club.ManageAdmin(f.ctx, owner.ID, club.ID, &dto.AdminRequest{UserID: admin.ID, Action: "promote"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAction)

	res, err = f.svc.Club.ManageAdmin(f.ctx, owner.ID, club.ID, &dto.AdminRequest{UserID: admin.ID, Action: AdminActionRemove})
	require.NoError(t, err)
	assert.False(t, res.IsAdmin)
	assert.Contains(t, f.notifications(admin.ID), "You are no longer an admin of the club Chess")

	isAdmin, err := f.repos.ClubRepository.IsAdmin(f.ctx, club.ID, admin.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestClubResponse_MissingCreator(t *testing.T) {
	f := newFixture(t)
	viewer := f.user("viewer")
	club := &models.Club{Name: "Orphaned", CreatorID: 4242}
	require.NoError(t, f.repos.ClubRepository.Create(f.ctx, club))

	got, err := f.svc.Club.GetClub(f.ctx, viewer.ID, club.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4242), got.Creator.ID)
	assert.Empty(t, got.Creator.Username)
}
