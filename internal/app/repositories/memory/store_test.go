package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

func TestInTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repos := store.Repos()

	alice := &models.User{Username: "alice", IsActive: true}
	require.NoError(t, repos.UserRepository.Create(ctx, alice))

	boom := errors.New("boom")
	err := store.InTx(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		require.NoError(t, tx.UserRepository.SetActive(ctx, alice.ID, false))
		require.NoError(t, tx.NotificationRepository.Create(ctx, &models.Notification{UserID: alice.ID, Message: "hi"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repos.UserRepository.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	unread, err := repos.NotificationRepository.CountUnread(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestInTx_CommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	var userID int64
	err := store.InTx(ctx, func(ctx context.Context, tx *repositories.Repositories) error {
		u := &models.User{Username: "bob", IsActive: true}
		if err := tx.UserRepository.Create(ctx, u); err != nil {
			return err
		}
		userID = u.ID
		return tx.ModerationRepository.SetState(ctx, u.ID, models.ModerationWarned)
	})
	require.NoError(t, err)

	state, err := store.Repos().ModerationRepository.GetState(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, models.ModerationWarned, state)
}

func TestRepositories_ReturnCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repos := store.Repos()

	u := &models.User{Username: "carol", IsActive: true}
	require.NoError(t, repos.UserRepository.Create(ctx, u))

	got, err := repos.UserRepository.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Username = "mallory"

	again, err := repos.UserRepository.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", again.Username)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()

	require.NoError(t, repos.UserRepository.Create(ctx, &models.User{Username: "dave"}))
	err := repos.UserRepository.Create(ctx, &models.User{Username: "dave"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreate_KeepsExplicitTimestamp(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(WithClock(func() time.Time { return fixed }))
	repos := store.Repos()

	explicit := time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC)
	m := &models.Message{SenderID: 1, RecipientID: 2, Content: "old", CreatedAt: explicit}
	require.NoError(t, repos.MessageRepository.Create(ctx, m))
	n := &models.Message{SenderID: 2, RecipientID: 1, Content: "new"}
	require.NoError(t, repos.MessageRepository.Create(ctx, n))

	thread, err := repos.MessageRepository.ListThread(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, explicit, thread[0].CreatedAt)
	assert.Equal(t, fixed, thread[1].CreatedAt)
}

func TestVotes_OneVotePerUser(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()

	require.NoError(t, repos.PublicationRepository.SetVote(ctx, 1, 7, models.VoteLike))
	require.NoError(t, repos.PublicationRepository.SetVote(ctx, 1, 7, models.VoteDislike))
	require.NoError(t, repos.PublicationRepository.SetVote(ctx, 1, 8, models.VoteDislike))

	counts, err := repos.PublicationRepository.CountVotes(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.VoteCounts{Likes: 0, Dislikes: 2}, counts)

	require.NoError(t, repos.PublicationRepository.DeleteVote(ctx, 1, 7))
	kind, err := repos.PublicationRepository.GetVote(ctx, 1, 7)
	require.NoError(t, err)
	assert.Empty(t, kind)
}

func TestNotificationRepository_ListByUserPaginates(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repos()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repos.NotificationRepository.Create(ctx, &models.Notification{
			UserID:    1,
			Message:   "n",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, total, err := repos.NotificationRepository.ListByUser(ctx, 1, false, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, base.Add(2*time.Minute), page[0].CreatedAt)
	assert.Equal(t, base.Add(time.Minute), page[1].CreatedAt)

	page, _, err = repos.NotificationRepository.ListByUser(ctx, 1, false, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
}
