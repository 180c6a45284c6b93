package repositories

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/migrations"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/db"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%hello%", likePattern("hello"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\d%`, likePattern(`c:\d`))
}

func TestRetryOnce(t *testing.T) {
	tests := []struct {
		name      string
		errs      []error
		wantCalls int
		wantErr   error
	}{
		{"success", []error{nil}, 1, nil},
		{"other error is not retried", []error{apperrors.ErrUserNotFound}, 1, apperrors.ErrUserNotFound},
		{"fault then success", []error{apperrors.ErrConcurrencyFault, nil}, 2, nil},
		{"fault twice surfaces", []error{apperrors.ErrConcurrencyFault, apperrors.ErrConcurrencyFault}, 2, apperrors.ErrConcurrencyFault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retryOnce(zerolog.Nop(), func() error {
				err := tt.errs[calls]
				calls++
				return err
			})
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	err := notFound(pgx.ErrNoRows, apperrors.ErrUserNotFound, "user")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

// newTestStore connects to TEST_DATABASE_URL and applies the migrations.
// Tests that need it are skipped when the variable is unset.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	require.NoError(t, migrations.NewMigrator(url, zerolog.Nop()).Up())

	pool, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `TRUNCATE users, clubs, publications, messages, club_messages,
		reports, moderation_states, notifications, pages RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return NewPostgresStore(&db.PostgresDB{Pool: pool}, zerolog.Nop())
}

func TestPostgresStore_ConcurrentVotesKeepOneVotePerUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	repos := store.Repos()

	author := &models.User{Username: "author", IsActive: true}
	voter := &models.User{Username: "voter", IsActive: true}
	require.NoError(t, repos.UserRepository.Create(ctx, author))
	require.NoError(t, repos.UserRepository.Create(ctx, voter))

	pub := &models.Publication{AuthorID: author.ID, Content: "hello"}
	require.NoError(t, repos.PublicationRepository.Create(ctx, pub))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		kind := models.VoteLike
		if i%2 == 1 {
			kind = models.VoteDislike
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.InTx(ctx, func(ctx context.Context, tx *Repositories) error {
				if _, err := tx.PublicationRepository.GetByIDForUpdate(ctx, pub.ID); err != nil {
					return err
				}
				return tx.PublicationRepository.SetVote(ctx, pub.ID, voter.ID, kind)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	counts, err := repos.PublicationRepository.CountVotes(ctx, pub.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, counts.Likes+counts.Dislikes)
}

func TestPostgresStore_RollbackDiscardsWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.InTx(ctx, func(ctx context.Context, tx *Repositories) error {
		if err := tx.UserRepository.Create(ctx, &models.User{Username: "ghost"}); err != nil {
			return err
		}
		return apperrors.ErrEmptyReason
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = store.Repos().UserRepository.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestPostgresStore_ClubMessageReadSet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	repos := store.Repos()

	alice := &models.User{Username: "alice", IsActive: true}
	bob := &models.User{Username: "bob", IsActive: true}
	require.NoError(t, repos.UserRepository.Create(ctx, alice))
	require.NoError(t, repos.UserRepository.Create(ctx, bob))

	club := &models.Club{Name: "Chess", CreatorID: alice.ID}
	require.NoError(t, repos.ClubRepository.Create(ctx, club))

	msg := &models.ClubMessage{ClubID: club.ID, SenderID: alice.ID, Content: "Opening night"}
	require.NoError(t, repos.ClubMessageRepository.Create(ctx, msg))
	require.NoError(t, repos.ClubMessageRepository.MarkRead(ctx, msg.ID, bob.ID))
	require.NoError(t, repos.ClubMessageRepository.MarkRead(ctx, msg.ID, bob.ID))

	forBob, err := repos.ClubMessageRepository.ListByClubs(ctx, []int64{club.ID}, "opening", bob.ID)
	require.NoError(t, err)
	require.Len(t, forBob, 1)
	assert.True(t, forBob[0].ReadByViewer)

	forAlice, err := repos.ClubMessageRepository.ListByClub(ctx, club.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, forAlice, 1)
	assert.False(t, forAlice[0].ReadByViewer)
	assert.Equal(t, "alice", forAlice[0].Sender.Username)
}
