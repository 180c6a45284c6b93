package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories/memory"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/auth"
)

func TestCreateDefaultData(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	users, err := CreateDefaultData(ctx, store, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, users, len(defaultUsers))

	repos := store.Repos()
	moderator, err := repos.UserRepository.GetByUsername(ctx, "moderator")
	require.NoError(t, err)
	assert.True(t, moderator.IsStaff)
	assert.True(t, moderator.IsActive)
	assert.True(t, auth.CheckPassword(moderator.Password, DefaultPassword))

	clubIDs, err := repos.ClubRepository.ListClubIDsByMember(ctx, users[1].ID)
	require.NoError(t, err)
	require.Len(t, clubIDs, 1)
	isAdmin, err := repos.ClubRepository.IsAdmin(ctx, clubIDs[0], users[0].ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestCreateDefaultData_SkipsWhenPresent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	_, err := CreateDefaultData(ctx, store, zerolog.Nop())
	require.NoError(t, err)

	users, err := CreateDefaultData(ctx, store, zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, users)
}
