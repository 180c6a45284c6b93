package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@h:5432/db?sslmode=disable", toPgx5URL("postgres://u:p@h:5432/db?sslmode=disable"))
	assert.Equal(t, "pgx5://h/db", toPgx5URL("postgresql://h/db"))
	assert.Equal(t, "pgx5://h/db", toPgx5URL("pgx5://h/db"))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(files, "sql/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(files, "sql/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
