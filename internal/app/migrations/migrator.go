package migrations

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers the pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var files embed.FS

// Migrator applies the embedded schema migrations
type Migrator struct {
	databaseURL string
	logger      zerolog.Logger
}

// NewMigrator creates a migrator for a postgres:// connection string
func NewMigrator(connString string, logger zerolog.Logger) *Migrator {
	return &Migrator{
		databaseURL: toPgx5URL(connString),
		logger:      logger,
	}
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (m *Migrator) Up() error {
	mig, err := m.open()
	if err != nil {
		return err
	}
	defer m.close(mig)

	if err := mig.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Info().Msg("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := mig.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	m.logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migrations applied")
	return nil
}

// Down rolls back every migration
func (m *Migrator) Down() error {
	mig, err := m.open()
	if err != nil {
		return err
	}
	defer m.close(mig)

	if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return nil
}

func (m *Migrator) open() (*migrate.Migrate, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, m.databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise migrator: %w", err)
	}
	return mig, nil
}

func (m *Migrator) close(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil || dbErr != nil {
		m.logger.Warn().AnErr("sourceErr", srcErr).AnErr("dbErr", dbErr).Msg("Failed to close migrator")
	}
}

func toPgx5URL(connString string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(connString, prefix) {
			return "pgx5://" + strings.TrimPrefix(connString, prefix)
		}
	}
	return connString
}
