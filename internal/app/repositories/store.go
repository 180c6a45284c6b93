package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/db"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/dberrors"
)

// psql builds Postgres statements with $n placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresStore implements Store on a pgx connection pool
type PostgresStore struct {
	database *db.PostgresDB
	repos    *Repositories
	logger   zerolog.Logger
}

// NewPostgresStore creates a Store backed by database
func NewPostgresStore(database *db.PostgresDB, logger zerolog.Logger) *PostgresStore {
	return &PostgresStore{
		database: database,
		repos:    NewRepositories(database.Pool),
		logger:   logger,
	}
}

// Repos returns pool-bound repositories
func (s *PostgresStore) Repos() *Repositories {
	return s.repos
}

// InTx runs fn in a transaction, retrying once on a concurrency fault
func (s *PostgresStore) InTx(ctx context.Context, fn TxFn) error {
	run := func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, NewRepositories(tx))
	}

	return retryOnce(s.logger, func() error {
		return s.database.WithTransaction(ctx, run)
	})
}

// retryOnce calls attempt a second time when the first call fails with a concurrency fault
func retryOnce(logger zerolog.Logger, attempt func() error) error {
	err := attempt()
	if err == nil || !dberrors.IsConcurrencyFault(err) {
		return err
	}

	logger.Warn().Err(err).Msg("Concurrency fault, retrying transaction once")
	return attempt()
}

// exec builds and executes a statement, returning the affected row count
func exec(ctx context.Context, conn db.DBTX, stmt squirrel.Sqlizer) (int64, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}
	tag, err := conn.Exec(ctx, sql, args...)
	if err != nil {
		return 0, dberrors.Classify(err)
	}
	return tag.RowsAffected(), nil
}

// queryRow builds a statement and returns its single row
func queryRow(ctx context.Context, conn db.DBTX, stmt squirrel.Sqlizer) (pgx.Row, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return conn.QueryRow(ctx, sql, args...), nil
}

// query builds a statement and returns its rows
func query(ctx context.Context, conn db.DBTX, stmt squirrel.Sqlizer) (pgx.Rows, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", dberrors.Classify(err))
	}
	return rows, nil
}

// count runs a COUNT(*) style statement
func count(ctx context.Context, conn db.DBTX, stmt squirrel.Sqlizer) (int64, error) {
	row, err := queryRow(ctx, conn, stmt)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting rows: %w", dberrors.Classify(err))
	}
	return n, nil
}

// exists runs a SELECT 1 ... LIMIT 1 statement
func exists(ctx context.Context, conn db.DBTX, stmt squirrel.SelectBuilder) (bool, error) {
	row, err := queryRow(ctx, conn, stmt.Prefix("SELECT EXISTS (").Suffix(")"))
	if err != nil {
		return false, err
	}
	var ok bool
	if err := row.Scan(&ok); err != nil {
		return false, fmt.Errorf("error checking existence: %w", dberrors.Classify(err))
	}
	return ok, nil
}

// notFound maps pgx.ErrNoRows to sentinel and wraps anything else
func notFound(err error, sentinel error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return fmt.Errorf("error retrieving %s: %w", what, dberrors.Classify(err))
}

// likePattern escapes LIKE wildcards in a user supplied search string
func likePattern(query string) string {
	r := []rune{}
	for _, c := range query {
		if c == '%' || c == '_' || c == '\\' {
			r = append(r, '\\')
		}
		r = append(r, c)
	}
	return "%" + string(r) + "%"
}
