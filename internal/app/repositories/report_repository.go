package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/db"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/dberrors"
)

// ReportRepository handles abuse reports
type ReportRepository struct {
	db db.DBTX
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(conn db.DBTX) *ReportRepository {
	return &ReportRepository{db: conn}
}

// Create inserts a new report
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	row, err := queryRow(ctx, r.db, psql.Insert("reports").
		Columns("reporter_id", "reported_id", "reason").
		Values(report.ReporterID, report.ReportedID, report.Reason).
		Suffix("RETURNING id, created_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&report.ID, &report.CreatedAt); err != nil {
		return fmt.Errorf("error creating report: %w", dberrors.Classify(err))
	}
	return nil
}

// CountAgainst counts every report ever filed against userID
func (r *ReportRepository) CountAgainst(ctx context.Context, userID int64) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("reports").Where(squirrel.Eq{"reported_id": userID}))
}
