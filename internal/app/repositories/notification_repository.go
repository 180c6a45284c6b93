package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/db"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/dberrors"
)

// NotificationRepository handles user notifications
type NotificationRepository struct {
	db db.DBTX
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(conn db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: conn}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	row, err := queryRow(ctx, r.db, psql.Insert("notifications").
		Columns("user_id", "message", "is_read").
		Values(n.UserID, n.Message, n.IsRead).
		Suffix("RETURNING id, created_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&n.ID, &n.CreatedAt); err != nil {
		return fmt.Errorf("error creating notification: %w", dberrors.Classify(err))
	}
	return nil
}

// ListByUser lists a page of notifications newest first, along with the total
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error) {
	where := squirrel.Eq{"user_id": userID}
	if unreadOnly {
		where["is_read"] = false
	}

	total, err := count(ctx, r.db, psql.Select("COUNT(*)").From("notifications").Where(where))
	if err != nil {
		return nil, 0, err
	}

	rows, err := query(ctx, r.db, psql.Select("id", "user_id", "message", "is_read", "created_at").
		From("notifications").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(uint64(limit)))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	return notifications, total, rows.Err()
}

// CountUnread counts unread notifications of userID
func (r *NotificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("notifications").
		Where(squirrel.Eq{"user_id": userID, "is_read": false}))
}

// MarkRead marks one notification of userID as read
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id int64) error {
	n, err := exec(ctx, r.db, psql.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "user_id": userID}))
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of userID as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	n, err := exec(ctx, r.db, psql.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"user_id": userID, "is_read": false}))
	if err != nil {
		return 0, fmt.Errorf("error marking notifications read: %w", err)
	}
	return n, nil
}
