package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/db"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/dberrors"
)

var messageColumns = []string{"id", "sender_id", "recipient_id", "content", "is_read", "created_at"}

// MessageRepository handles direct messages
type MessageRepository struct {
	db db.DBTX
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(conn db.DBTX) *MessageRepository {
	return &MessageRepository{db: conn}
}

func scanMessage(row pgx.Row) (*models.Message, error) {
	var m models.Message
	if err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepository) list(ctx context.Context, stmt squirrel.SelectBuilder) ([]*models.Message, error) {
	rows, err := query(ctx, r.db, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Create inserts a new direct message
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	row, err := queryRow(ctx, r.db, psql.Insert("messages").
		Columns("sender_id", "recipient_id", "content", "is_read").
		Values(message.SenderID, message.RecipientID, message.Content, message.IsRead).
		Suffix("RETURNING id, created_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&message.ID, &message.CreatedAt); err != nil {
		return fmt.Errorf("error creating message: %w", dberrors.Classify(err))
	}
	return nil
}

// GetByID retrieves a direct message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	row, err := queryRow(ctx, r.db, psql.Select(messageColumns...).From("messages").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	m, err := scanMessage(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrMessageNotFound, "message")
	}
	return m, nil
}

// ListByParticipant lists every message userID sent or received
func (r *MessageRepository) ListByParticipant(ctx context.Context, userID int64, q string) ([]*models.Message, error) {
	stmt := psql.Select(messageColumns...).From("messages").
		Where(squirrel.Or{squirrel.Eq{"sender_id": userID}, squirrel.Eq{"recipient_id": userID}}).
		OrderBy("created_at ASC", "id ASC")
	if q != "" {
		stmt = stmt.Where(squirrel.ILike{"content": likePattern(q)})
	}
	return r.list(ctx, stmt)
}

// ListThread lists the messages exchanged between two users, oldest first
func (r *MessageRepository) ListThread(ctx context.Context, userA, userB int64) ([]*models.Message, error) {
	return r.list(ctx, psql.Select(messageColumns...).From("messages").
		Where(squirrel.Or{
			squirrel.Eq{"sender_id": userA, "recipient_id": userB},
			squirrel.Eq{"sender_id": userB, "recipient_id": userA},
		}).
		OrderBy("created_at ASC", "id ASC"))
}

// MarkThreadRead marks unread messages from senderID to recipientID as read
func (r *MessageRepository) MarkThreadRead(ctx context.Context, recipientID, senderID int64) (int64, error) {
	n, err := exec(ctx, r.db, psql.Update("messages").
		Set("is_read", true).
		Where(squirrel.Eq{"sender_id": senderID, "recipient_id": recipientID, "is_read": false}))
	if err != nil {
		return 0, fmt.Errorf("error marking thread read: %w", err)
	}
	return n, nil
}

// MarkRead marks one message as read
func (r *MessageRepository) MarkRead(ctx context.Context, id int64) error {
	n, err := exec(ctx, r.db, psql.Update("messages").Set("is_read", true).Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("error marking message read: %w", err)
	}
	if n == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}

// ClubMessageRepository handles club board messages and their read sets
type ClubMessageRepository struct {
	db db.DBTX
}

// NewClubMessageRepository creates a new ClubMessageRepository
func NewClubMessageRepository(conn db.DBTX) *ClubMessageRepository {
	return &ClubMessageRepository{db: conn}
}

// viewerSelect selects club messages with a read flag for viewerID
func viewerSelect(viewerID int64) squirrel.SelectBuilder {
	return psql.Select(
		"m.id", "m.club_id", "m.sender_id", "m.content", "m.parent_id", "m.created_at",
		"(cr.user_id IS NOT NULL)",
	).From("club_messages m").
		JoinClause("LEFT JOIN club_message_reads cr ON cr.message_id = m.id AND cr.user_id = ?", viewerID)
}

func (r *ClubMessageRepository) list(ctx context.Context, stmt squirrel.SelectBuilder, withSender bool) ([]*models.ClubMessage, error) {
	rows, err := query(ctx, r.db, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*models.ClubMessage{}
	for rows.Next() {
		var m models.ClubMessage
		dest := []interface{}{&m.ID, &m.ClubID, &m.SenderID, &m.Content, &m.ParentID, &m.CreatedAt, &m.ReadByViewer}
		var u models.User
		if withSender {
			dest = append(dest, &u.ID, &u.Username, &u.IsStaff, &u.IsActive)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning club message: %w", err)
		}
		if withSender {
			m.Sender = &u
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// Create inserts a new club message
func (r *ClubMessageRepository) Create(ctx context.Context, message *models.ClubMessage) error {
	row, err := queryRow(ctx, r.db, psql.Insert("club_messages").
		Columns("club_id", "sender_id", "content", "parent_id").
		Values(message.ClubID, message.SenderID, message.Content, message.ParentID).
		Suffix("RETURNING id, created_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&message.ID, &message.CreatedAt); err != nil {
		return fmt.Errorf("error creating club message: %w", dberrors.Classify(err))
	}
	return nil
}

// GetByID retrieves a club message by ID
func (r *ClubMessageRepository) GetByID(ctx context.Context, id int64) (*models.ClubMessage, error) {
	row, err := queryRow(ctx, r.db, psql.Select("id", "club_id", "sender_id", "content", "parent_id", "created_at").
		From("club_messages").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	var m models.ClubMessage
	if err := row.Scan(&m.ID, &m.ClubID, &m.SenderID, &m.Content, &m.ParentID, &m.CreatedAt); err != nil {
		return nil, notFound(err, apperrors.ErrMessageNotFound, "club message")
	}
	return &m, nil
}

// ListByClubs lists the messages of the given clubs
func (r *ClubMessageRepository) ListByClubs(ctx context.Context, clubIDs []int64, q string, viewerID int64) ([]*models.ClubMessage, error) {
	if len(clubIDs) == 0 {
		return []*models.ClubMessage{}, nil
	}
	stmt := viewerSelect(viewerID).
		Where(squirrel.Eq{"m.club_id": clubIDs}).
		OrderBy("m.created_at ASC", "m.id ASC")
	if q != "" {
		stmt = stmt.Where(squirrel.ILike{"m.content": likePattern(q)})
	}
	return r.list(ctx, stmt, false)
}

// ListByClub lists a club board oldest first with senders
func (r *ClubMessageRepository) ListByClub(ctx context.Context, clubID, viewerID int64) ([]*models.ClubMessage, error) {
	return r.list(ctx, viewerSelect(viewerID).
		Columns("u.id", "u.username", "u.is_staff", "u.is_active").
		Join("users u ON u.id = m.sender_id").
		Where(squirrel.Eq{"m.club_id": clubID}).
		OrderBy("m.created_at ASC", "m.id ASC"), true)
}

// MarkRead adds userID to the read set of a club message
func (r *ClubMessageRepository) MarkRead(ctx context.Context, messageID, userID int64) error {
	_, err := exec(ctx, r.db, psql.Insert("club_message_reads").
		Columns("message_id", "user_id").
		Values(messageID, userID).
		Suffix("ON CONFLICT DO NOTHING"))
	if err != nil {
		return fmt.Errorf("error marking club message read: %w", err)
	}
	return nil
}
