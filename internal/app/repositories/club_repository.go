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

var clubColumns = []string{"id", "name", "description", "creator_id", "created_at"}

// ClubRepository handles database operations for clubs, members and admins
type ClubRepository struct {
	db db.DBTX
}

// NewClubRepository creates a new ClubRepository
func NewClubRepository(conn db.DBTX) *ClubRepository {
	return &ClubRepository{db: conn}
}

func scanClub(row pgx.Row) (*models.Club, error) {
	var c models.Club
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatorID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new club
func (r *ClubRepository) Create(ctx context.Context, club *models.Club) error {
	row, err := queryRow(ctx, r.db, psql.Insert("clubs").
		Columns("name", "description", "creator_id").
		Values(club.Name, club.Description, club.CreatorID).
		Suffix("RETURNING id, created_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&club.ID, &club.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "clubs_name_key") {
			return apperrors.NewConflictError("a club with this name already exists")
		}
		return fmt.Errorf("error creating club: %w", dberrors.Classify(err))
	}
	return nil
}

// GetByID retrieves a club by ID
func (r *ClubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	row, err := queryRow(ctx, r.db, psql.Select(clubColumns...).From("clubs").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	club, err := scanClub(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrClubNotFound, "club")
	}
	return club, nil
}

// GetByIDs retrieves the clubs that exist among ids, keyed by ID
func (r *ClubRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Club, error) {
	clubs := make(map[int64]*models.Club, len(ids))
	if len(ids) == 0 {
		return clubs, nil
	}

	rows, err := query(ctx, r.db, psql.Select(clubColumns...).From("clubs").Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning club: %w", err)
		}
		clubs[c.ID] = c
	}
	return clubs, rows.Err()
}

// AddMember adds userID to the club and reports whether it was new
func (r *ClubRepository) AddMember(ctx context.Context, clubID, userID int64) (bool, error) {
	n, err := exec(ctx, r.db, psql.Insert("club_members").
		Columns("club_id", "user_id").
		Values(clubID, userID).
		Suffix("ON CONFLICT DO NOTHING"))
	if err != nil {
		return false, fmt.Errorf("error adding club member: %w", err)
	}
	return n > 0, nil
}

// RemoveMember removes userID from the club and from its admins
func (r *ClubRepository) RemoveMember(ctx context.Context, clubID, userID int64) (bool, error) {
	if _, err := r.RemoveAdmin(ctx, clubID, userID); err != nil {
		return false, err
	}
	n, err := exec(ctx, r.db, psql.Delete("club_members").Where(squirrel.Eq{"club_id": clubID, "user_id": userID}))
	if err != nil {
		return false, fmt.Errorf("error removing club member: %w", err)
	}
	return n > 0, nil
}

// IsMember checks club membership
func (r *ClubRepository) IsMember(ctx context.Context, clubID, userID int64) (bool, error) {
	return exists(ctx, r.db, psql.Select("1").From("club_members").
		Where(squirrel.Eq{"club_id": clubID, "user_id": userID}))
}

// ListMemberIDs lists the members of a club
func (r *ClubRepository) ListMemberIDs(ctx context.Context, clubID int64) ([]int64, error) {
	return r.ids(ctx, psql.Select("user_id").From("club_members").
		Where(squirrel.Eq{"club_id": clubID}).
		OrderBy("joined_at"))
}

// CountMembers counts the members of a club
func (r *ClubRepository) CountMembers(ctx context.Context, clubID int64) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("club_members").Where(squirrel.Eq{"club_id": clubID}))
}

// ListClubIDsByMember lists the clubs userID belongs to
func (r *ClubRepository) ListClubIDsByMember(ctx context.Context, userID int64) ([]int64, error) {
	return r.ids(ctx, psql.Select("club_id").From("club_members").Where(squirrel.Eq{"user_id": userID}))
}

// AddAdmin grants admin rights and reports whether they were new
func (r *ClubRepository) AddAdmin(ctx context.Context, clubID, userID int64) (bool, error) {
	n, err := exec(ctx, r.db, psql.Insert("club_admins").
		Columns("club_id", "user_id").
		Values(clubID, userID).
		Suffix("ON CONFLICT DO NOTHING"))
	if err != nil {
		return false, fmt.Errorf("error adding club admin: %w", err)
	}
	return n > 0, nil
}

// RemoveAdmin revokes admin rights and reports whether they existed
func (r *ClubRepository) RemoveAdmin(ctx context.Context, clubID, userID int64) (bool, error) {
	n, err := exec(ctx, r.db, psql.Delete("club_admins").Where(squirrel.Eq{"club_id": clubID, "user_id": userID}))
	if err != nil {
		return false, fmt.Errorf("error removing club admin: %w", err)
	}
	return n > 0, nil
}

// IsAdmin checks explicit admin rights. The creator check lives in the services.
func (r *ClubRepository) IsAdmin(ctx context.Context, clubID, userID int64) (bool, error) {
	return exists(ctx, r.db, psql.Select("1").From("club_admins").
		Where(squirrel.Eq{"club_id": clubID, "user_id": userID}))
}

func (r *ClubRepository) ids(ctx context.Context, stmt squirrel.SelectBuilder) ([]int64, error) {
	rows, err := query(ctx, r.db, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PageRepository handles pages and their subscribers
type PageRepository struct {
	db db.DBTX
}

// NewPageRepository creates a new PageRepository
func NewPageRepository(conn db.DBTX) *PageRepository {
	return &PageRepository{db: conn}
}

// Create inserts a new page
func (r *PageRepository) Create(ctx context.Context, page *models.Page) error {
	row, err := queryRow(ctx, r.db, psql.Insert("pages").
		Columns("name", "description", "creator_id").
		Values(page.Name, page.Description, page.CreatorID).
		Suffix("RETURNING id, created_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&page.ID, &page.CreatedAt); err != nil {
		return fmt.Errorf("error creating page: %w", dberrors.Classify(err))
	}
	return nil
}

// GetByID retrieves a page by ID
func (r *PageRepository) GetByID(ctx context.Context, id int64) (*models.Page, error) {
	row, err := queryRow(ctx, r.db, psql.Select("id", "name", "description", "creator_id", "created_at").
		From("pages").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	var p models.Page
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CreatorID, &p.CreatedAt); err != nil {
		return nil, notFound(err, apperrors.ErrPageNotFound, "page")
	}
	return &p, nil
}

// AddSubscriber subscribes userID and reports whether it was new
func (r *PageRepository) AddSubscriber(ctx context.Context, pageID, userID int64) (bool, error) {
	n, err := exec(ctx, r.db, psql.Insert("page_subscribers").
		Columns("page_id", "user_id").
		Values(pageID, userID).
		Suffix("ON CONFLICT DO NOTHING"))
	if err != nil {
		return false, fmt.Errorf("error subscribing to page: %w", err)
	}
	return n > 0, nil
}

// RemoveSubscriber unsubscribes userID and reports whether it existed
func (r *PageRepository) RemoveSubscriber(ctx context.Context, pageID, userID int64) (bool, error) {
	n, err := exec(ctx, r.db, psql.Delete("page_subscribers").Where(squirrel.Eq{"page_id": pageID, "user_id": userID}))
	if err != nil {
		return false, fmt.Errorf("error unsubscribing from page: %w", err)
	}
	return n > 0, nil
}

// CountSubscribers counts page subscribers
func (r *PageRepository) CountSubscribers(ctx context.Context, pageID int64) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("page_subscribers").Where(squirrel.Eq{"page_id": pageID}))
}
