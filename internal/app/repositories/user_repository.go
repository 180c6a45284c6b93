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

var userColumns = []string{"id", "username", "email", "password_hash", "is_staff", "is_active", "created_at"}

// UserRepository handles database operations for users
type UserRepository struct {
	db db.DBTX
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(conn db.DBTX) *UserRepository {
	return &UserRepository{db: conn}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.IsStaff, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	stmt := psql.Insert("users").
		Columns("username", "email", "password_hash", "is_staff", "is_active").
		Values(user.Username, user.Email, user.Password, user.IsStaff, user.IsActive).
		Suffix("RETURNING id, created_at")

	row, err := queryRow(ctx, r.db, stmt)
	if err != nil {
		return err
	}
	if err := row.Scan(&user.ID, &user.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			return apperrors.NewConflictError("username already taken")
		}
		return fmt.Errorf("error creating user: %w", dberrors.Classify(err))
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, stmt squirrel.SelectBuilder) (*models.User, error) {
	row, err := queryRow(ctx, r.db, stmt)
	if err != nil {
		return nil, err
	}
	user, err := scanUser(row)
	if err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound, "user")
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, psql.Select(userColumns...).From("users").Where(squirrel.Eq{"id": id}))
}

// GetByIDForUpdate retrieves a user by ID and locks the row
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, psql.Select(userColumns...).From("users").Where(squirrel.Eq{"id": id}).Suffix("FOR UPDATE"))
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, psql.Select(userColumns...).From("users").Where(squirrel.Eq{"username": username}))
}

// GetByIDs retrieves the users that exist among ids, keyed by ID
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	users := make(map[int64]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	rows, err := query(ctx, r.db, psql.Select(userColumns...).From("users").Where(squirrel.Eq{"id": ids}))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users[u.ID] = u
	}
	return users, rows.Err()
}

// SetActive updates the is_active flag
func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	n, err := exec(ctx, r.db, psql.Update("users").Set("is_active", active).Where(squirrel.Eq{"id": id}))
	if err != nil {
		return fmt.Errorf("error updating user status: %w", err)
	}
	if n == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// FollowRepository handles the follows edge set
type FollowRepository struct {
	db db.DBTX
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(conn db.DBTX) *FollowRepository {
	return &FollowRepository{db: conn}
}

// Add inserts the edge and reports whether it was new
func (r *FollowRepository) Add(ctx context.Context, followerID, followeeID int64) (bool, error) {
	n, err := exec(ctx, r.db, psql.Insert("follows").
		Columns("follower_id", "followee_id").
		Values(followerID, followeeID).
		Suffix("ON CONFLICT DO NOTHING"))
	if err != nil {
		return false, fmt.Errorf("error adding follow: %w", err)
	}
	return n > 0, nil
}

// Remove deletes the edge and reports whether it existed
func (r *FollowRepository) Remove(ctx context.Context, followerID, followeeID int64) (bool, error) {
	n, err := exec(ctx, r.db, psql.Delete("follows").
		Where(squirrel.Eq{"follower_id": followerID, "followee_id": followeeID}))
	if err != nil {
		return false, fmt.Errorf("error removing follow: %w", err)
	}
	return n > 0, nil
}

// Exists checks whether followerID follows followeeID
func (r *FollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	return exists(ctx, r.db, psql.Select("1").From("follows").
		Where(squirrel.Eq{"follower_id": followerID, "followee_id": followeeID}))
}

// CountFollowers counts users following userID
func (r *FollowRepository) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("follows").Where(squirrel.Eq{"followee_id": userID}))
}

// CountFollowing counts users followed by userID
func (r *FollowRepository) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	return count(ctx, r.db, psql.Select("COUNT(*)").From("follows").Where(squirrel.Eq{"follower_id": userID}))
}

// ListFollowers lists users following userID
func (r *FollowRepository) ListFollowers(ctx context.Context, userID int64) ([]*models.User, error) {
	return r.list(ctx, "f.follower_id", squirrel.Eq{"f.followee_id": userID})
}

// ListFollowing lists users followed by userID
func (r *FollowRepository) ListFollowing(ctx context.Context, userID int64) ([]*models.User, error) {
	return r.list(ctx, "f.followee_id", squirrel.Eq{"f.follower_id": userID})
}

func (r *FollowRepository) list(ctx context.Context, joinColumn string, where squirrel.Eq) ([]*models.User, error) {
	stmt := psql.Select("u.id", "u.username", "u.email", "u.password_hash", "u.is_staff", "u.is_active", "u.created_at").
		From("follows f").
		Join("users u ON u.id = " + joinColumn).
		Where(where).
		OrderBy("f.created_at DESC")

	rows, err := query(ctx, r.db, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ModerationRepository handles moderation_states
type ModerationRepository struct {
	db db.DBTX
}

// NewModerationRepository creates a new ModerationRepository
func NewModerationRepository(conn db.DBTX) *ModerationRepository {
	return &ModerationRepository{db: conn}
}

// GetState returns the recorded state or NORMAL
func (r *ModerationRepository) GetState(ctx context.Context, userID int64) (models.ModerationState, error) {
	row, err := queryRow(ctx, r.db, psql.Select("state").From("moderation_states").Where(squirrel.Eq{"user_id": userID}))
	if err != nil {
		return "", err
	}
	var state models.ModerationState
	if err := row.Scan(&state); err != nil {
		if err == pgx.ErrNoRows {
			return models.ModerationNormal, nil
		}
		return "", fmt.Errorf("error retrieving moderation state: %w", dberrors.Classify(err))
	}
	return state, nil
}

// SetState upserts the state
func (r *ModerationRepository) SetState(ctx context.Context, userID int64, state models.ModerationState) error {
	_, err := exec(ctx, r.db, psql.Insert("moderation_states").
		Columns("user_id", "state").
		Values(userID, state).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET state = EXCLUDED.state, updated_at = NOW()"))
	if err != nil {
		return fmt.Errorf("error saving moderation state: %w", err)
	}
	return nil
}
