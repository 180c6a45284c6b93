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

var publicationColumns = []string{"id", "author_id", "club_id", "content", "created_at"}

// PublicationRepository handles publications and their vote set
type PublicationRepository struct {
	db db.DBTX
}

// NewPublicationRepository creates a new PublicationRepository
func NewPublicationRepository(conn db.DBTX) *PublicationRepository {
	return &PublicationRepository{db: conn}
}

// Create inserts a new publication
func (r *PublicationRepository) Create(ctx context.Context, publication *models.Publication) error {
	row, err := queryRow(ctx, r.db, psql.Insert("publications").
		Columns("author_id", "club_id", "content").
		Values(publication.AuthorID, publication.ClubID, publication.Content).
		Suffix("RETURNING id, created_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&publication.ID, &publication.CreatedAt); err != nil {
		return fmt.Errorf("error creating publication: %w", dberrors.Classify(err))
	}
	return nil
}

func (r *PublicationRepository) getOne(ctx context.Context, stmt squirrel.SelectBuilder) (*models.Publication, error) {
	row, err := queryRow(ctx, r.db, stmt)
	if err != nil {
		return nil, err
	}
	var p models.Publication
	if err := row.Scan(&p.ID, &p.AuthorID, &p.ClubID, &p.Content, &p.CreatedAt); err != nil {
		return nil, notFound(err, apperrors.ErrPublicationNotFound, "publication")
	}
	return &p, nil
}

// GetByID retrieves a publication by ID
func (r *PublicationRepository) GetByID(ctx context.Context, id int64) (*models.Publication, error) {
	return r.getOne(ctx, psql.Select(publicationColumns...).From("publications").Where(squirrel.Eq{"id": id}))
}

// GetByIDForUpdate retrieves a publication and locks its row, serializing votes on it
func (r *PublicationRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Publication, error) {
	return r.getOne(ctx, psql.Select(publicationColumns...).From("publications").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE"))
}

// GetVote returns the vote userID holds on the publication, or "" if none
func (r *PublicationRepository) GetVote(ctx context.Context, publicationID, userID int64) (models.VoteKind, error) {
	row, err := queryRow(ctx, r.db, psql.Select("kind").From("publication_votes").
		Where(squirrel.Eq{"publication_id": publicationID, "user_id": userID}))
	if err != nil {
		return "", err
	}
	var kind models.VoteKind
	if err := row.Scan(&kind); err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("error retrieving vote: %w", dberrors.Classify(err))
	}
	return kind, nil
}

// SetVote records or replaces the vote userID holds on the publication
func (r *PublicationRepository) SetVote(ctx context.Context, publicationID, userID int64, kind models.VoteKind) error {
	_, err := exec(ctx, r.db, psql.Insert("publication_votes").
		Columns("publication_id", "user_id", "kind").
		Values(publicationID, userID, string(kind)).
		Suffix("ON CONFLICT (publication_id, user_id) DO UPDATE SET kind = EXCLUDED.kind, created_at = NOW()"))
	if err != nil {
		return fmt.Errorf("error saving vote: %w", err)
	}
	return nil
}

// DeleteVote removes the vote userID holds on the publication
func (r *PublicationRepository) DeleteVote(ctx context.Context, publicationID, userID int64) error {
	_, err := exec(ctx, r.db, psql.Delete("publication_votes").
		Where(squirrel.Eq{"publication_id": publicationID, "user_id": userID}))
	if err != nil {
		return fmt.Errorf("error deleting vote: %w", err)
	}
	return nil
}

// CountVotes derives like and dislike counts from the vote set
func (r *PublicationRepository) CountVotes(ctx context.Context, publicationID int64) (models.VoteCounts, error) {
	var counts models.VoteCounts
	row, err := queryRow(ctx, r.db, psql.Select(
		"COUNT(*) FILTER (WHERE kind = 'LIKE')",
		"COUNT(*) FILTER (WHERE kind = 'DISLIKE')",
	).From("publication_votes").Where(squirrel.Eq{"publication_id": publicationID}))
	if err != nil {
		return counts, err
	}
	if err := row.Scan(&counts.Likes, &counts.Dislikes); err != nil {
		return counts, fmt.Errorf("error counting votes: %w", dberrors.Classify(err))
	}
	return counts, nil
}

// ReactionRepository handles typed reactions on publications
type ReactionRepository struct {
	db db.DBTX
}

// NewReactionRepository creates a new ReactionRepository
func NewReactionRepository(conn db.DBTX) *ReactionRepository {
	return &ReactionRepository{db: conn}
}

// Create inserts a new reaction
func (r *ReactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	row, err := queryRow(ctx, r.db, psql.Insert("reactions").
		Columns("publication_id", "user_id", "type", "comment", "parent_id").
		Values(reaction.PublicationID, reaction.UserID, string(reaction.Type), reaction.Comment, reaction.ParentID).
		Suffix("RETURNING id, created_at"))
	if err != nil {
		return err
	}
	if err := row.Scan(&reaction.ID, &reaction.CreatedAt); err != nil {
		return fmt.Errorf("error creating reaction: %w", dberrors.Classify(err))
	}
	return nil
}

// GetByID retrieves a reaction by ID
func (r *ReactionRepository) GetByID(ctx context.Context, id int64) (*models.Reaction, error) {
	row, err := queryRow(ctx, r.db, psql.Select("id", "publication_id", "user_id", "type", "comment", "parent_id", "created_at").
		From("reactions").Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	var re models.Reaction
	if err := row.Scan(&re.ID, &re.PublicationID, &re.UserID, &re.Type, &re.Comment, &re.ParentID, &re.CreatedAt); err != nil {
		return nil, notFound(err, apperrors.ErrReactionNotFound, "reaction")
	}
	return &re, nil
}

// ListByPublication lists reactions oldest first with their authors
func (r *ReactionRepository) ListByPublication(ctx context.Context, publicationID int64) ([]*models.Reaction, error) {
	rows, err := query(ctx, r.db, psql.Select(
		"r.id", "r.publication_id", "r.user_id", "r.type", "r.comment", "r.parent_id", "r.created_at",
		"u.id", "u.username", "u.is_staff", "u.is_active",
	).From("reactions r").
		Join("users u ON u.id = r.user_id").
		Where(squirrel.Eq{"r.publication_id": publicationID}).
		OrderBy("r.created_at ASC", "r.id ASC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reactions := []*models.Reaction{}
	for rows.Next() {
		var re models.Reaction
		var u models.User
		if err := rows.Scan(&re.ID, &re.PublicationID, &re.UserID, &re.Type, &re.Comment, &re.ParentID, &re.CreatedAt,
			&u.ID, &u.Username, &u.IsStaff, &u.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning reaction: %w", err)
		}
		re.User = &u
		reactions = append(reactions, &re)
	}
	return reactions, rows.Err()
}
