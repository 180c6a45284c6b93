package memory

import (
	"context"
	"sort"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

type publicationRepository struct{ *base }

func (r *publicationRepository) Create(_ context.Context, publication *models.Publication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	publication.ID = r.d.id()
	r.stamp(&publication.CreatedAt)
	r.d.publications[publication.ID] = *publication
	return nil
}

func (r *publicationRepository) GetByID(_ context.Context, id int64) (*models.Publication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.d.publications[id]
	if !ok {
		return nil, apperrors.ErrPublicationNotFound
	}
	return &p, nil
}

func (r *publicationRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Publication, error) {
	return r.GetByID(ctx, id)
}

func (r *publicationRepository) GetVote(_ context.Context, publicationID, userID int64) (models.VoteKind, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.d.votes[pair{publicationID, userID}], nil
}

func (r *publicationRepository) SetVote(_ context.Context, publicationID, userID int64, kind models.VoteKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.d.votes[pair{publicationID, userID}] = kind
	return nil
}

func (r *publicationRepository) DeleteVote(_ context.Context, publicationID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.d.votes, pair{publicationID, userID})
	return nil
}

func (r *publicationRepository) CountVotes(_ context.Context, publicationID int64) (models.VoteCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var counts models.VoteCounts
	for k, kind := range r.d.votes {
		if k[0] != publicationID {
			continue
		}
		switch kind {
		case models.VoteLike:
			counts.Likes++
		case models.VoteDislike:
			counts.Dislikes++
		}
	}
	return counts, nil
}

type reactionRepository struct{ *base }

func (r *reactionRepository) Create(_ context.Context, reaction *models.Reaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reaction.ID = r.d.id()
	r.stamp(&reaction.CreatedAt)
	stored := *reaction
	stored.User = nil
	r.d.reactions[reaction.ID] = stored
	return nil
}

func (r *reactionRepository) GetByID(_ context.Context, id int64) (*models.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	re, ok := r.d.reactions[id]
	if !ok {
		return nil, apperrors.ErrReactionNotFound
	}
	return &re, nil
}

func (r *reactionRepository) ListByPublication(_ context.Context, publicationID int64) ([]*models.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reactions := []*models.Reaction{}
	for _, re := range r.d.reactions {
		if re.PublicationID != publicationID {
			continue
		}
		u, ok := r.d.users[re.UserID]
		if !ok {
			continue
		}
		re.User = &u
		reactions = append(reactions, &re)
	}
	sort.Slice(reactions, func(i, j int) bool {
		if !reactions[i].CreatedAt.Equal(reactions[j].CreatedAt) {
			return reactions[i].CreatedAt.Before(reactions[j].CreatedAt)
		}
		return reactions[i].ID < reactions[j].ID
	})
	return reactions, nil
}
