package memory

import (
	"context"
	"sort"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

type userRepository struct{ *base }

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.d.users {
		if u.Username == user.Username {
			return apperrors.NewConflictError("username already taken")
		}
	}
	user.ID = r.d.id()
	r.stamp(&user.CreatedAt)
	r.d.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.d.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error) {
	return r.GetByID(ctx, id)
}

func (r *userRepository) GetByIDs(_ context.Context, ids []int64) (map[int64]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make(map[int64]*models.User, len(ids))
	for _, id := range ids {
		if u, ok := r.d.users[id]; ok {
			users[id] = &u
		}
	}
	return users, nil
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.d.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *userRepository) SetActive(_ context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.d.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.IsActive = active
	r.d.users[id] = u
	return nil
}

type followRepository struct{ *base }

func (r *followRepository) Add(_ context.Context, followerID, followeeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pair{followerID, followeeID}
	if _, ok := r.d.follows[k]; ok {
		return false, nil
	}
	r.d.follows[k] = r.now()
	return true, nil
}

func (r *followRepository) Remove(_ context.Context, followerID, followeeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pair{followerID, followeeID}
	if _, ok := r.d.follows[k]; !ok {
		return false, nil
	}
	delete(r.d.follows, k)
	return true, nil
}

func (r *followRepository) Exists(_ context.Context, followerID, followeeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.d.follows[pair{followerID, followeeID}]
	return ok, nil
}

func (r *followRepository) CountFollowers(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k := range r.d.follows {
		if k[1] == userID {
			n++
		}
	}
	return n, nil
}

func (r *followRepository) CountFollowing(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k := range r.d.follows {
		if k[0] == userID {
			n++
		}
	}
	return n, nil
}

func (r *followRepository) ListFollowers(_ context.Context, userID int64) ([]*models.User, error) {
	return r.list(userID, 1, 0), nil
}

func (r *followRepository) ListFollowing(_ context.Context, userID int64) ([]*models.User, error) {
	return r.list(userID, 0, 1), nil
}

// list returns the users at position other of the edges whose position match equals userID
func (r *followRepository) list(userID int64, match, other int) []*models.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	type edge struct {
		user models.User
		at   int64
	}
	var edges []edge
	for k, at := range r.d.follows {
		if k[match] != userID {
			continue
		}
		if u, ok := r.d.users[k[other]]; ok {
			edges = append(edges, edge{user: u, at: at.UnixNano()})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].at != edges[j].at {
			return edges[i].at > edges[j].at
		}
		return edges[i].user.ID < edges[j].user.ID
	})

	users := make([]*models.User, 0, len(edges))
	for i := range edges {
		users = append(users, &edges[i].user)
	}
	return users
}

type moderationRepository struct{ *base }

func (r *moderationRepository) GetState(_ context.Context, userID int64) (models.ModerationState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state, ok := r.d.moderation[userID]; ok {
		return state, nil
	}
	return models.ModerationNormal, nil
}

func (r *moderationRepository) SetState(_ context.Context, userID int64, state models.ModerationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.d.moderation[userID] = state
	return nil
}

type reportRepository struct{ *base }

func (r *reportRepository) Create(_ context.Context, report *models.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	report.ID = r.d.id()
	r.stamp(&report.CreatedAt)
	r.d.reports[report.ID] = *report
	return nil
}

func (r *reportRepository) CountAgainst(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, rep := range r.d.reports {
		if rep.ReportedID == userID {
			n++
		}
	}
	return n, nil
}
