package memory

import (
	"context"
	"sort"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

type clubRepository struct{ *base }

func (r *clubRepository) Create(_ context.Context, club *models.Club) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.d.clubs {
		if c.Name == club.Name {
			return apperrors.NewConflictError("a club with this name already exists")
		}
	}
	club.ID = r.d.id()
	r.stamp(&club.CreatedAt)
	r.d.clubs[club.ID] = *club
	return nil
}

func (r *clubRepository) GetByID(_ context.Context, id int64) (*models.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.d.clubs[id]
	if !ok {
		return nil, apperrors.ErrClubNotFound
	}
	return &c, nil
}

func (r *clubRepository) GetByIDs(_ context.Context, ids []int64) (map[int64]*models.Club, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clubs := make(map[int64]*models.Club, len(ids))
	for _, id := range ids {
		if c, ok := r.d.clubs[id]; ok {
			clubs[id] = &c
		}
	}
	return clubs, nil
}

func (r *clubRepository) AddMember(_ context.Context, clubID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pair{clubID, userID}
	if _, ok := r.d.members[k]; ok {
		return false, nil
	}
	r.d.members[k] = r.now()
	return true, nil
}

func (r *clubRepository) RemoveMember(_ context.Context, clubID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pair{clubID, userID}
	delete(r.d.admins, k)
	if _, ok := r.d.members[k]; !ok {
		return false, nil
	}
	delete(r.d.members, k)
	return true, nil
}

func (r *clubRepository) IsMember(_ context.Context, clubID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.d.members[pair{clubID, userID}]
	return ok, nil
}

func (r *clubRepository) ListMemberIDs(_ context.Context, clubID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	type member struct {
		id int64
		at int64
	}
	var members []member
	for k, at := range r.d.members {
		if k[0] == clubID {
			members = append(members, member{id: k[1], at: at.UnixNano()})
		}
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].at != members[j].at {
			return members[i].at < members[j].at
		}
		return members[i].id < members[j].id
	})

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.id)
	}
	return ids, nil
}

func (r *clubRepository) CountMembers(_ context.Context, clubID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k := range r.d.members {
		if k[0] == clubID {
			n++
		}
	}
	return n, nil
}

func (r *clubRepository) ListClubIDsByMember(_ context.Context, userID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []int64
	for k := range r.d.members {
		if k[1] == userID {
			ids = append(ids, k[0])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *clubRepository) AddAdmin(_ context.Context, clubID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pair{clubID, userID}
	if _, ok := r.d.admins[k]; ok {
		return false, nil
	}
	r.d.admins[k] = struct{}{}
	return true, nil
}

func (r *clubRepository) RemoveAdmin(_ context.Context, clubID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pair{clubID, userID}
	if _, ok := r.d.admins[k]; !ok {
		return false, nil
	}
	delete(r.d.admins, k)
	return true, nil
}

func (r *clubRepository) IsAdmin(_ context.Context, clubID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.d.admins[pair{clubID, userID}]
	return ok, nil
}

type pageRepository struct{ *base }

func (r *pageRepository) Create(_ context.Context, page *models.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	page.ID = r.d.id()
	r.stamp(&page.CreatedAt)
	r.d.pages[page.ID] = *page
	return nil
}

func (r *pageRepository) GetByID(_ context.Context, id int64) (*models.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.d.pages[id]
	if !ok {
		return nil, apperrors.ErrPageNotFound
	}
	return &p, nil
}

func (r *pageRepository) AddSubscriber(_ context.Context, pageID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pair{pageID, userID}
	if _, ok := r.d.subscribers[k]; ok {
		return false, nil
	}
	r.d.subscribers[k] = struct{}{}
	return true, nil
}

func (r *pageRepository) RemoveSubscriber(_ context.Context, pageID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := pair{pageID, userID}
	if _, ok := r.d.subscribers[k]; !ok {
		return false, nil
	}
	delete(r.d.subscribers, k)
	return true, nil
}

func (r *pageRepository) CountSubscribers(_ context.Context, pageID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for k := range r.d.subscribers {
		if k[0] == pageID {
			n++
		}
	}
	return n, nil
}
