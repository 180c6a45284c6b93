package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories/memory"
)

type pushedEvent struct {
	userIDs   []int64
	eventType string
	payload   interface{}
}

type fakePusher struct {
	mu     sync.Mutex
	events []pushedEvent
}

func (p *fakePusher) PushToUsers(userIDs []int64, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, pushedEvent{userIDs: userIDs, eventType: eventType, payload: payload})
}

func (p *fakePusher) ofType(eventType string) []pushedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []pushedEvent
	for _, e := range p.events {
		if e.eventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*models.Notification
	err       error
}

func (p *fakePublisher) PublishNotification(n *models.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, n)
	return p.err
}

// stepClock returns a strictly increasing time on every call
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	t         *testing.T
	ctx       context.Context
	store     *memory.Store
	repos     *repositories.Repositories
	pusher    *fakePusher
	publisher *fakePublisher
	svc       *Services
	seq       int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := &stepClock{now: time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC)}
	store := memory.NewStore(memory.WithClock(clock.Now))
	pusher := &fakePusher{}
	publisher := &fakePublisher{}

	return &fixture{
		t:         t,
		ctx:       context.Background(),
		store:     store,
		repos:     store.Repos(),
		pusher:    pusher,
		publisher: publisher,
		svc: NewServices(Dependencies{
			Store:     store,
			Pusher:    pusher,
			Publisher: publisher,
			Logger:    zerolog.Nop(),
		}),
	}
}

func (f *fixture) user(username string) *models.User {
	f.t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", IsActive: true}
	require.NoError(f.t, f.repos.UserRepository.Create(f.ctx, u))
	return u
}

func (f *fixture) staff(username string) *models.User {
	f.t.Helper()
	u := &models.User{Username: username, IsStaff: true, IsActive: true}
	require.NoError(f.t, f.repos.UserRepository.Create(f.ctx, u))
	return u
}

func (f *fixture) club(name string, creator *models.User, members ...*models.User) *models.Club {
	f.t.Helper()
	c := &models.Club{Name: name, CreatorID: creator.ID}
	require.NoError(f.t, f.repos.ClubRepository.Create(f.ctx, c))
	for _, u := range append([]*models.User{creator}, members...) {
		_, err := f.repos.ClubRepository.AddMember(f.ctx, c.ID, u.ID)
		require.NoError(f.t, err)
	}
	return c
}

func (f *fixture) publication(author *models.User) *models.Publication {
	f.t.Helper()
	p := &models.Publication{AuthorID: author.ID, Content: "hello"}
	require.NoError(f.t, f.repos.PublicationRepository.Create(f.ctx, p))
	return p
}

func (f *fixture) notifications(userID int64) []string {
	f.t.Helper()
	items, _, err := f.repos.NotificationRepository.ListByUser(f.ctx, userID, false, 0, 100)
	require.NoError(f.t, err)
	out := make([]string, 0, len(items))
	for _, n := range items {
		out = append(out, n.Message)
	}
	return out
}

func (f *fixture) next() int {
	f.seq++
	return f.seq
}

func int64Ptr(v int64) *int64 {
	return &v
}
