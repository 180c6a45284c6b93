// Package memory implements repositories.Store in process memory.
// It backs the service tests and the "memory" database driver.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
)

type pair [2]int64

type data struct {
	nextID int64

	users         map[int64]models.User
	follows       map[pair]time.Time
	clubs         map[int64]models.Club
	members       map[pair]time.Time
	admins        map[pair]struct{}
	publications  map[int64]models.Publication
	votes         map[pair]models.VoteKind
	reactions     map[int64]models.Reaction
	messages      map[int64]models.Message
	clubMessages  map[int64]models.ClubMessage
	clubReads     map[pair]struct{}
	reports       map[int64]models.Report
	moderation    map[int64]models.ModerationState
	notifications map[int64]models.Notification
	pages         map[int64]models.Page
	subscribers   map[pair]struct{}
}

func newData() *data {
	return &data{
		users:         map[int64]models.User{},
		follows:       map[pair]time.Time{},
		clubs:         map[int64]models.Club{},
		members:       map[pair]time.Time{},
		admins:        map[pair]struct{}{},
		publications:  map[int64]models.Publication{},
		votes:         map[pair]models.VoteKind{},
		reactions:     map[int64]models.Reaction{},
		messages:      map[int64]models.Message{},
		clubMessages:  map[int64]models.ClubMessage{},
		clubReads:     map[pair]struct{}{},
		reports:       map[int64]models.Report{},
		moderation:    map[int64]models.ModerationState{},
		notifications: map[int64]models.Notification{},
		pages:         map[int64]models.Page{},
		subscribers:   map[pair]struct{}{},
	}
}

// clone copies every table. Rows are stored by value so a shallow map copy is enough.
func (d *data) clone() *data {
	return &data{
		nextID:        d.nextID,
		users:         maps.Clone(d.users),
		follows:       maps.Clone(d.follows),
		clubs:         maps.Clone(d.clubs),
		members:       maps.Clone(d.members),
		admins:        maps.Clone(d.admins),
		publications:  maps.Clone(d.publications),
		votes:         maps.Clone(d.votes),
		reactions:     maps.Clone(d.reactions),
		messages:      maps.Clone(d.messages),
		clubMessages:  maps.Clone(d.clubMessages),
		clubReads:     maps.Clone(d.clubReads),
		reports:       maps.Clone(d.reports),
		moderation:    maps.Clone(d.moderation),
		notifications: maps.Clone(d.notifications),
		pages:         maps.Clone(d.pages),
		subscribers:   maps.Clone(d.subscribers),
	}
}

func (d *data) id() int64 {
	d.nextID++
	return d.nextID
}

type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

// base is shared by every repository of one Store
type base struct {
	d   *data
	mu  sync.Locker
	now func() time.Time
}

func (b *base) stamp(t *time.Time) {
	if t.IsZero() {
		*t = b.now()
	}
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for created_at defaults
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the store logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Store is an in-memory repositories.Store. Transactions are serialized by
// one mutex and rolled back by restoring a snapshot.
type Store struct {
	mu     sync.Mutex
	d      *data
	now    func() time.Time
	logger zerolog.Logger
	repos  *repositories.Repositories
}

var _ repositories.Store = (*Store)(nil)

// NewStore creates an empty Store
func NewStore(opts ...Option) *Store {
	s := &Store{
		d:      newData(),
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.repos = newRepositories(&base{d: s.d, mu: &s.mu, now: s.now})
	return s
}

// Repos returns repositories that lock the store on every call
func (s *Store) Repos() *repositories.Repositories {
	return s.repos
}

// InTx runs fn while holding the store lock. When fn fails every write it
// made is discarded.
func (s *Store) InTx(ctx context.Context, fn repositories.TxFn) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.d.clone()
	repos := newRepositories(&base{d: s.d, mu: noopLocker{}, now: s.now})

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				*s.d = *snapshot
				panic(r)
			}
		}()
		return fn(ctx, repos)
	}()
	if err != nil {
		*s.d = *snapshot
		s.logger.Debug().Err(err).Msg("Rolled back in-memory transaction")
	}
	return err
}

func newRepositories(b *base) *repositories.Repositories {
	return &repositories.Repositories{
		UserRepository:         &userRepository{b},
		FollowRepository:       &followRepository{b},
		ClubRepository:         &clubRepository{b},
		PublicationRepository:  &publicationRepository{b},
		ReactionRepository:     &reactionRepository{b},
		MessageRepository:      &messageRepository{b},
		ClubMessageRepository:  &clubMessageRepository{b},
		ReportRepository:       &reportRepository{b},
		ModerationRepository:   &moderationRepository{b},
		NotificationRepository: &notificationRepository{b},
		PageRepository:         &pageRepository{b},
	}
}
