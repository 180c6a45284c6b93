package repositories

import (
	"context"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/db"
)

// IUserRepository defines user persistence operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetByIDForUpdate locks the user row until the enclosing transaction ends
	GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// IFollowRepository stores the directed follower graph as an edge set
type IFollowRepository interface {
	Add(ctx context.Context, followerID, followeeID int64) (bool, error)
	Remove(ctx context.Context, followerID, followeeID int64) (bool, error)
	Exists(ctx context.Context, followerID, followeeID int64) (bool, error)
	CountFollowers(ctx context.Context, userID int64) (int64, error)
	CountFollowing(ctx context.Context, userID int64) (int64, error)
	ListFollowers(ctx context.Context, userID int64) ([]*models.User, error)
	ListFollowing(ctx context.Context, userID int64) ([]*models.User, error)
}

// IClubRepository defines club, membership and admin operations
type IClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Club, error)
	AddMember(ctx context.Context, clubID, userID int64) (bool, error)
	RemoveMember(ctx context.Context, clubID, userID int64) (bool, error)
	IsMember(ctx context.Context, clubID, userID int64) (bool, error)
	ListMemberIDs(ctx context.Context, clubID int64) ([]int64, error)
	CountMembers(ctx context.Context, clubID int64) (int64, error)
	ListClubIDsByMember(ctx context.Context, userID int64) ([]int64, error)
	AddAdmin(ctx context.Context, clubID, userID int64) (bool, error)
	RemoveAdmin(ctx context.Context, clubID, userID int64) (bool, error)
	IsAdmin(ctx context.Context, clubID, userID int64) (bool, error)
}

// IPublicationRepository defines publication and vote-set operations.
// Vote counts are always derived from the vote set.
type IPublicationRepository interface {
	Create(ctx context.Context, publication *models.Publication) error
	GetByID(ctx context.Context, id int64) (*models.Publication, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Publication, error)
	// GetVote returns the empty VoteKind when the user has not voted
	GetVote(ctx context.Context, publicationID, userID int64) (models.VoteKind, error)
	SetVote(ctx context.Context, publicationID, userID int64, kind models.VoteKind) error
	DeleteVote(ctx context.Context, publicationID, userID int64) error
	CountVotes(ctx context.Context, publicationID int64) (models.VoteCounts, error)
}

// IReactionRepository defines reaction operations. Reactions are append-only.
type IReactionRepository interface {
	Create(ctx context.Context, reaction *models.Reaction) error
	GetByID(ctx context.Context, id int64) (*models.Reaction, error)
	ListByPublication(ctx context.Context, publicationID int64) ([]*models.Reaction, error)
}

// IMessageRepository defines direct message operations
type IMessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	// ListByParticipant returns every message the user sent or received,
	// restricted to content containing query (case-insensitive) when query is not empty
	ListByParticipant(ctx context.Context, userID int64, query string) ([]*models.Message, error)
	ListThread(ctx context.Context, userA, userB int64) ([]*models.Message, error)
	// MarkThreadRead flips is_read on unread messages from senderID to recipientID
	MarkThreadRead(ctx context.Context, recipientID, senderID int64) (int64, error)
	MarkRead(ctx context.Context, id int64) error
}

// IClubMessageRepository defines club message and read-set operations
type IClubMessageRepository interface {
	Create(ctx context.Context, message *models.ClubMessage) error
	GetByID(ctx context.Context, id int64) (*models.ClubMessage, error)
	// ListByClubs fills ReadByViewer for viewerID
	ListByClubs(ctx context.Context, clubIDs []int64, query string, viewerID int64) ([]*models.ClubMessage, error)
	// ListByClub returns the club board in ascending order with Sender filled
	ListByClub(ctx context.Context, clubID, viewerID int64) ([]*models.ClubMessage, error)
	MarkRead(ctx context.Context, messageID, userID int64) error
}

// IReportRepository defines report operations. Reports are append-only.
type IReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	CountAgainst(ctx context.Context, userID int64) (int64, error)
}

// IModerationRepository stores the per-user escalation state
type IModerationRepository interface {
	// GetState returns ModerationNormal when no state was recorded
	GetState(ctx context.Context, userID int64) (models.ModerationState, error)
	SetState(ctx context.Context, userID int64, state models.ModerationState) error
}

// INotificationRepository defines notification operations
type INotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, userID, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// IPageRepository defines page subscription operations
type IPageRepository interface {
	Create(ctx context.Context, page *models.Page) error
	GetByID(ctx context.Context, id int64) (*models.Page, error)
	AddSubscriber(ctx context.Context, pageID, userID int64) (bool, error)
	RemoveSubscriber(ctx context.Context, pageID, userID int64) (bool, error)
	CountSubscribers(ctx context.Context, pageID int64) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         IUserRepository
	FollowRepository       IFollowRepository
	ClubRepository         IClubRepository
	PublicationRepository  IPublicationRepository
	ReactionRepository     IReactionRepository
	MessageRepository      IMessageRepository
	ClubMessageRepository  IClubMessageRepository
	ReportRepository       IReportRepository
	ModerationRepository   IModerationRepository
	NotificationRepository INotificationRepository
	PageRepository         IPageRepository
}

// NewRepositories initializes all Postgres repositories over a pool or a transaction
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(conn),
		FollowRepository:       NewFollowRepository(conn),
		ClubRepository:         NewClubRepository(conn),
		PublicationRepository:  NewPublicationRepository(conn),
		ReactionRepository:     NewReactionRepository(conn),
		MessageRepository:      NewMessageRepository(conn),
		ClubMessageRepository:  NewClubMessageRepository(conn),
		ReportRepository:       NewReportRepository(conn),
		ModerationRepository:   NewModerationRepository(conn),
		NotificationRepository: NewNotificationRepository(conn),
		PageRepository:         NewPageRepository(conn),
	}
}

// TxFn runs against repositories bound to one transaction
type TxFn func(ctx context.Context, repos *Repositories) error

// Store is the persistence boundary used by the services
type Store interface {
	// Repos returns repositories that run each call on its own
	Repos() *Repositories
	// InTx runs fn atomically. A concurrency fault is retried once with a
	// fresh transaction before it is returned.
	InTx(ctx context.Context, fn TxFn) error
}
