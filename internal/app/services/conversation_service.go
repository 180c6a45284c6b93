package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/repositories"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/helpers"
)

// ConversationService defines the interface for the conversation list
type ConversationService interface {
	// ListConversations returns the requester's direct and club conversations,
	// most recent first. A non-empty query filters on message content and caps
	// the result to dto.SearchPageSize.
	ListConversations(ctx context.Context, requesterID int64, query string) (*dto.ConversationListResponse, error)
}

// conversationServiceImpl implements ConversationService
type conversationServiceImpl struct {
	store  repositories.Store
	logger zerolog.Logger
}

// NewConversationService creates a new ConversationService
func NewConversationService(store repositories.Store, logger zerolog.Logger) ConversationService {
	return &conversationServiceImpl{
		store:  store,
		logger: logger,
	}
}

// conversationGroup accumulates the messages of one conversation
type conversationGroup struct {
	counterpartID int64
	lastID        int64
	lastTime      time.Time
	preview       string
	unread        int64
}

func (g *conversationGroup) observe(id int64, createdAt time.Time, content string) {
	if g.lastID == 0 || createdAt.After(g.lastTime) || (createdAt.Equal(g.lastTime) && id > g.lastID) {
		g.lastID = id
		g.lastTime = createdAt
		g.preview = content
	}
}

func (g *conversationGroup) summary(t models.ConversationType, name string) dto.ConversationSummary {
	last := g.lastTime
	return dto.ConversationSummary{
		Type:               string(t),
		CounterpartID:      g.counterpartID,
		DisplayName:        name,
		AvatarURL:          helpers.AvatarURL(name),
		LastMessagePreview: g.preview,
		LastMessageTime:    &last,
		UnreadCount:        g.unread,
	}
}

// ListConversations merges direct and club conversations
func (s *conversationServiceImpl) ListConversations(ctx context.Context, requesterID int64, query string) (*dto.ConversationListResponse, error) {
	query = strings.TrimSpace(query)
	s.logger.Debug().Int64("requesterID", requesterID).Str("query", query).Msg("Listing conversations")

	repos := s.store.Repos()

	direct, err := s.directConversations(ctx, repos, requesterID, query)
	if err != nil {
		return nil, err
	}
	clubs, err := s.clubConversations(ctx, repos, requesterID, query)
	if err != nil {
		return nil, err
	}

	conversations := append(direct, clubs...)
	sortConversations(conversations)

	if query != "" && len(conversations) > dto.SearchPageSize {
		conversations = conversations[:dto.SearchPageSize]
	}

	return &dto.ConversationListResponse{
		Conversations: conversations,
		Query:         query,
	}, nil
}

func (s *conversationServiceImpl) directConversations(ctx context.Context, repos *repositories.Repositories, requesterID int64, query string) ([]dto.ConversationSummary, error) {
	messages, err := repos.MessageRepository.ListByParticipant(ctx, requesterID, query)
	if err != nil {
		return nil, err
	}

	groups := make(map[int64]*conversationGroup)
	for _, m := range messages {
		other := m.SenderID
		if other == requesterID {
			other = m.RecipientID
		}
		g, ok := groups[other]
		if !ok {
			g = &conversationGroup{counterpartID: other}
			groups[other] = g
		}
		g.observe(m.ID, m.CreatedAt, m.Content)
		if !m.IsRead && m.RecipientID == requesterID {
			g.unread++
		}
	}
	if len(groups) == 0 {
		return []dto.ConversationSummary{}, nil
	}

	users, err := repos.UserRepository.GetByIDs(ctx, groupKeys(groups))
	if err != nil {
		return nil, err
	}

	out := make([]dto.ConversationSummary, 0, len(groups))
	for id, g := range groups {
		user, ok := users[id]
		if !ok {
			s.logger.Warn().Int64("requesterID", requesterID).Int64("userID", id).
				Msg("Skipping conversation with a user that no longer exists")
			continue
		}
		out = append(out, g.summary(models.ConversationUser, user.Username))
	}
	return out, nil
}

func (s *conversationServiceImpl) clubConversations(ctx context.Context, repos *repositories.Repositories, requesterID int64, query string) ([]dto.ConversationSummary, error) {
	clubIDs, err := repos.ClubRepository.ListClubIDsByMember(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if len(clubIDs) == 0 {
		return []dto.ConversationSummary{}, nil
	}

	messages, err := repos.ClubMessageRepository.ListByClubs(ctx, clubIDs, query, requesterID)
	if err != nil {
		return nil, err
	}

	groups := make(map[int64]*conversationGroup)
	for _, m := range messages {
		g, ok := groups[m.ClubID]
		if !ok {
			g = &conversationGroup{counterpartID: m.ClubID}
			groups[m.ClubID] = g
		}
		g.observe(m.ID, m.CreatedAt, m.Content)
		if m.SenderID != requesterID && !m.ReadByViewer {
			g.unread++
		}
	}
	if len(groups) == 0 {
		return []dto.ConversationSummary{}, nil
	}

	clubs, err := repos.ClubRepository.GetByIDs(ctx, groupKeys(groups))
	if err != nil {
		return nil, err
	}

	out := make([]dto.ConversationSummary, 0, len(groups))
	for id, g := range groups {
		club, ok := clubs[id]
		if !ok {
			s.logger.Warn().Int64("requesterID", requesterID).Int64("clubID", id).
				Msg("Skipping conversation with a club that no longer exists")
			continue
		}
		out = append(out, g.summary(models.ConversationClub, club.Name))
	}
	return out, nil
}

// sortConversations orders by last message time descending. Conversations
// without a time go last; ties are broken by type and then counterpart ID.
func sortConversations(c []dto.ConversationSummary) {
	sort.Slice(c, func(i, j int) bool {
		a, b := c[i].LastMessageTime, c[j].LastMessageTime
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		}
		if c[i].Type != c[j].Type {
			return c[i].Type < c[j].Type
		}
		return c[i].CounterpartID < c[j].CounterpartID
	})
}

func groupKeys(groups map[int64]*conversationGroup) []int64 {
	keys := make([]int64, 0, len(groups))
	for id := range groups {
		keys = append(keys, id)
	}
	return keys
}
