package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func (f *fixture) directAt(from, to int64, content string, at time.Time) *models.Message {
	f.t.Helper()
	m := &models.Message{SenderID: from, RecipientID: to, Content: content, CreatedAt: at}
	require.NoError(f.t, f.repos.MessageRepository.Create(f.ctx, m))
	return m
}

func (f *fixture) clubAt(clubID, from int64, content string, at time.Time) *models.ClubMessage {
	f.t.Helper()
	m := &models.ClubMessage{ClubID: clubID, SenderID: from, Content: content, CreatedAt: at}
	require.NoError(f.t, f.repos.ClubMessageRepository.Create(f.ctx, m))
	return m
}

func TestListConversations_OrderedByLastActivity(t *testing.T) {
	f := newFixture(t)
	a := f.user("a")
	b := f.user("b")
	c := f.user("c")
	k := f.club("K", c, a)
	f.club("Empty", a)

	t1, t2, t3 := base, base.Add(time.Minute), base.Add(2*time.Minute)
	f.directAt(a.ID, b.ID, "first", t1)
	f.clubAt(k.ID, c.ID, "club news", t2)
	f.directAt(a.ID, b.ID, "second", t3)

	res, err := f.svc.Conversation.ListConversations(f.ctx, a.ID, "")
	require.NoError(t, err)
	require.Len(t, res.Conversations, 2, "zero-message conversations never appear")

	first, second := res.Conversations[0], res.Conversations[1]
	assert.Equal(t, "user", first.Type)
	assert.Equal(t, b.ID, first.CounterpartID)
	assert.Equal(t, "b", first.DisplayName)
	assert.Equal(t, "second", first.LastMessagePreview)
	assert.True(t, t3.Equal(*first.LastMessageTime))
	assert.Zero(t, first.UnreadCount)

	assert.Equal(t, "club", second.Type)
	assert.Equal(t, k.ID, second.CounterpartID)
	assert.Equal(t, "K", second.DisplayName)
	assert.True(t, t2.Equal(*second.LastMessageTime))
	assert.Equal(t, int64(1), second.UnreadCount)
}

func TestListConversations_UnreadCounts(t *testing.T) {
	f := newFixture(t)
	a := f.user("a")
	b := f.user("b")
	k := f.club("K", b, a)

	f.directAt(b.ID, a.ID, "one", base)
	f.directAt(b.ID, a.ID, "two", base.Add(time.Second))
	f.directAt(a.ID, b.ID, "mine", base.Add(2*time.Second))

	read := f.clubAt(k.ID, b.ID, "seen", base.Add(3*time.Second))
	f.clubAt(k.ID, b.ID, "unseen", base.Add(4*time.Second))
	f.clubAt(k.ID, a.ID, "own", base.Add(5*time.Second))
	require.NoError(t, f.repos.ClubMessageRepository.MarkRead(f.ctx, read.ID, a.ID))

	res, err := f.svc.Conversation.ListConversations(f.ctx, a.ID, "")
	require.NoError(t, err)
	require.Len(t, res.Conversations, 2)

	byType := map[string]dto.ConversationSummary{}
	for _, c := range res.Conversations {
		byType[c.Type] = c
	}
	assert.Equal(t, int64(2), byType["user"].UnreadCount)
	assert.Equal(t, "mine", byType["user"].LastMessagePreview)
	assert.Equal(t, int64(1), byType["club"].UnreadCount)
	assert.Equal(t, "own", byType["club"].LastMessagePreview)
}

func TestListConversations_SkipsDanglingCounterpart(t *testing.T) {
	f := newFixture(t)
	a := f.user("a")
	b := f.user("b")

	f.directAt(a.ID, b.ID, "hi", base)
	f.directAt(a.ID, 9999, "gone", base.Add(time.Second))

	res, err := f.svc.Conversation.ListConversations(f.ctx, a.ID, "")
	require.NoError(t, err)
	require.Len(t, res.Conversations, 1)
	assert.Equal(t, b.ID, res.Conversations[0].CounterpartID)
}

func TestListConversations_QueryFiltersAndCaps(t *testing.T) {
	f := newFixture(t)
	a := f.user("a")

	for i := 0; i < 12; i++ {
		other := f.user(fmt.Sprintf("peer%d", i))
		f.directAt(other.ID, a.ID, fmt.Sprintf("Meeting notes %d", i), base.Add(time.Duration(i)*time.Minute))
		f.directAt(a.ID, other.ID, "unrelated", base.Add(time.Duration(i)*time.Minute+time.Second))
	}

	res, err := f.svc.Conversation.ListConversations(f.ctx, a.ID, "MEETING")
	require.NoError(t, err)
	assert.Equal(t, "MEETING", res.Query)
	require.Len(t, res.Conversations, dto.SearchPageSize)
	for _, c := range res.Conversations {
		assert.Contains(t, c.LastMessagePreview, "Meeting notes")
	}
	assert.Equal(t, "Meeting notes 11", res.Conversations[0].LastMessagePreview)

	all, err := f.svc.Conversation.ListConversations(f.ctx, a.ID, "")
	require.NoError(t, err)
	assert.Len(t, all.Conversations, 12, "no cap without a query")

	none, err := f.svc.Conversation.ListConversations(f.ctx, a.ID, "nothing matches")
	require.NoError(t, err)
	assert.Empty(t, none.Conversations)
}

func TestSortConversations_TieBreak(t *testing.T) {
	at := base
	c := []dto.ConversationSummary{
		{Type: "user", CounterpartID: 2, LastMessageTime: &at},
		{Type: "user", CounterpartID: 1},
		{Type: "user", CounterpartID: 1, LastMessageTime: &at},
		{Type: "club", CounterpartID: 9, LastMessageTime: &at},
	}
	sortConversations(c)

	got := make([]string, 0, len(c))
	for _, s := range c {
		got = append(got, fmt.Sprintf("%s:%d", s.Type, s.CounterpartID))
	}
	assert.Equal(t, []string{"club:9", "user:1", "user:2", "user:1"}, got)
	assert.Nil(t, c[3].LastMessageTime)
}
