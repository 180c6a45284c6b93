package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

func TestSendMessage(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice")
	bob := f.user("bob")

	msg, err := f.svc.Messaging.SendMessage(f.ctx, alice.ID, &dto.SendMessageRequest{RecipientID: bob.ID, Content: " Hello Bob "})
	require.NoError(t, err)
	assert.Equal(t, "Hello Bob", msg.Content)
	assert.False(t, msg.IsRead)

	assert.Equal(t, []string{"New message from alice"}, f.notifications(bob.ID))
	events := f.pusher.ofType(EventMessage)
	require.Len(t, events, 1)
	assert.ElementsMatch(t, []int64{alice.ID, bob.ID}, events[0].userIDs)

	tests := []struct {
		name    string
		req     dto.SendMessageRequest
		wantErr error
	}{
		{"self", dto.SendMessageRequest{RecipientID: alice.ID, Content: "me"}, apperrors.ErrSelfMessageForbidden},
		{"blank", dto.SendMessageRequest{RecipientID: bob.ID, Content: "   "}, apperrors.ErrEmptyContent},
		{"missing recipient", dto.SendMessageRequest{RecipientID: 999, Content: "hi"}, apperrors.ErrUserNotFound},
		{"too long", dto.SendMessageRequest{RecipientID: bob.ID, Content: strings.Repeat("x", 5001)}, apperrors.ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Messaging.SendMessage(f.ctx, alice.ID, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Len(t, f.notifications(bob.ID), 1, "failed sends notify nobody")
}

func TestSendClubMessage(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	m1 := f.user("m1")
	m2 := f.user("m2")
	outsider := f.user("outsider")
	club := f.club("Chess", owner, m1, m2)
	other := f.club("Go", outsider)

	long := strings.Repeat("é", 60)
	msg, err := f.svc.Messaging.SendClubMessage(f.ctx, owner.ID, club.ID, &dto.SendClubMessageRequest{Content: long})
	require.NoError(t, err)
	assert.True(t, msg.IsRead, "the sender has read its own message")
	assert.Equal(t, "owner", msg.Sender.Username)

	want := "New message in Chess: " + strings.Repeat("é", 50) + "..."
	assert.Equal(t, []string{want}, f.notifications(m1.ID))
	assert.Equal(t, []string{want}, f.notifications(m2.ID))
	assert.Empty(t, f.notifications(owner.ID))

	short, err := f.svc.Messaging.SendClubMessage(f.ctx, m1.ID, club.ID, &dto.SendClubMessageRequest{Content: "hi", ParentID: &msg.ID})
	require.NoError(t, err)
	require.NotNil(t, short.ParentID)
	assert.Contains(t, f.notifications(owner.ID), "New message in Chess: hi...")

	events := f.pusher.ofType(EventClubMessage)
	require.Len(t, events, 2)
	assert.ElementsMatch(t, []int64{owner.ID, m1.ID, m2.ID}, events[0].userIDs)

	foreign, err := f.svc.Messaging.SendClubMessage(f.ctx, outsider.ID, other.ID, &dto.SendClubMessageRequest{Content: "elsewhere"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		sender  int64
		clubID  int64
		req     dto.SendClubMessageRequest
		wantErr error
	}{
		{"missing club", owner.ID, 999, dto.SendClubMessageRequest{Content: "x"}, apperrors.ErrClubNotFound},
		{"not a member", outsider.ID, club.ID, dto.SendClubMessageRequest{Content: "x"}, apperrors.ErrUnauthorizedClubAccess},
		{"blank", m1.ID, club.ID, dto.SendClubMessageRequest{Content: "\n"}, apperrors.ErrEmptyContent},
		{"missing parent", m1.ID, club.ID, dto.SendClubMessageRequest{Content: "x", ParentID: int64Ptr(999)}, apperrors.ErrMessageNotFound},
		{"parent in another club", m1.ID, club.ID, dto.SendClubMessageRequest{Content: "x", ParentID: &foreign.ID}, apperrors.ErrMessageNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Messaging.SendClubMessage(f.ctx, tt.sender, tt.clubID, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
