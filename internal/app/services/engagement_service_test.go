package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

func TestApplyVote_ToggleAndReplace(t *testing.T) {
	f := newFixture(t)
	author := f.user("author")
	voter := f.user("voter")
	pub := f.publication(author)

	res, err := f.svc.Engagement.ApplyVote(f.ctx, voter.ID, pub.ID, &dto.VoteRequest{Action: ActionLike})
	require.NoError(t, err)
	assert.Equal(t, dto.VoteResult{Likes: 1, Dislikes: 0, UserLiked: true}, *res)

	res, err = f.svc.Engagement.ApplyVote(f.ctx, voter.ID, pub.ID, &dto.VoteRequest{Action: ActionLike})
	require.NoError(t, err)
	assert.Equal(t, dto.VoteResult{}, *res, "liking twice removes the like")

	_, err = f.svc.Engagement.ApplyVote(f.ctx, voter.ID, pub.ID, &dto.VoteRequest{Action: ActionLike})
	require.NoError(t, err)
	res, err = f.svc.Engagement.ApplyVote(f.ctx, voter.ID, pub.ID, &dto.VoteRequest{Action: ActionDislike})
	require.NoError(t, err)
	assert.Equal(t, dto.VoteResult{Likes: 0, Dislikes: 1, UserDisliked: true}, *res, "dislike replaces like")

	got, err := f.svc.Engagement.GetPublication(f.ctx, voter.ID, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Dislikes)
	assert.True(t, got.UserDisliked)
	assert.False(t, got.UserLiked)
}

func TestApplyVote_Errors(t *testing.T) {
	f := newFixture(t)
	author := f.user("author")
	pub := f.publication(author)

	for _, action := range []string{"", "LIKE", "love"} {
		_, err := f.svc.Engagement.ApplyVote(f.ctx, author.ID, pub.ID, &dto.VoteRequest{Action: action})
		assert.ErrorIs(t, err, apperrors.ErrInvalidAction, action)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, action)
	}

	_, err := f.svc.Engagement.ApplyVote(f.ctx, author.ID, 999, &dto.VoteRequest{Action: ActionLike})
	assert.ErrorIs(t, err, apperrors.ErrPublicationNotFound)
}

func TestApplyVote_ConcurrentVotesAllLand(t *testing.T) {
	f := newFixture(t)
	author := f.user("author")
	pub := f.publication(author)

	const voters = 25
	ids := make([]int64, voters)
	for i := range ids {
		ids[i] = f.user(fmt.Sprintf("voter%d", i)).ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, voters)
	for i, id := range ids {
		action := ActionLike
		if i%5 == 0 {
			action = ActionDislike
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Engagement.ApplyVote(f.ctx, id, pub.ID, &dto.VoteRequest{Action: action})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	counts, err := f.repos.PublicationRepository.CountVotes(f.ctx, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), counts.Likes)
	assert.Equal(t, int64(5), counts.Dislikes)
}

func TestApplyReaction(t *testing.T) {
	f := newFixture(t)
	author := f.user("author")
	alice := f.user("alice")
	pub := f.publication(author)
	other := f.publication(author)

	res, err := f.svc.Engagement.ApplyReaction(f.ctx, alice.ID, pub.ID, &dto.ReactionRequest{
		Type:    "THOUGHT",
		Comment: "  Interesting point  ",
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, res.UserID)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "THOUGHT", res.Type)
	assert.Equal(t, "My thought", res.TypeLabel)
	assert.Equal(t, "Interesting point", res.Comment)
	assert.Nil(t, res.ParentID)
	assert.Regexp(t, `^\d{2}/\d{2}/\d{4} \d{2}:\d{2}$`, res.CreatedAt)

	reply, err := f.svc.Engagement.ApplyReaction(f.ctx, author.ID, pub.ID, &dto.ReactionRequest{
		Type:     "ADHERE",
		Comment:  "Thanks",
		ParentID: &res.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, res.ID, *reply.ParentID)
	assert.Equal(t, "I agree", reply.TypeLabel)

	tests := []struct {
		name    string
		pubID   int64
		req     dto.ReactionRequest
		wantErr error
	}{
		{"unknown type", pub.ID, dto.ReactionRequest{Type: "ANGRY", Comment: "x"}, apperrors.ErrInvalidReactionType},
		{"lowercase type", pub.ID, dto.ReactionRequest{Type: "thought", Comment: "x"}, apperrors.ErrInvalidReactionType},
		{"blank comment", pub.ID, dto.ReactionRequest{Type: "SUPPORT", Comment: " \t\n"}, apperrors.ErrEmptyComment},
		{"missing publication", 999, dto.ReactionRequest{Type: "SUPPORT", Comment: "x"}, apperrors.ErrPublicationNotFound},
		{"missing parent", pub.ID, dto.ReactionRequest{Type: "SUPPORT", Comment: "x", ParentID: int64Ptr(999)}, apperrors.ErrReactionNotFound},
		{"parent on another publication", other.ID, dto.ReactionRequest{Type: "SUPPORT", Comment: "x", ParentID: &res.ID}, apperrors.ErrInvalidParent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Engagement.ApplyReaction(f.ctx, alice.ID, tt.pubID, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err = f.svc.Engagement.ApplyReaction(f.ctx, alice.ID, pub.ID, &dto.ReactionRequest{Type: "ALTERNATIVE", Comment: "x"})
	require.NoError(t, err)
	list, err := f.svc.Engagement.ListReactions(f.ctx, pub.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"THOUGHT", "ADHERE", "ALTERNATIVE"}, []string{list[0].Type, list[1].Type, list[2].Type})
}

func TestReplyToReaction(t *testing.T) {
	f := newFixture(t)
	author := f.user("author")
	alice := f.user("alice")
	pub := f.publication(author)

	parent, err := f.svc.Engagement.ApplyReaction(f.ctx, alice.ID, pub.ID, &dto.ReactionRequest{Type: "ALTERNATIVE", Comment: "What about X?"})
	require.NoError(t, err)

	reply, err := f.svc.Engagement.ReplyToReaction(f.ctx, author.ID, parent.ID, &dto.ReplyRequest{Comment: "Which X?"})
	require.NoError(t, err)
	assert.Equal(t, "CLARIFY", reply.Type)
	assert.Equal(t, "I ask for clarification", reply.TypeLabel)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, parent.ID, *reply.ParentID)

	_, err = f.svc.Engagement.ReplyToReaction(f.ctx, author.ID, parent.ID, &dto.ReplyRequest{Comment: "  "})
	assert.ErrorIs(t, err, apperrors.ErrEmptyComment)

	_, err = f.svc.Engagement.ReplyToReaction(f.ctx, author.ID, 999, &dto.ReplyRequest{Comment: "?"})
	assert.ErrorIs(t, err, apperrors.ErrReactionNotFound)
}

func TestCreatePublication(t *testing.T) {
	f := newFixture(t)
	alice := f.user("alice")
	bob := f.user("bob")
	club := f.club("Chess", alice)

	pub, err := f.svc.Engagement.CreatePublication(f.ctx, alice.ID, &dto.CreatePublicationRequest{Content: "Opening night", ClubID: &club.ID})
	require.NoError(t, err)
	assert.Equal(t, "alice", pub.Author.Username)
	assert.Zero(t, pub.Likes)

	_, err = f.svc.Engagement.CreatePublication(f.ctx, bob.ID, &dto.CreatePublicationRequest{Content: "Let me in", ClubID: &club.ID})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorizedClubAccess)

	_, err = f.svc.Engagement.CreatePublication(f.ctx, bob.ID, &dto.CreatePublicationRequest{Content: " "})
	assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
}
