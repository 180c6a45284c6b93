package dto

import "time"

// CreatePublicationRequest creates a publication, optionally inside a club
type CreatePublicationRequest struct {
	Content string `json:"content" validate:"max=5000" example:"First post"`
	ClubID  *int64 `json:"clubId,omitempty" validate:"omitempty,gt=0" example:"1"`
}

// PublicationResponse is a publication with its derived vote counts
type PublicationResponse struct {
	ID           int64       `json:"id" example:"1"`
	Author       UserSummary `json:"author"`
	ClubID       *int64      `json:"clubId,omitempty"`
	Content      string      `json:"content" example:"First post"`
	Likes        int64       `json:"likes" example:"4"`
	Dislikes     int64       `json:"dislikes" example:"1"`
	UserLiked    bool        `json:"userLiked" example:"true"`
	UserDisliked bool        `json:"userDisliked" example:"false"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// VoteRequest toggles a like or dislike
type VoteRequest struct {
	Action string `json:"action" example:"like" enums:"like,dislike"`
}

// VoteResult reports the counts after a vote
type VoteResult struct {
	Likes        int64 `json:"likes" example:"4"`
	Dislikes     int64 `json:"dislikes" example:"1"`
	UserLiked    bool  `json:"userLiked" example:"true"`
	UserDisliked bool  `json:"userDisliked" example:"false"`
}

// ReactionRequest adds a typed reaction. ParentID makes it a reply.
type ReactionRequest struct {
	Type     string `json:"type" example:"THOUGHT" enums:"THOUGHT,ADHERE,SUPPORT,ALTERNATIVE,CLARIFY"`
	Comment  string `json:"comment" validate:"max=5000" example:"Interesting point"`
	ParentID *int64 `json:"parentId,omitempty" validate:"omitempty,gt=0"`
}

// ReplyRequest replies to a reaction
type ReplyRequest struct {
	Comment string `json:"comment" validate:"max=5000" example:"Could you clarify?"`
}

// ReactionResult is the display payload of a reaction
type ReactionResult struct {
	ID        int64  `json:"id" example:"7"`
	UserID    int64  `json:"userId" example:"1"`
	Username  string `json:"username" example:"alice"`
	Type      string `json:"type" example:"THOUGHT"`
	TypeLabel string `json:"typeLabel" example:"My thought"`
	Comment   string `json:"comment" example:"Interesting point"`
	ParentID  *int64 `json:"parentId,omitempty"`
	CreatedAt string `json:"createdAt" example:"15/03/2024 14:30"`
}
