package models

import "time"

// Publication is a post authored by a user, optionally inside a club
type Publication struct {
	ID        int64     `json:"id" db:"id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	ClubID    *int64    `json:"clubId,omitempty" db:"club_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// VoteCounts is derived from the vote set of a publication
type VoteCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// Reaction is a typed comment on a publication. ParentID links replies.
type Reaction struct {
	ID            int64        `json:"id" db:"id"`
	PublicationID int64        `json:"publicationId" db:"publication_id"`
	UserID        int64        `json:"userId" db:"user_id"`
	Type          ReactionType `json:"type" db:"type"`
	Comment       string       `json:"comment" db:"comment"`
	ParentID      *int64       `json:"parentId,omitempty" db:"parent_id"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`

	// Related entities
	User *User `json:"user,omitempty"`
}
