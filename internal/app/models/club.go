package models

import "time"

// Club represents a group of users with its own message board
type Club struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatorID   int64     `json:"creatorId" db:"creator_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ClubMember represents a user belonging to a club
type ClubMember struct {
	ClubID   int64     `json:"clubId" db:"club_id"`
	UserID   int64     `json:"userId" db:"user_id"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}

// Page is a followable page users can subscribe to
type Page struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatorID   int64     `json:"creatorId" db:"creator_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
