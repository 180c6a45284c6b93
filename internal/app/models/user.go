package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Username  string    `json:"username" db:"username" example:"alice"`
	Email     string    `json:"email" db:"email" example:"alice@example.com"`
	Password  string    `json:"-" db:"password_hash"`
	IsStaff   bool      `json:"isStaff" db:"is_staff" example:"false"`
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
}

// Follow is a directed edge of the follower graph: FollowerID follows FolloweeID
type Follow struct {
	FollowerID int64     `json:"followerId" db:"follower_id"`
	FolloweeID int64     `json:"followeeId" db:"followee_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// ModerationRecord holds the escalation state of a user
type ModerationRecord struct {
	UserID    int64           `json:"userId" db:"user_id"`
	State     ModerationState `json:"state" db:"state"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}
