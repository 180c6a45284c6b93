package models

import "time"

// Message is a direct message between two users
type Message struct {
	ID          int64     `json:"id" db:"id"`
	SenderID    int64     `json:"senderId" db:"sender_id"`
	RecipientID int64     `json:"recipientId" db:"recipient_id"`
	Content     string    `json:"content" db:"content"`
	IsRead      bool      `json:"isRead" db:"is_read"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ClubMessage is a message posted on a club board.
// ReadByViewer is filled by queries that take a viewer and is not a column.
type ClubMessage struct {
	ID        int64     `json:"id" db:"id"`
	ClubID    int64     `json:"clubId" db:"club_id"`
	SenderID  int64     `json:"senderId" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	ParentID  *int64    `json:"parentId,omitempty" db:"parent_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	ReadByViewer bool `json:"-"`

	// Related entities
	Sender *User `json:"sender,omitempty"`
}
