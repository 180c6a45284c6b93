package models

import "time"

// Report is an abuse report filed by one user against another
type Report struct {
	ID         int64     `json:"id" db:"id"`
	ReporterID int64     `json:"reporterId" db:"reporter_id"`
	ReportedID int64     `json:"reportedId" db:"reported_id"`
	Reason     string    `json:"reason" db:"reason"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// Notification is a message addressed to a single user
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
