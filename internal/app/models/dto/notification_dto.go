package dto

import "time"

// NotificationResponse is a notification as listed to its owner
type NotificationResponse struct {
	ID        int64     `json:"id" example:"3"`
	Message   string    `json:"message" example:"bob started following you"`
	IsRead    bool      `json:"isRead" example:"false"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse is a page of notifications
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount" example:"2"`
	Pagination    PaginationInfo         `json:"pagination"`
}

// MarkAllReadResponse reports how many notifications were flipped
type MarkAllReadResponse struct {
	Updated int64 `json:"updated" example:"4"`
}
