package dto

import "time"

// SearchPageSize caps conversation results when a search query is given
const SearchPageSize = 10

// ConversationSummary is one row of the conversation list
type ConversationSummary struct {
	Type               string     `json:"type" example:"user" enums:"user,club"`
	CounterpartID      int64      `json:"id" example:"2"`
	DisplayName        string     `json:"name" example:"bob"`
	AvatarURL          string     `json:"avatar" example:"https://ui-avatars.com/api/?name=bob"`
	LastMessagePreview string     `json:"lastMessage" example:"See you tomorrow"`
	LastMessageTime    *time.Time `json:"lastMessageTime"`
	UnreadCount        int64      `json:"unreadCount" example:"3"`
}

// ConversationListResponse is returned by the conversation list endpoint
type ConversationListResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
	Query         string                `json:"query,omitempty"`
}

// DirectMessageResponse is a direct message as shown in a thread
type DirectMessageResponse struct {
	ID          int64     `json:"id" example:"10"`
	SenderID    int64     `json:"senderId" example:"1"`
	RecipientID int64     `json:"recipientId" example:"2"`
	Content     string    `json:"content" example:"Hello"`
	IsRead      bool      `json:"isRead" example:"true"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DirectThread is the full conversation between the requester and another user
type DirectThread struct {
	Counterpart UserSummary             `json:"counterpart"`
	Messages    []DirectMessageResponse `json:"messages"`
	MarkedRead  int64                   `json:"markedRead" example:"2"`
}

// ClubMessageResponse is a club message as shown on a board
type ClubMessageResponse struct {
	ID        int64                  `json:"id" example:"5"`
	ClubID    int64                  `json:"clubId" example:"1"`
	Sender    UserSummary            `json:"sender"`
	Content   string                 `json:"content" example:"Welcome everyone"`
	ParentID  *int64                 `json:"parentId,omitempty"`
	IsRead    bool                   `json:"isRead" example:"false"`
	CreatedAt time.Time              `json:"createdAt"`
	Replies   []*ClubMessageResponse `json:"replies,omitempty"`
}

// ClubThread is a club board. Tree is set only when the reply tree was requested.
type ClubThread struct {
	Club     ClubResponse           `json:"club"`
	Messages []ClubMessageResponse  `json:"messages"`
	Tree     []*ClubMessageResponse `json:"tree,omitempty"`
}
