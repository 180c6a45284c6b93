package dto

import "time"

// CreateClubRequest creates a club
type CreateClubRequest struct {
	Name        string `json:"name" validate:"required,notblank,min=2,max=100" example:"Chess Club"`
	Description string `json:"description" validate:"max=5000" example:"Weekly games"`
}

// ClubResponse is a club with viewer-relative flags
type ClubResponse struct {
	ID           int64       `json:"id" example:"1"`
	Name         string      `json:"name" example:"Chess Club"`
	Description  string      `json:"description" example:"Weekly games"`
	Creator      UserSummary `json:"creator"`
	MembersCount int64       `json:"membersCount" example:"12"`
	IsMember     bool        `json:"isMember" example:"true"`
	IsAdmin      bool        `json:"isAdmin" example:"false"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// MembershipResponse reports membership after join or leave
type MembershipResponse struct {
	ClubID       int64 `json:"clubId" example:"1"`
	IsMember     bool  `json:"isMember" example:"true"`
	MembersCount int64 `json:"membersCount" example:"13"`
}

// AdminRequest grants or revokes admin rights
type AdminRequest struct {
	UserID int64  `json:"userId" validate:"required,gt=0" example:"4"`
	Action string `json:"action" example:"add" enums:"add,remove"`
}

// AdminResponse reports the admin flag of the target after ManageAdmin
type AdminResponse struct {
	ClubID  int64 `json:"clubId" example:"1"`
	UserID  int64 `json:"userId" example:"4"`
	IsAdmin bool  `json:"isAdmin" example:"true"`
}

// PageSubscriptionResponse reports a page subscription state
type PageSubscriptionResponse struct {
	PageID           int64 `json:"pageId" example:"1"`
	Subscribed       bool  `json:"subscribed" example:"true"`
	SubscribersCount int64 `json:"subscribersCount" example:"20"`
}
