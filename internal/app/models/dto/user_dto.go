package dto

// FollowResult reports the follow state after a toggle
type FollowResult struct {
	Following      bool  `json:"following" example:"true"`
	FollowersCount int64 `json:"followersCount" example:"8"`
}

// FollowListResponse lists followers or followed users
type FollowListResponse struct {
	Users []UserSummary `json:"users"`
	Total int           `json:"total" example:"8"`
}
