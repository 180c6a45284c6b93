package dto

// ReportRequest files a report against a user
type ReportRequest struct {
	Reason string `json:"reason" validate:"max=1000" example:"Spam"`
}

// ReportResult reports the escalation outcome of a report
type ReportResult struct {
	ReportID     int64  `json:"reportId" example:"12"`
	TotalReports int64  `json:"totalReports" example:"5"`
	State        string `json:"state" example:"WARNED" enums:"NORMAL,WARNED,SUSPENDED"`
	Warned       bool   `json:"warned" example:"true"`
	Suspended    bool   `json:"suspended" example:"false"`
}

// ModerationStatusResponse is the moderation view of a user
type ModerationStatusResponse struct {
	UserID       int64  `json:"userId" example:"2"`
	Username     string `json:"username" example:"bob"`
	TotalReports int64  `json:"totalReports" example:"7"`
	State        string `json:"state" example:"WARNED"`
	IsActive     bool   `json:"isActive" example:"true"`
}
