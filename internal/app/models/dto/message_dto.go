package dto

// SendMessageRequest is the body of a direct message
type SendMessageRequest struct {
	RecipientID int64  `json:"recipientId" validate:"required,gt=0" example:"2"`
	Content     string `json:"content" validate:"max=5000" example:"Hello Bob"`
}

// SendClubMessageRequest is the body of a club message. ParentID makes it a reply.
type SendClubMessageRequest struct {
	Content  string `json:"content" validate:"max=5000" example:"Meeting at six"`
	ParentID *int64 `json:"parentId,omitempty" validate:"omitempty,gt=0" example:"5"`
}

// MarkReadRequest marks one message as read
type MarkReadRequest struct {
	Type      string `json:"type" validate:"required,oneof=user club" example:"user"`
	MessageID int64  `json:"messageId" validate:"required,gt=0" example:"10"`
}
