package apperrors

import "errors"

// Error kinds. Every error returned by the services wraps one of these.
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Store errors
	ErrConcurrencyFault = errors.New("concurrent update detected")
	ErrRateLimited      = errors.New("rate limit exceeded")
)

// Validation errors
var (
	ErrEmptyComment        = newKindError(ErrValidationFailed, "EMPTY_COMMENT", "comment cannot be empty")
	ErrEmptyReason         = newKindError(ErrValidationFailed, "EMPTY_REASON", "report reason cannot be empty")
	ErrEmptyContent        = newKindError(ErrValidationFailed, "EMPTY_CONTENT", "message cannot be empty")
	ErrInvalidReactionType = newKindError(ErrValidationFailed, "INVALID_REACTION_TYPE", "invalid reaction type")
	ErrInvalidAction       = newKindError(ErrValidationFailed, "INVALID_ACTION", "invalid action")
	ErrInvalidParent       = newKindError(ErrValidationFailed, "INVALID_PARENT", "parent belongs to another publication")
)

// Authorization errors
var (
	ErrUnauthorizedClubAccess = newKindError(ErrPermissionDenied, "UNAUTHORIZED_CLUB_ACCESS", "you must be a club member")
	ErrSelfReportForbidden    = newKindError(ErrPermissionDenied, "SELF_REPORT_FORBIDDEN", "you cannot report yourself")
	ErrSelfMessageForbidden   = newKindError(ErrPermissionDenied, "SELF_MESSAGE_FORBIDDEN", "you cannot message yourself")
	ErrSelfFollowForbidden    = newKindError(ErrPermissionDenied, "SELF_FOLLOW_FORBIDDEN", "you cannot follow yourself")
	ErrNotClubAdmin           = newKindError(ErrPermissionDenied, "NOT_CLUB_ADMIN", "only the club creator or an admin can do this")
	ErrStaffOnly              = newKindError(ErrPermissionDenied, "STAFF_ONLY", "staff privilege required")
	ErrNotRecipient           = newKindError(ErrPermissionDenied, "NOT_RECIPIENT", "only the recipient can mark a message as read")
)

// Not found errors
var (
	ErrUserNotFound         = newKindError(ErrResourceNotFound, "USER_NOT_FOUND", "user not found")
	ErrClubNotFound         = newKindError(ErrResourceNotFound, "CLUB_NOT_FOUND", "club not found")
	ErrPublicationNotFound  = newKindError(ErrResourceNotFound, "PUBLICATION_NOT_FOUND", "publication not found")
	ErrMessageNotFound      = newKindError(ErrResourceNotFound, "MESSAGE_NOT_FOUND", "message not found")
	ErrReactionNotFound     = newKindError(ErrResourceNotFound, "REACTION_NOT_FOUND", "reaction not found")
	ErrNotificationNotFound = newKindError(ErrResourceNotFound, "NOTIFICATION_NOT_FOUND", "notification not found")
	ErrPageNotFound         = newKindError(ErrResourceNotFound, "PAGE_NOT_FOUND", "page not found")
)

// Conflict errors
var (
	ErrAlreadyMember      = newKindError(ErrConflict, "ALREADY_MEMBER", "already a member")
	ErrNotMember          = newKindError(ErrConflict, "NOT_MEMBER", "not a member")
	ErrCreatorCannotLeave = newKindError(ErrConflict, "CREATOR_CANNOT_LEAVE", "the club creator cannot leave or be demoted")
)

func newKindError(kind error, code, message string) *CustomError {
	return &CustomError{Err: kind, Code: code, Message: message}
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CodeOf returns the code of the outermost CustomError in the chain, if any
func CodeOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
