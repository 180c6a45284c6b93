package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
)

// HandleAPIError maps an error returned by a service to its HTTP response.
// The specific error code travels in the details; unknown errors are store
// faults, logged and hidden behind a generic message.
func HandleAPIError(c *gin.Context, err error) {
	status, code := classify(err)

	if status == http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")

		c.AbortWithStatusJSON(status, dto.NewErrorResponse(
			dto.NewErrorDetail(code, "Internal server error").WithSeverity(dto.ErrorSeverityCritical),
		))
		return
	}

	detail := dto.NewErrorDetail(code, err.Error())
	if details := errorDetails(err); len(details) > 0 {
		detail = detail.WithDetails(details)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classify(err error) (int, dto.ErrorCode) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrConcurrencyFault):
		return http.StatusConflict, dto.ErrorCodeConflict
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, dto.ErrorCodeRateLimited
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken
	default:
		return http.StatusInternalServerError, dto.ErrorCodeDatabaseError
	}
}

func errorDetails(err error) map[string]interface{} {
	var ce *apperrors.CustomError
	if !errors.As(err, &ce) {
		return nil
	}

	details := make(map[string]interface{}, len(ce.Details)+1)
	for k, v := range ce.Details {
		details[k] = v
	}
	if ce.Code != "" {
		details["code"] = ce.Code
	}
	return details
}
