package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/middleware"
)

// requesterID returns the authenticated user set by the JWT middleware
func requesterID(ctx *gin.Context) int64 {
	return ctx.GetInt64(middleware.ContextUserID)
}

// parseIDParam reads a positive int64 path parameter. On failure it writes a
// 400 response and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails("must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
