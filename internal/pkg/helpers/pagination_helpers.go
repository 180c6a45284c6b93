package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/app/models/dto"
)

// Page sizes are 1-based pages of at most MaxPageSize items
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

func normalizeSize(size int) int {
	if size <= 0 || size > MaxPageSize {
		return DefaultPageSize
	}
	return size
}

// CalculateOffsetLimit converts a 1-based page and a size into an offset and a limit
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	limit = normalizeSize(size)
	if page < DefaultPage {
		page = DefaultPage
	}
	return uint64((page - 1) * limit), limit
}

// NewPaginationInfo builds the pagination block of a list response.
// An empty result still reports one page.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	size = normalizeSize(size)
	if page < DefaultPage {
		page = DefaultPage
	}

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages == 0 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams reads ?page= and ?size=, falling back to the defaults on bad input
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < DefaultPage {
		page = DefaultPage
	}
	size, err = strconv.Atoi(c.Query("size"))
	if err != nil {
		size = DefaultPageSize
	}
	return page, normalizeSize(size)
}
