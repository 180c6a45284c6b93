package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/apperrors"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/metrics"
	"github.com/hakunamatata40/ZEVABA-YAN/internal/pkg/ratelimit"
)

// RateLimit limits the authenticated requester under rule.
// It fails open when the limiter is disabled or unavailable.
func RateLimit(limiter *ratelimit.Limiter, rule ratelimit.Rule) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(ContextUserID)
		if userID <= 0 || !limiter.Enabled() {
			c.Next()
			return
		}

		allowed, _ := limiter.Allow(c.Request.Context(), userID, rule)
		if !allowed {
			metrics.RateLimitedTotal.WithLabelValues(rule.Key).Inc()
			HandleAPIError(c, apperrors.NewCustomError(apperrors.ErrRateLimited, "Too many requests, please slow down").
				WithCode("RATE_LIMITED"))
			return
		}

		c.Next()
	}
}
