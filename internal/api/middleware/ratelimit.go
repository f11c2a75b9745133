package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewRateLimiter builds a per-client-IP limiter middleware allowing
// requests per period, where period is a duration string such as "1m"
// or "1h". Counters live in process memory, so limits apply per
// server instance.
func NewRateLimiter(requests int64, period string) (gin.HandlerFunc, error) {
	duration, err := time.ParseDuration(period)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit period %q: %w", period, err)
	}

	instance := limiter.New(memory.NewStore(), limiter.Rate{
		Period: duration,
		Limit:  requests,
	})
	return mgin.NewMiddleware(instance), nil
}
