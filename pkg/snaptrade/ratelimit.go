package snaptrade

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	headerRateLimit     = "X-RateLimit-Limit"
	headerRateRemaining = "X-RateLimit-Remaining"
)

// RateLimiter paces outgoing requests and tracks the quota reported by the API.
type RateLimiter struct {
	limiter *rate.Limiter
	log     logrus.FieldLogger

	mu        sync.RWMutex
	limit     int
	remaining int
	updated   time.Time
}

// NewRateLimiter allows perSecond requests per second with the given burst.
func NewRateLimiter(perSecond float64, burst int, log logrus.FieldLogger) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		log:     log,
	}
}

// Wait blocks until a request may be sent or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

// UpdateFromHeaders records the quota advertised by a response.
func (rl *RateLimiter) UpdateFromHeaders(h http.Header) {
	limit, err := strconv.Atoi(h.Get(headerRateLimit))
	if err != nil || limit <= 0 {
		return
	}
	remaining, err := strconv.Atoi(h.Get(headerRateRemaining))
	if err != nil {
		return
	}

	rl.mu.Lock()
	rl.limit = limit
	rl.remaining = remaining
	rl.updated = time.Now()
	rl.mu.Unlock()

	used := limit - remaining
	percentage := float64(used) / float64(limit) * 100
	fields := logrus.Fields{"used": used, "limit": limit, "percentage": percentage}
	if percentage >= 95 {
		rl.log.WithFields(fields).Warn("snaptrade rate limit critical")
	} else if percentage >= 80 {
		rl.log.WithFields(fields).Info("snaptrade rate limit warning")
	}
}

// Usage returns the last reported quota. limit is zero until a response
// carrying rate limit headers has been seen.
func (rl *RateLimiter) Usage() (used int, limit int, percentage float64) {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	if rl.limit == 0 {
		return 0, 0, 0
	}
	used = rl.limit - rl.remaining
	return used, rl.limit, float64(used) / float64(rl.limit) * 100
}
