package signal

import (
	"sync"

	"github.com/dkeye/patchbay/internal/domain"
	"golang.org/x/time/rate"
)

// SignalRateLimiter caps inbound messages per connection.
// A nil limiter allows everything.
type SignalRateLimiter struct {
	mu       sync.Mutex
	limiters map[domain.ConnID]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewSignalRateLimiter allows perSecond messages with the given burst.
// perSecond <= 0 disables limiting.
func NewSignalRateLimiter(perSecond float64, burst int) *SignalRateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &SignalRateLimiter{
		limiters: make(map[domain.ConnID]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (rl *SignalRateLimiter) Allow(sid domain.ConnID) bool {
	if rl == nil {
		return true
	}
	rl.mu.Lock()
	l, ok := rl.limiters[sid]
	if !ok {
		l = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[sid] = l
	}
	rl.mu.Unlock()
	return l.Allow()
}

// Forget drops the state kept for sid.
func (rl *SignalRateLimiter) Forget(sid domain.ConnID) {
	if rl == nil {
		return
	}
	rl.mu.Lock()
	delete(rl.limiters, sid)
	rl.mu.Unlock()
}

func (rl *SignalRateLimiter) tracked() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limiters)
}
