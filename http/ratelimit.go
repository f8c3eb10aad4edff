package http

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// hostLimiter rate limits requests per host using token buckets with a
// burst of 1.
type hostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

func newHostLimiter(rps float64) *hostLimiter {
	return &hostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
// A nil limiter never blocks.
func (l *hostLimiter) Wait(ctx context.Context, host string) error {
	if l == nil {
		return nil
	}

	l.mu.Lock()
	limiter, ok := l.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(l.rps), 1)
		l.limiters[host] = limiter
	}
	l.mu.Unlock()

	return limiter.Wait(ctx)
}
