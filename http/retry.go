package http

import (
	"context"
	"net/http"
	"time"
)

// DefaultRetryDelays returns the backoff delays for fetch retries:
// 0.6s, 1.2s, 2.4s, 4.8s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{
		600 * time.Millisecond,
		1200 * time.Millisecond,
		2400 * time.Millisecond,
		4800 * time.Millisecond,
	}
}

// retryableStatus reports whether a response status is worth retrying.
func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// withRetry calls attempt until it succeeds, reports a non-retryable error
// or the delays are used up. onRetry, if non-nil, is called before each wait
// with the number of the next attempt and the error that caused it.
func withRetry(
	ctx context.Context,
	delays []time.Duration,
	onRetry func(attempt int, err error),
	attempt func() (string, bool, error),
) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		body, retry, err := attempt()
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retry || i >= maxAttempts-1 {
			break
		}

		if onRetry != nil {
			onRetry(i+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[i]):
		}
	}

	return "", lastErr
}
