package view

import (
	"context"
	"time"
)

const defaultFetchTimeout = 10 * time.Second

// FetchCtx bounds a single API request. A non-positive timeout uses the default.
func FetchCtx(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	return context.WithTimeout(parent, timeout)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}

	if n == 1 {
		return "…"
	}

	return string(r[:n-1]) + "…"
}
