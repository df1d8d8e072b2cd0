package service

import (
	"sync"
	"time"
)

// refreshThrottle is the minimum gap between unforced network refreshes,
// regardless of per-key cache state. Rapid repeated UI-triggered refreshes
// collapse into one network call.
const refreshThrottle = 30 * time.Second

// RefreshController holds the global refresh guards as explicit state:
// the last successful refresh time and an in-flight flag. It approximates
// single-flight semantics for market-data refresh.
//
// A forced refresh bypasses the throttle window but never the in-flight
// guard. The clock is injected so tests can drive time deterministically.
type RefreshController struct {
	mu          sync.Mutex
	lastRefresh time.Time
	refreshing  bool
	now         func() time.Time
}

// NewRefreshController creates a controller using the real clock.
func NewRefreshController() *RefreshController {
	return NewRefreshControllerWithClock(time.Now)
}

// NewRefreshControllerWithClock creates a controller with an injected clock.
func NewRefreshControllerWithClock(now func() time.Time) *RefreshController {
	return &RefreshController{now: now}
}

// TryBegin attempts to start a refresh. It returns false when another
// refresh is in flight, or when the throttle window has not elapsed and the
// request is not forced. On success the caller must call End exactly once.
func (c *RefreshController) TryBegin(force bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.refreshing {
		return false
	}
	if !force && c.now().Sub(c.lastRefresh) < refreshThrottle {
		return false
	}

	c.refreshing = true
	return true
}

// End marks the refresh finished. The throttle timestamp advances only on
// success, so a failed refresh does not block the next attempt.
func (c *RefreshController) End(succeeded bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshing = false
	if succeeded {
		c.lastRefresh = c.now()
	}
}
