package service

import (
	"sync"
	"time"
)

// refreshDelay batches rapid successive ledger edits into a single market
// refresh instead of one network call per keystroke.
const refreshDelay = 500 * time.Millisecond

// RefreshScheduler debounces the market refresh that follows a ledger
// mutation. Reconciliation itself is synchronous; only the price refresh is
// deferred.
type RefreshScheduler struct {
	mu      sync.Mutex
	timer   *time.Timer
	delay   time.Duration
	refresh func()
}

// NewRefreshScheduler creates a scheduler that invokes refresh after the
// debounce delay elapses without another Schedule call.
func NewRefreshScheduler(refresh func()) *RefreshScheduler {
	return &RefreshScheduler{
		delay:   refreshDelay,
		refresh: refresh,
	}
}

// Schedule (re)arms the debounce timer.
func (s *RefreshScheduler) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.refresh)
}

// Stop cancels any pending refresh. Called on shutdown.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
