package analytics

import (
	"sync"
	"time"
)

// PresenceTracker counts distinct visitors seen within a sliding window.
// Entries are pruned lazily on every count, so the map never grows past
// one entry per visitor seen during the window.
type PresenceTracker struct {
	mu       sync.Mutex
	window   time.Duration
	lastSeen map[string]time.Time
	now      func() time.Time
}

// NewPresenceTracker creates a tracker with the given window
func NewPresenceTracker(window time.Duration) *PresenceTracker {
	return &PresenceTracker{
		window:   window,
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Touch marks a visitor as seen now
func (t *PresenceTracker) Touch(visitorID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastSeen[visitorID] = t.now()
}

// ActiveCount returns the number of visitors seen within the window and
// drops the ones that have aged out
func (t *PresenceTracker) ActiveCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-t.window)
	for id, seen := range t.lastSeen {
		if seen.Before(cutoff) {
			delete(t.lastSeen, id)
		}
	}
	return len(t.lastSeen)
}
