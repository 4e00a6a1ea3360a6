package analytics

import (
	"testing"
	"time"
)

func TestPresenceCountsDistinctVisitors(t *testing.T) {
	tracker := NewPresenceTracker(5 * time.Minute)

	tracker.Touch("a")
	tracker.Touch("b")
	tracker.Touch("a")

	if got := tracker.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount() = %d, want 2", got)
	}
}

func TestPresenceEmpty(t *testing.T) {
	tracker := NewPresenceTracker(5 * time.Minute)

	if got := tracker.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() = %d, want 0", got)
	}
}

func TestPresenceExpiresOutsideWindow(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewPresenceTracker(5 * time.Minute)
	tracker.now = func() time.Time { return current }

	tracker.Touch("old")

	current = current.Add(3 * time.Minute)
	tracker.Touch("recent")

	current = current.Add(3 * time.Minute)
	if got := tracker.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount() after 6m = %d, want only the recent visitor", got)
	}

	current = current.Add(10 * time.Minute)
	if got := tracker.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() after expiry = %d, want 0", got)
	}
}

func TestPresenceTouchRefreshesWindow(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewPresenceTracker(5 * time.Minute)
	tracker.now = func() time.Time { return current }

	tracker.Touch("a")

	current = current.Add(4 * time.Minute)
	tracker.Touch("a")

	current = current.Add(4 * time.Minute)
	if got := tracker.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount() = %d, want refreshed visitor still present", got)
	}
}
