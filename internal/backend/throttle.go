package backend

import (
	"context"
	"sync"
	"time"
)

// throttle spaces successive polls so a burst of directory changes or a
// short interval cannot spin the crawler.
type throttle struct {
	gap time.Duration

	mu   sync.Mutex
	last time.Time
}

func newThrottle(gap time.Duration) *throttle {
	return &throttle{gap: max(gap, 0)}
}

// wait blocks until gap has passed since the previous call returned, or
// until ctx is done. It reports whether the caller may proceed.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.gap == 0 {
		return ctx.Err() == nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if delay := t.gap - time.Since(t.last); !t.last.IsZero() && delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
	}
	t.last = time.Now()
	return ctx.Err() == nil
}
