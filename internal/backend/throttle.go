package backend

import (
	"context"
	"sync"
	"time"
)

// pacer spaces metric queries so a refresh burst never hammers the database.
type pacer struct {
	gap time.Duration

	mu   sync.Mutex
	last time.Time
}

func newPacer(gap time.Duration) *pacer {
	return &pacer{gap: gap}
}

// wait blocks until at least gap has passed since the previous slot was
// claimed, or until ctx is done.
func (p *pacer) wait(ctx context.Context) error {
	if p == nil || p.gap <= 0 {
		return ctx.Err()
	}
	p.mu.Lock()
	slot := p.last.Add(p.gap)
	now := time.Now()
	if slot.Before(now) {
		slot = now
	}
	p.last = slot
	p.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
