package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/stockroom/internal/inventory"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindMetrics Kind = iota
)

func (k Kind) String() string {
	switch k {
	case KindMetrics:
		return "metrics"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	At   time.Time
	Err  error
}

// MetricsSource computes the dashboard metrics.
type MetricsSource interface {
	BasicInfo(ctx context.Context) ([]inventory.Metric, error)
}

// minPollGap bounds how often metrics are queried when the refresh interval is
// set very low.
const minPollGap = 250 * time.Millisecond

// Watcher polls the store at a fixed interval and publishes events.
type Watcher struct {
	source   MetricsSource
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls source every interval. It
// returns nil when interval is not positive.
func NewWatcher(source MetricsSource, interval time.Duration) *Watcher {
	if source == nil || interval <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startMetricsPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startMetricsPoller() {
	pace := newPacer(minPollGap)
	w.wg.Add(1)
	go w.poll(KindMetrics, func(ctx context.Context) (interface{}, error) {
		if err := pace.wait(ctx); err != nil {
			return nil, err
		}
		return w.source.BasicInfo(ctx)
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, At: time.Now(), Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
