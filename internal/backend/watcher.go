package backend

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/atomicstack/tui-greeter/internal/logging/events"
	"github.com/atomicstack/tui-greeter/internal/sessions"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindSessions Kind = iota
	KindHostname
)

// Event conveys updated data or an error from a backend poll. A sessions
// event may carry both the sessions that were read and the error from the
// directories that were not.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Config selects what the watcher polls.
type Config struct {
	Sources  []sessions.Source
	Options  sessions.Options
	Interval time.Duration
	// Hostname overrides os.Hostname; used by tests.
	Hostname func() (string, error)
}

// Watcher polls session directories and the hostname at a fixed interval
// and publishes events.
type Watcher struct {
	cfg Config

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls every cfg.Interval.
func NewWatcher(cfg Config) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.Hostname == nil {
		cfg.Hostname = os.Hostname
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
	}

	w.startSessionPoller()
	w.startHostnamePoller()

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

func (w *Watcher) startSessionPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindSessions, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		var (
			found []sessions.Session
			errs  []error
		)
		for _, src := range w.cfg.Sources {
			if src.Dir == "" {
				continue
			}
			crawled, err := sessions.Crawl(src.Dir, src.Kind, w.cfg.Options)
			if err != nil {
				events.Session.CrawlError(src.Dir, err)
				// an absent directory just means no sessions of that kind
				if !errors.Is(err, fs.ErrNotExist) {
					errs = append(errs, err)
				}
				continue
			}
			found = append(found, crawled...)
		}
		return found, errors.Join(errs...)
	})
}

func (w *Watcher) startHostnamePoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindHostname, func(ctx context.Context) (interface{}, error) {
		if !throttle.wait(ctx) {
			return nil, ctx.Err()
		}
		return w.cfg.Hostname()
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		evt := Event{Kind: kind, Data: data, Err: err}
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

	ticker := time.NewTicker(w.cfg.Interval)
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
