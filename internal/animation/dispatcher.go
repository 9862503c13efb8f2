package animation

import (
	"math/rand/v2"
	"time"

	"github.com/atomicstack/tui-greeter/internal/cellbuf"
	"github.com/atomicstack/tui-greeter/internal/logging/events"
)

// Dispatcher holds the configured animation and keeps its state sized to
// the terminal.
type Dispatcher struct {
	kind   Kind
	rng    *rand.Rand
	now    func() time.Time
	active Animation
	size   cellbuf.Size
	ready  bool
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithClock replaces the wall clock used by time-driven variants.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDispatcher returns a dispatcher for kind. rng feeds every variant that
// needs randomness; a nil rng gets a time-seeded generator.
func NewDispatcher(kind Kind, rng *rand.Rand, opts ...Option) *Dispatcher {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	d := &Dispatcher{kind: kind, rng: rng, now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	if _, known := kindNames[kind]; !known {
		d.kind = KindNone
	}
	return d
}

// Kind returns the configured kind.
func (d *Dispatcher) Kind() Kind {
	return d.kind
}

// Size returns the size the active state was built for.
func (d *Dispatcher) Size() cellbuf.Size {
	return d.size
}

// EnsureReady builds state for size when none exists or when the existing
// state was built for a different size.
func (d *Dispatcher) EnsureReady(size cellbuf.Size) {
	if d.kind == KindNone {
		return
	}
	size = size.Clamp()
	if d.ready && d.size == size {
		return
	}
	if d.active == nil {
		d.active = newVariant(d.kind, d.rng, d.now)
	} else if d.ready {
		d.active.Teardown()
	}
	d.active.Init(size)
	d.size = size
	d.ready = true
	events.Animation.Init(d.kind.String(), size.Width, size.Height)
}

// Draw runs one tick of the active variant against buf. EnsureReady must
// have been called for the current size.
func (d *Dispatcher) Draw(buf *cellbuf.Buffer) {
	if d.kind == KindNone || !d.ready || buf == nil {
		return
	}
	d.active.Draw(buf)
}

// Animate sizes the state to buf and draws one tick.
func (d *Dispatcher) Animate(buf *cellbuf.Buffer) {
	if buf == nil {
		return
	}
	d.EnsureReady(buf.Size())
	d.Draw(buf)
}

// Teardown releases the active state.
func (d *Dispatcher) Teardown() {
	if d.kind == KindNone || !d.ready {
		return
	}
	d.active.Teardown()
	d.ready = false
	events.Animation.Teardown(d.kind.String())
}
