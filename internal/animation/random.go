package animation

import (
	"math/rand/v2"
	"time"

	"github.com/atomicstack/tui-greeter/internal/cellbuf"
	"github.com/atomicstack/tui-greeter/internal/logging/events"
)

// randomAnimation delegates to one concrete variant picked on the first
// Init. The pick survives resizes; only the delegate's state is rebuilt.
type randomAnimation struct {
	rng    *rand.Rand
	now    func() time.Time
	chosen Kind
	inner  Animation
}

func (r *randomAnimation) Init(size cellbuf.Size) {
	if r.inner == nil {
		r.chosen = randomChoices[r.rng.IntN(len(randomChoices))]
		r.inner = newVariant(r.chosen, r.rng, r.now)
		events.Animation.Pick(r.chosen.String())
	}
	r.inner.Init(size)
}

func (r *randomAnimation) Draw(buf *cellbuf.Buffer) {
	if r.inner != nil {
		r.inner.Draw(buf)
	}
}

func (r *randomAnimation) Teardown() {
	if r.inner != nil {
		r.inner.Teardown()
	}
}
