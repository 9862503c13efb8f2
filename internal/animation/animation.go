// Package animation renders full-screen greeter backgrounds into a cell
// buffer. Each variant keeps its own simulation state behind the Animation
// interface; the Dispatcher owns the active variant and rebuilds its state
// whenever the terminal size changes.
package animation

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/atomicstack/tui-greeter/internal/cellbuf"
)

// Kind enumerates the available animations.
type Kind int

const (
	KindNone Kind = iota
	KindRandom
	KindDoom
	KindMatrix
	KindBlizzard
)

// ErrUnknownKind is returned by ParseKind for unrecognised names.
var ErrUnknownKind = errors.New("unknown animation")

var kindNames = map[Kind]string{
	KindNone:     "none",
	KindRandom:   "random",
	KindDoom:     "doom",
	KindMatrix:   "matrix",
	KindBlizzard: "blizzard",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a configuration value to a Kind. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return KindNone, nil
	}
	for kind, candidate := range kindNames {
		if candidate == name {
			return kind, nil
		}
	}
	return KindNone, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Animation is one background renderer. Init builds state for a size,
// Draw advances the simulation by one tick and writes into buf, and
// Teardown releases the state. A variant may be re-initialised after
// Teardown.
type Animation interface {
	Init(size cellbuf.Size)
	Draw(buf *cellbuf.Buffer)
	Teardown()
}

// concrete kinds Random may delegate to.
var randomChoices = []Kind{KindDoom, KindMatrix, KindBlizzard}

func newVariant(kind Kind, rng *rand.Rand, now func() time.Time) Animation {
	switch kind {
	case KindRandom:
		return &randomAnimation{rng: rng, now: now}
	case KindDoom:
		return &doom{rng: rng}
	case KindMatrix:
		return &matrix{rng: rng}
	case KindBlizzard:
		return &blizzard{now: now}
	default:
		return nil
	}
}
