package animation

import (
	"math/rand/v2"
	"time"

	"github.com/atomicstack/tui-greeter/internal/cellbuf"
)

// blizzardTickRate is how many ticks the snow advances per second.
const blizzardTickRate = 400

// blizzardSparsity scales the modulus so that only 1 in n draws is snow.
const blizzardSparsity = 25

var snowCells = [...]cellbuf.Cell{
	{Ch: '#', Fg: cellbuf.ColorWhite, Bg: cellbuf.ColorDefault},
	{Ch: '#', Fg: cellbuf.ColorWhite, Bg: cellbuf.ColorDefault},
	{Ch: '+', Fg: cellbuf.ColorWhite, Bg: cellbuf.ColorDefault},
	{Ch: '*', Fg: cellbuf.ColorCyan, Bg: cellbuf.ColorDefault},
}

var blizzardEmpty = cellbuf.Cell{Ch: ' ', Fg: cellbuf.ColorDefault, Bg: cellbuf.ColorDefault}

// blizzard has no simulation state: every frame is a pure function of the
// tick and the cell position.
type blizzard struct {
	now   func() time.Time
	epoch time.Time
}

func (b *blizzard) Init(cellbuf.Size) {
	if b.now == nil {
		b.now = time.Now
	}
	if b.epoch.IsZero() {
		b.epoch = b.now()
	}
}

func (b *blizzard) Draw(buf *cellbuf.Buffer) {
	elapsed := b.now().Sub(b.epoch)
	if elapsed < 0 {
		elapsed = 0
	}
	drawBlizzard(buf, uint64(elapsed/(time.Second/blizzardTickRate)))
}

func (b *blizzard) Teardown() {}

// drawBlizzard renders the frame for tick. Each row gets its own generator
// seeded from tick+height-row; skipping row outputs shifts the pattern
// sideways so flakes drift diagonally as the tick advances.
func drawBlizzard(buf *cellbuf.Buffer, tick uint64) {
	w, h := buf.Width(), buf.Height()
	modulus := uint64(blizzardSparsity * len(snowCells))
	for y := 0; y < h; y++ {
		seed := tick + uint64(h) - uint64(y)
		rng := rand.New(rand.NewPCG(seed, 0))
		for i := 0; i < y; i++ {
			rng.Uint64()
		}
		for x := 0; x < w; x++ {
			n := rng.Uint64() % modulus
			if n < uint64(len(snowCells)) {
				buf.Set(x, y, snowCells[n])
			} else {
				buf.Set(x, y, blizzardEmpty)
			}
		}
	}
}
