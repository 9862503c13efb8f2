package animation

import (
	"math/rand/v2"

	"github.com/atomicstack/tui-greeter/internal/cellbuf"
)

const doomSteps = 13

// doomPalette maps heat to a cell: four tiers (default, red, yellow, white)
// of four shade glyphs each, coolest first.
var doomPalette = [doomSteps]cellbuf.Cell{
	{Ch: ' ', Fg: cellbuf.ColorDefault, Bg: cellbuf.ColorDefault},
	{Ch: '░', Fg: cellbuf.ColorRed, Bg: cellbuf.ColorDefault},
	{Ch: '▒', Fg: cellbuf.ColorRed, Bg: cellbuf.ColorDefault},
	{Ch: '▓', Fg: cellbuf.ColorRed, Bg: cellbuf.ColorDefault},
	{Ch: '█', Fg: cellbuf.ColorRed, Bg: cellbuf.ColorDefault},
	{Ch: '░', Fg: cellbuf.ColorYellow, Bg: cellbuf.ColorRed},
	{Ch: '▒', Fg: cellbuf.ColorYellow, Bg: cellbuf.ColorRed},
	{Ch: '▓', Fg: cellbuf.ColorYellow, Bg: cellbuf.ColorRed},
	{Ch: '█', Fg: cellbuf.ColorYellow, Bg: cellbuf.ColorRed},
	{Ch: '░', Fg: cellbuf.ColorWhite, Bg: cellbuf.ColorYellow},
	{Ch: '▒', Fg: cellbuf.ColorWhite, Bg: cellbuf.ColorYellow},
	{Ch: '▓', Fg: cellbuf.ColorWhite, Bg: cellbuf.ColorYellow},
	{Ch: '█', Fg: cellbuf.ColorWhite, Bg: cellbuf.ColorYellow},
}

// doom is the classic PSX fire: heat is injected along the bottom row and
// every tick each cell copies its heat one row up, drifting sideways and
// cooling at random.
type doom struct {
	rng  *rand.Rand
	size cellbuf.Size
	heat []uint8
}

func (d *doom) Init(size cellbuf.Size) {
	d.size = size
	d.heat = make([]uint8, size.Area())
	if size.Height == 0 {
		return
	}
	bottom := d.heat[(size.Height-1)*size.Width:]
	for i := range bottom {
		bottom[i] = doomSteps - 1
	}
}

func (d *doom) Draw(buf *cellbuf.Buffer) {
	w, h := d.size.Width, d.size.Height
	if w == 0 || len(d.heat) != w*h {
		return
	}
	for x := 0; x < w; x++ {
		for y := 1; y < h; y++ {
			src := y*w + x
			decay := int(d.rng.Uint32() & 3)

			// one row up, drifting between one column right and two left;
			// the drift is clamped at the screen edges
			dstX := x + 1 - decay
			if dstX < 0 {
				dstX = 0
			} else if dstX >= w {
				dstX = w - 1
			}
			dst := (y-1)*w + dstX

			heat := int(d.heat[src]) - (decay & 1)
			if heat < 0 || heat >= doomSteps {
				heat = 0
			}
			d.heat[dst] = uint8(heat)

			buf.Set(dstX, y-1, doomPalette[d.heat[dst]])
			buf.Set(x, y, doomPalette[d.heat[src]])
		}
	}
}

func (d *doom) Teardown() {
	d.heat = nil
}
