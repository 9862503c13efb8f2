package animation

import (
	"math/rand/v2"

	"github.com/atomicstack/tui-greeter/internal/cellbuf"
)

const (
	matrixFrameDelay = 8
	matrixGlyphMin   = 33
	matrixGlyphSpan  = 123 - matrixGlyphMin
	matrixShimmer    = 8 // 1 in n trailing cells change glyph per update
)

// Sentinel dot values. dotEmpty in row 0 arms the column for a new drop.
const (
	dotEmpty rune = -1
	dotBlank rune = ' '
)

type dot struct {
	value rune
	head  bool
}

func (d dot) vacant() bool {
	return d.value == dotEmpty || d.value == dotBlank
}

// matrix is cmatrix-style digital rain on every other column.
type matrix struct {
	rng  *rand.Rand
	size cellbuf.Size

	// grid has height+1 rows; row 0 is off-screen and holds the spawn
	// sentinel for each column.
	grid    [][]dot
	length  []int
	spaces  []int
	updates []int

	frame int
	count int
}

func (m *matrix) Init(size cellbuf.Size) {
	w, h := size.Width, size.Height
	m.size = size
	m.frame = 3
	m.count = 0

	cells := make([]dot, (h+1)*w)
	m.grid = make([][]dot, h+1)
	for i := range m.grid {
		m.grid[i] = cells[i*w : (i+1)*w]
	}
	m.length = make([]int, w)
	m.spaces = make([]int, w)
	m.updates = make([]int, w)

	if h <= 3 {
		return
	}
	for i := range cells {
		cells[i].value = dotEmpty
	}
	for j := 0; j < w; j += 2 {
		m.spaces[j] = m.rng.IntN(h) + 1
		m.length[j] = m.rng.IntN(h-3) + 3
		m.grid[1][j].value = dotBlank
		m.updates[j] = m.rng.IntN(3) + 1
	}
}

func (m *matrix) Draw(buf *cellbuf.Buffer) {
	h := m.size.Height
	if h <= 3 || len(m.grid) != h+1 {
		return
	}

	m.count++
	if m.count > matrixFrameDelay {
		m.frame++
		if m.frame > 4 {
			m.frame = 1
		}
		m.count = 0

		for j := 0; j < m.size.Width; j += 2 {
			if m.frame > m.updates[j] {
				m.updateColumn(j)
			}
		}
	}

	m.render(buf)
}

func (m *matrix) updateColumn(j int) {
	h := m.size.Height

	if m.grid[0][j].value == dotEmpty && m.grid[1][j].value == dotBlank {
		if m.spaces[j] > 0 {
			m.spaces[j]--
		} else {
			m.length[j] = m.rng.IntN(h-3) + 3
			m.grid[0][j].value = m.glyph()
			m.spaces[j] = m.rng.IntN(h) + 1
		}
	}

	first := true
	i := 0
	for i <= h {
		for i <= h && m.grid[i][j].vacant() {
			i++
		}
		if i > h {
			break
		}

		tail := i
		segment := 0
		for i <= h && !m.grid[i][j].vacant() {
			m.grid[i][j].head = false
			if m.rng.IntN(matrixShimmer) == 0 {
				m.grid[i][j].value = m.glyph()
			}
			i++
			segment++
		}

		// head ran off the bottom
		if i > h {
			m.grid[tail][j].value = dotBlank
			continue
		}

		m.grid[i][j].value = m.glyph()
		m.grid[i][j].head = true

		if segment > m.length[j] || !first {
			m.grid[tail][j].value = dotBlank
			m.grid[0][j].value = dotEmpty
		}
		first = false
		i++
	}
}

func (m *matrix) render(buf *cellbuf.Buffer) {
	for j := 0; j < m.size.Width; j += 2 {
		for i := 1; i <= m.size.Height; i++ {
			d := m.grid[i][j]
			cell := cellbuf.Cell{Ch: ' ', Fg: cellbuf.ColorGreen, Bg: cellbuf.ColorDefault}
			if !d.vacant() {
				cell.Ch = d.value
				if d.head {
					cell.Fg = cellbuf.ColorWhite
					cell.Attr = cellbuf.AttrBold
				}
			}
			buf.Set(j, i-1, cell)
		}
	}
}

func (m *matrix) glyph() rune {
	return rune(m.rng.IntN(matrixGlyphSpan) + matrixGlyphMin)
}

func (m *matrix) Teardown() {
	m.grid = nil
	m.length = nil
	m.spaces = nil
	m.updates = nil
}
