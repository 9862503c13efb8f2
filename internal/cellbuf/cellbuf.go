// Package cellbuf holds the character-cell grid the greeter draws into.
// Frontends (Bubble Tea, tcell) read the grid back out after every frame.
package cellbuf

import "github.com/mattn/go-runewidth"

// Color is a terminal palette slot. ColorDefault leaves the terminal's own
// colour untouched; the remaining values follow the classic 8-colour order.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

// ANSI returns the 0-based ANSI palette index and false for ColorDefault.
func (c Color) ANSI() (int, bool) {
	if c == ColorDefault || c > ColorWhite {
		return 0, false
	}
	return int(c) - 1, true
}

// Attr is a bitmask of text attributes.
type Attr uint8

const (
	AttrNone    Attr = 0
	AttrBold    Attr = 1 << 0
	AttrReverse Attr = 1 << 1
)

// Cell is one terminal cell.
type Cell struct {
	Ch   rune
	Fg   Color
	Bg   Color
	Attr Attr
}

// Blank is the cell every buffer starts out with.
var Blank = Cell{Ch: ' '}

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

// Area returns Width*Height.
func (s Size) Area() int {
	return s.Width * s.Height
}

// Clamp returns s with negative dimensions raised to zero.
func (s Size) Clamp() Size {
	if s.Width < 0 {
		s.Width = 0
	}
	if s.Height < 0 {
		s.Height = 0
	}
	return s
}

// Buffer is a row-major grid: cells[y*width + x].
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// New creates a blank buffer of the given dimensions.
func New(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize changes the dimensions and blanks the contents. Storage is reused
// when it is large enough.
func (b *Buffer) Resize(width, height int) {
	size := Size{Width: width, Height: height}.Clamp()
	n := size.Area()
	if cap(b.cells) < n {
		b.cells = make([]Cell, n)
	} else {
		b.cells = b.cells[:n]
	}
	b.width = size.Width
	b.height = size.Height
	b.Fill(Blank)
}

// Size reports the current dimensions.
func (b *Buffer) Size() Size {
	return Size{Width: b.width, Height: b.height}
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

// InBounds reports whether (x, y) addresses a cell.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes a cell; out-of-range coordinates are ignored.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
}


// Get returns the cell at (x, y), or Blank outside the grid.
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Blank
	}
	return b.cells[y*b.width+x]
}

// Fill overwrites every cell with c.
func (b *Buffer) Fill(c Cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
}

// FillRect overwrites the rectangle at (x, y) of size w×h, clipped to the grid.
func (b *Buffer) FillRect(x, y, w, h int, c Cell) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.Set(col, row, c)
		}
	}
}

// Cells exposes the backing row-major slice.
func (b *Buffer) Cells() []Cell {
	return b.cells
}

// Row returns the cells of row y, or nil when y is out of range.
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	return b.cells[y*b.width : (y+1)*b.width]
}

// PutString writes s starting at (x, y) with the given colours and returns
// the number of columns consumed. Wide runes occupy two columns; the second
// column is filled with a zero rune so renderers can skip it.
func (b *Buffer) PutString(x, y int, s string, fg, bg Color, attr Attr) int {
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.Set(col, y, Cell{Ch: r, Fg: fg, Bg: bg, Attr: attr})
		if w == 2 {
			b.Set(col+1, y, Cell{Ch: 0, Fg: fg, Bg: bg, Attr: attr})
		}
		col += w
	}
	return col - x
}

// String returns the buffer's glyphs as newline-separated rows with no
// styling. Zero runes (wide-rune continuations) are skipped.
func (b *Buffer) String() string {
	out := make([]rune, 0, len(b.cells)+b.height)
	for y := 0; y < b.height; y++ {
		if y > 0 {
			out = append(out, '\n')
		}
		for _, c := range b.Row(y) {
			if c.Ch == 0 {
				continue
			}
			out = append(out, c.Ch)
		}
	}
	return string(out)
}
