package greeter

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/tui-greeter/internal/cellbuf"
)

const (
	minInputWidth = 8
	marginH       = 2
	marginV       = 1
	// desktop, gap, login, gap, password
	formRows = 5
)

// layout is the box geometry for one terminal size. The box includes its
// border; inner coordinates start one cell inside it.
type layout struct {
	size       cellbuf.Size
	x, y       int
	w, h       int
	labelWidth int
}

// Layout centres the form in size and positions the fields. Frame calls it
// on every tick; frontends may call it directly to place the cursor before
// the first frame.
func (g *Greeter) Layout(size cellbuf.Size) {
	labelWidth := runewidth.StringWidth(g.labels.Login)
	if w := runewidth.StringWidth(g.labels.Password); w > labelWidth {
		labelWidth = w
	}
	labelWidth++

	l := layout{
		size:       size,
		w:          2 + 2*marginH + labelWidth + g.inputWidth,
		h:          2 + 2*marginV + formRows,
		labelWidth: labelWidth,
	}
	l.x = max((size.Width-l.w)/2, 0)
	l.y = max((size.Height-l.h)/2, 0)
	g.layout = l

	fieldX := l.x + 1 + marginH + labelWidth
	top := l.y + 1 + marginV
	g.desktop.X, g.desktop.Y = fieldX, top
	g.login.X, g.login.Y = fieldX, top+2
	g.password.X, g.password.Y = fieldX, top+4
}

func (g *Greeter) draw(buf *cellbuf.Buffer) {
	l := g.layout
	buf.FillRect(l.x, l.y, l.w, l.h, cellbuf.Blank)
	drawBorder(buf, l)

	if g.hostname != "" {
		title := truncate.String(g.hostname, uint(max(l.w-4, 0)))
		buf.PutString(l.x+2, l.y, title, cellbuf.ColorDefault, cellbuf.ColorDefault, cellbuf.AttrBold)
	}

	labelX := l.x + 1 + marginH
	buf.PutString(labelX, g.login.Y, g.labels.Login, cellbuf.ColorDefault, cellbuf.ColorDefault, cellbuf.AttrNone)
	buf.PutString(labelX, g.password.Y, g.labels.Password, cellbuf.ColorDefault, cellbuf.ColorDefault, cellbuf.AttrNone)

	g.drawDesktop(buf)
	buf.PutString(g.login.X, g.login.Y, g.login.Visible(), cellbuf.ColorDefault, cellbuf.ColorDefault, cellbuf.AttrNone)
	mask := strings.Repeat("*", len(g.password.Visible()))
	buf.PutString(g.password.X, g.password.Y, mask, cellbuf.ColorDefault, cellbuf.ColorDefault, cellbuf.AttrNone)

	// variants that skip cells would otherwise leave stale text behind
	buf.FillRect(0, l.y+l.h, l.size.Width, 1, cellbuf.Blank)
	if g.info != "" {
		info := truncate.String(g.info, uint(l.size.Width))
		infoX := max((l.size.Width-runewidth.StringWidth(info))/2, 0)
		buf.PutString(infoX, l.y+l.h, info, cellbuf.ColorDefault, cellbuf.ColorDefault, cellbuf.AttrNone)
	}
}

// drawDesktop renders the selector as "< name >" across the input width.
func (g *Greeter) drawDesktop(buf *cellbuf.Buffer) {
	x, y := g.desktop.X, g.desktop.Y
	name := truncate.String(g.desktop.Current().Name, uint(max(g.inputWidth-4, 0)))
	buf.Set(x, y, cellbuf.Cell{Ch: '<'})
	buf.PutString(x+2, y, name, cellbuf.ColorDefault, cellbuf.ColorDefault, cellbuf.AttrNone)
	buf.Set(x+g.inputWidth-1, y, cellbuf.Cell{Ch: '>'})
}

func drawBorder(buf *cellbuf.Buffer, l layout) {
	right, bottom := l.x+l.w-1, l.y+l.h-1
	for x := l.x + 1; x < right; x++ {
		buf.Set(x, l.y, cellbuf.Cell{Ch: '─'})
		buf.Set(x, bottom, cellbuf.Cell{Ch: '─'})
	}
	for y := l.y + 1; y < bottom; y++ {
		buf.Set(l.x, y, cellbuf.Cell{Ch: '│'})
		buf.Set(right, y, cellbuf.Cell{Ch: '│'})
	}
	buf.Set(l.x, l.y, cellbuf.Cell{Ch: '┌'})
	buf.Set(right, l.y, cellbuf.Cell{Ch: '┐'})
	buf.Set(l.x, bottom, cellbuf.Cell{Ch: '└'})
	buf.Set(right, bottom, cellbuf.Cell{Ch: '┘'})
}
