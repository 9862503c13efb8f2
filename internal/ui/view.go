package ui

import (
	"strings"

	"github.com/atomicstack/tui-greeter/internal/cellbuf"
	"github.com/atomicstack/tui-greeter/internal/greeter"
	"github.com/atomicstack/tui-greeter/internal/theme"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.outcome != greeter.ActionNone || m.buf.Width() == 0 || m.buf.Height() == 0 {
		return ""
	}
	cx, cy := m.greeter.CursorPosition()
	var b strings.Builder
	for y := 0; y < m.buf.Height(); y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		caretX := -1
		if y == cy {
			caretX = cx
		}
		m.renderRow(&b, m.buf.Row(y), caretX)
	}
	return b.String()
}

// renderRow writes row as runs of identically styled cells. The cell at
// caretX, if any, is drawn with the caret instead.
func (m *Model) renderRow(b *strings.Builder, row []cellbuf.Cell, caretX int) {
	var (
		run     []rune
		runCell cellbuf.Cell
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		text := string(run)
		if theme.Plain(runCell.Fg, runCell.Bg, runCell.Attr) {
			b.WriteString(text)
		} else {
			b.WriteString(theme.Cell(runCell.Fg, runCell.Bg, runCell.Attr).Render(text))
		}
		run = run[:0]
	}
	for x, c := range row {
		if c.Ch == 0 {
			continue
		}
		if x == caretX {
			flush()
			b.WriteString(m.renderCaret(c))
			continue
		}
		if len(run) > 0 && (c.Fg != runCell.Fg || c.Bg != runCell.Bg || c.Attr != runCell.Attr) {
			flush()
		}
		if len(run) == 0 {
			runCell = c
		}
		run = append(run, c.Ch)
	}
	flush()
}
