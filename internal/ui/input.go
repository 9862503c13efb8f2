package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tui-greeter/internal/cellbuf"
	"github.com/atomicstack/tui-greeter/internal/theme"
)

// updateCaretModel forwards blink and focus messages to the caret.
func (m *Model) updateCaretModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	return cmd
}

// renderCaret draws the cell under the caret. During the off phase of a
// blink the cell keeps its own styling.
func (m *Model) renderCaret(c cellbuf.Cell) string {
	char := string(c.Ch)
	if c.Ch == 0 {
		char = " "
	}
	m.caret.SetChar(char)
	if !m.caret.Blink {
		return m.caret.View()
	}
	if theme.Plain(c.Fg, c.Bg, c.Attr) {
		return char
	}
	return theme.Cell(c.Fg, c.Bg, c.Attr).Render(char)
}
