package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/tui-greeter/internal/cellbuf"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Cursor *lipgloss.Style
	Text   *lipgloss.Style
}

var defaultStyles = Styles{
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("15")),
	),
	Text: ptr(
		lipgloss.NewStyle(),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

// Color maps a cell colour to the matching ANSI colour. ok is false for the
// terminal default.
func Color(c cellbuf.Color) (lipgloss.Color, bool) {
	idx, ok := c.ANSI()
	if !ok {
		return "", false
	}
	return lipgloss.Color(ansiNames[idx]), true
}

var ansiNames = [...]string{"0", "1", "2", "3", "4", "5", "6", "7"}

type cellKey struct {
	fg, bg cellbuf.Color
	attr   cellbuf.Attr
}

var cellStyles = map[cellKey]lipgloss.Style{}

// Cell returns the style for cells drawn with fg, bg and attr. Styles are
// cached; the cache is only touched from the render loop.
func Cell(fg, bg cellbuf.Color, attr cellbuf.Attr) lipgloss.Style {
	k := cellKey{fg: fg, bg: bg, attr: attr}
	if style, ok := cellStyles[k]; ok {
		return style
	}
	style := lipgloss.NewStyle().Inline(true)
	if c, ok := Color(fg); ok {
		style = style.Foreground(c)
	}
	if c, ok := Color(bg); ok {
		style = style.Background(c)
	}
	if attr&cellbuf.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attr&cellbuf.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	cellStyles[k] = style
	return style
}

// Plain reports whether cells with these attributes render without styling.
func Plain(fg, bg cellbuf.Color, attr cellbuf.Attr) bool {
	return fg == cellbuf.ColorDefault && bg == cellbuf.ColorDefault && attr == cellbuf.AttrNone
}
