package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/tui-greeter/internal/cellbuf"
)

func TestRenderRowSkipsWideContinuation(t *testing.T) {
	m := newTestHarness(t).Model()
	buf := cellbuf.New(6, 1)
	buf.PutString(0, 0, "a世b", cellbuf.ColorDefault, cellbuf.ColorDefault, cellbuf.AttrNone)
	var b strings.Builder
	m.renderRow(&b, buf.Row(0), -1)
	if got := b.String(); got != "a世b  " {
		t.Fatalf("expected %q, got %q", "a世b  ", got)
	}
}

func TestViewHasOneLinePerRow(t *testing.T) {
	h := newTestHarness(t)
	h.Frame()
	lines := strings.Split(h.View(), "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 lines, got %d", len(lines))
	}
}

func TestViewEmptyBeforeResize(t *testing.T) {
	m := NewModel(newTestHarness(t).Model().Greeter(), nil, 0)
	if m.View() != "" {
		t.Fatalf("expected empty view before the first resize")
	}
}

func TestRenderCaretKeepsGlyph(t *testing.T) {
	m := newTestHarness(t).Model()
	if got := m.renderCaret(cellbuf.Cell{Ch: '*'}); !strings.Contains(got, "*") {
		t.Fatalf("expected caret to draw the masked glyph, got %q", got)
	}
	if got := m.renderCaret(cellbuf.Cell{}); !strings.Contains(got, " ") {
		t.Fatalf("expected caret on an empty cell to draw a space, got %q", got)
	}
}
