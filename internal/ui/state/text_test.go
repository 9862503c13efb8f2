package state

import (
	"strings"
	"testing"
)

func checkViewport(t *testing.T, f *TextField) {
	t.Helper()
	if f.VisibleStart() < 0 || f.VisibleStart() > f.Cursor() {
		t.Fatalf("expected 0 <= visibleStart (%d) <= cursor (%d)", f.VisibleStart(), f.Cursor())
	}
	if f.Cursor() > f.End() || f.End() > f.Cap() {
		t.Fatalf("expected cursor (%d) <= end (%d) <= cap (%d)", f.Cursor(), f.End(), f.Cap())
	}
	if f.Cursor()-f.VisibleStart() > f.VisibleLen() {
		t.Fatalf("expected cursor within viewport, got cursor=%d start=%d len=%d", f.Cursor(), f.VisibleStart(), f.VisibleLen())
	}
}

func TestTextFieldWriteInsertsAtCursor(t *testing.T) {
	f := NewTextField(10)
	for _, ch := range []byte("acd") {
		if !f.Write(ch) {
			t.Fatalf("expected write of %q to succeed", ch)
		}
	}
	f.Left()
	f.Left()
	f.Write('b')
	if f.Text() != "abcd" {
		t.Fatalf("expected 'abcd', got %q", f.Text())
	}
	if f.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", f.Cursor())
	}
	if f.End() != 4 {
		t.Fatalf("expected end 4, got %d", f.End())
	}
}

func TestTextFieldRejectsNonASCII(t *testing.T) {
	f := NewTextField(10)
	if f.Write(0) {
		t.Fatalf("expected NUL to be rejected")
	}
	if f.Write(0xC3) {
		t.Fatalf("expected high byte to be rejected")
	}
	if f.Len() != 0 || f.Cursor() != 0 {
		t.Fatalf("expected untouched field, got len=%d cursor=%d", f.Len(), f.Cursor())
	}
}

func TestTextFieldWriteBackspaceRoundTrip(t *testing.T) {
	inputs := []string{"", "a", "hunter2", strings.Repeat("x", 31), strings.Repeat("long-password-", 10)}
	for _, prefix := range []string{"", "root", strings.Repeat("p", 40)} {
		for _, in := range inputs {
			f := NewTextField(8)
			f.SetText(prefix)
			text, cursor, end := f.Text(), f.Cursor(), f.End()

			for i := 0; i < len(in); i++ {
				f.Write(in[i])
				checkViewport(t, f)
			}
			for i := 0; i < len(in); i++ {
				f.Backspace()
				checkViewport(t, f)
			}
			if f.Text() != text || f.Cursor() != cursor || f.End() != end {
				t.Fatalf("prefix %q input %q: expected (%q,%d,%d), got (%q,%d,%d)",
					prefix, in, text, cursor, end, f.Text(), f.Cursor(), f.End())
			}
		}
	}
}

func TestTextFieldGrowsByDoubling(t *testing.T) {
	f := NewTextField(5)
	grown := []int{}
	f.OnGrow(func(capacity int) { grown = append(grown, capacity) })
	text := strings.Repeat("z", 70)
	f.SetText(text)
	if f.Text() != text {
		t.Fatalf("expected text preserved across reallocation")
	}
	if len(grown) != 2 || grown[0] != 64 || grown[1] != 128 {
		t.Fatalf("expected growth to 64 then 128, got %v", grown)
	}
	checkViewport(t, f)
}

func TestTextFieldViewportScrolls(t *testing.T) {
	f := NewTextField(3)
	f.SetText("abcdef")
	if f.VisibleStart() != 3 {
		t.Fatalf("expected viewport start 3, got %d", f.VisibleStart())
	}
	if f.Visible() != "def" {
		t.Fatalf("expected visible 'def', got %q", f.Visible())
	}
	for f.Left() {
		checkViewport(t, f)
	}
	if f.Cursor() != 0 || f.VisibleStart() != 0 {
		t.Fatalf("expected cursor and viewport at origin, got %d/%d", f.Cursor(), f.VisibleStart())
	}
	if f.Visible() != "abc" {
		t.Fatalf("expected visible 'abc', got %q", f.Visible())
	}
	for f.Right() {
		checkViewport(t, f)
	}
	if f.Cursor() != 6 {
		t.Fatalf("expected cursor at end, got %d", f.Cursor())
	}
}

func TestTextFieldCursorColumn(t *testing.T) {
	f := NewTextField(4)
	f.X = 10
	f.SetText("abcdefg")
	if col := f.CursorColumn(); col != 14 {
		t.Fatalf("expected column 14, got %d", col)
	}
	f.Left()
	if col := f.CursorColumn(); col != 13 {
		t.Fatalf("expected column 13, got %d", col)
	}
}

func TestTextFieldDeleteAndBoundaries(t *testing.T) {
	f := NewTextField(10)
	if f.Delete() || f.Backspace() || f.Left() || f.Right() {
		t.Fatalf("expected no-ops on an empty field")
	}
	f.SetText("abc")
	if f.Delete() {
		t.Fatalf("expected delete at end to be a no-op")
	}
	f.Left()
	f.Left()
	if !f.Delete() {
		t.Fatalf("expected delete to succeed")
	}
	if f.Text() != "ac" || f.Cursor() != 1 {
		t.Fatalf("expected 'ac' with cursor 1, got %q/%d", f.Text(), f.Cursor())
	}
	f.Left()
	if f.Backspace() {
		t.Fatalf("expected backspace at start to be a no-op")
	}
}

func TestTextFieldClearZeroFills(t *testing.T) {
	f := NewTextField(4)
	f.SetText(strings.Repeat("secret", 10))
	f.Clear()
	if f.Text() != "" || f.Cursor() != 0 || f.End() != 0 || f.VisibleStart() != 0 {
		t.Fatalf("expected reset offsets, got %d/%d/%d", f.Cursor(), f.End(), f.VisibleStart())
	}
	for i, b := range f.buf {
		if b != 0 {
			t.Fatalf("expected zeroed buffer, found %q at %d", b, i)
		}
	}
}
