package state

// defaultTextCapacity is the initial backing size of a TextField.
const defaultTextCapacity = 32

// TextField is an editable ASCII buffer with a cursor and a horizontal
// viewport. All positions are byte offsets into buf:
//
//	0 <= visibleStart <= cursor <= end <= len(buf)
//	cursor - visibleStart <= visibleLen
type TextField struct {
	buf          []byte
	cursor       int
	end          int
	visibleStart int
	visibleLen   int

	// X and Y locate the first visible column on screen.
	X, Y int

	// onGrow, when set, is told the new capacity after every reallocation.
	onGrow func(capacity int)
}

// NewTextField returns an empty field whose viewport spans visibleLen columns.
func NewTextField(visibleLen int) *TextField {
	if visibleLen < 1 {
		visibleLen = 1
	}
	return &TextField{
		buf:        make([]byte, defaultTextCapacity),
		visibleLen: visibleLen,
	}
}

// OnGrow registers a callback invoked after the buffer is reallocated.
func (f *TextField) OnGrow(fn func(capacity int)) {
	f.onGrow = fn
}

// Text returns the field contents.
func (f *TextField) Text() string {
	return string(f.buf[:f.end])
}

// Len returns the number of bytes stored.
func (f *TextField) Len() int { return f.end }

// Cap returns the size of the backing buffer.
func (f *TextField) Cap() int { return len(f.buf) }

// Cursor returns the cursor offset.
func (f *TextField) Cursor() int { return f.cursor }

// End returns the offset one past the last byte.
func (f *TextField) End() int { return f.end }

// VisibleStart returns the offset of the first visible byte.
func (f *TextField) VisibleStart() int { return f.visibleStart }

// VisibleLen returns the viewport width.
func (f *TextField) VisibleLen() int { return f.visibleLen }

// Visible returns the slice of text inside the viewport.
func (f *TextField) Visible() string {
	stop := f.visibleStart + f.visibleLen
	if stop > f.end {
		stop = f.end
	}
	return string(f.buf[f.visibleStart:stop])
}

// CursorColumn returns the on-screen column of the cursor.
func (f *TextField) CursorColumn() int {
	return f.X + f.cursor - f.visibleStart
}

// Left moves the cursor one byte left, scrolling the viewport when the
// cursor leaves it.
func (f *TextField) Left() bool {
	if f.cursor == 0 {
		return false
	}
	f.cursor--
	if f.cursor < f.visibleStart {
		f.visibleStart--
	}
	return true
}

// Right moves the cursor one byte right, scrolling the viewport when the
// cursor leaves it.
func (f *TextField) Right() bool {
	if f.cursor >= f.end {
		return false
	}
	f.cursor++
	if f.cursor-f.visibleStart > f.visibleLen {
		f.visibleStart++
	}
	return true
}

// Write inserts ch at the cursor and advances past it. Only 7-bit bytes
// are accepted: login names and passwords on the console are ASCII.
func (f *TextField) Write(ch byte) bool {
	if ch == 0 || ch >= 0x80 {
		return false
	}
	if f.end+1 >= len(f.buf) {
		f.grow(2 * len(f.buf))
	}
	copy(f.buf[f.cursor+1:f.end+1], f.buf[f.cursor:f.end])
	f.end++
	f.buf[f.cursor] = ch
	f.Right()
	return true
}

// Delete removes the byte under the cursor.
func (f *TextField) Delete() bool {
	if f.cursor >= f.end {
		return false
	}
	copy(f.buf[f.cursor:f.end-1], f.buf[f.cursor+1:f.end])
	f.end--
	f.buf[f.end] = 0
	return true
}

// Backspace removes the byte before the cursor.
func (f *TextField) Backspace() bool {
	if f.cursor == 0 {
		return false
	}
	f.Left()
	return f.Delete()
}

// Clear zero-fills the whole backing buffer and resets every offset.
func (f *TextField) Clear() {
	wipe(f.buf)
	f.cursor = 0
	f.end = 0
	f.visibleStart = 0
}

// SetText replaces the contents with s, dropping bytes Write would reject.
func (f *TextField) SetText(s string) {
	f.Clear()
	for i := 0; i < len(s); i++ {
		f.Write(s[i])
	}
}

func (f *TextField) grow(capacity int) {
	if capacity <= len(f.buf) {
		return
	}
	next := make([]byte, capacity)
	copy(next, f.buf)
	wipe(f.buf)
	f.buf = next
	if f.onGrow != nil {
		f.onGrow(capacity)
	}
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
