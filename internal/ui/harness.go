package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the greeter model without a terminal. Frames are not
// self-scheduled and the caret does not blink; call Frame to advance the
// animation.
type Harness struct {
	model *Model
}

// NewHarness wraps model for scripted input.
func NewHarness(model *Model) *Harness {
	if model != nil {
		model.manualFrames = true
		model.caret.SetMode(cursor.CursorStatic)
	}
	return &Harness{model: model}
}

// Send routes a message through the model and runs the commands it returns
// until one yields no message.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	for msg != nil {
		mdl, cmd := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		if cmd == nil {
			return
		}
		msg = cmd()
	}
}

// Resize delivers a terminal size.
func (h *Harness) Resize(width, height int) {
	h.Send(tea.WindowSizeMsg{Width: width, Height: height})
}

// Type delivers s as one burst of runes, the way a paste arrives.
func (h *Harness) Type(s string) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// Press delivers a single special key.
func (h *Harness) Press(key tea.KeyType) {
	h.Send(tea.KeyMsg{Type: key})
}

// Frame delivers one animation tick.
func (h *Harness) Frame() {
	h.Send(frameMsg{})
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
