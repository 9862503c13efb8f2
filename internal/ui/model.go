package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tui-greeter/internal/backend"
	"github.com/atomicstack/tui-greeter/internal/cellbuf"
	"github.com/atomicstack/tui-greeter/internal/data/dispatcher"
	"github.com/atomicstack/tui-greeter/internal/greeter"
	"github.com/atomicstack/tui-greeter/internal/theme"
)

const defaultFrameInterval = 20 * time.Millisecond

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// frameMsg advances the animation by one tick.
type frameMsg time.Time

// Model implements the Bubble Tea model for the greeter.
type Model struct {
	greeter *greeter.Greeter
	buf     *cellbuf.Buffer
	width   int
	height  int

	frameInterval time.Duration
	// manualFrames stops the model from scheduling its own ticks; the
	// harness delivers frames explicitly.
	manualFrames bool

	backend    *backend.Watcher
	dispatcher *dispatcher.Dispatcher

	caret      cursor.Model
	caretDirty bool

	outcome greeter.Action

	handlers map[reflect.Type]msgHandler
}

// NewModel wires the greeter core to a Bubble Tea model. watcher may be nil.
func NewModel(g *greeter.Greeter, watcher *backend.Watcher, frameInterval time.Duration) *Model {
	if frameInterval <= 0 {
		frameInterval = defaultFrameInterval
	}
	m := &Model{
		greeter:       g,
		buf:           cellbuf.New(0, 0),
		frameInterval: frameInterval,
		backend:       watcher,
		dispatcher:    dispatcher.New(g),
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Text != nil {
		c.TextStyle = styles.Text.Copy()
	}
	c.SetChar(" ")
	m.caret = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.scheduleFrame()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.caret.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateCaretModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Outcome reports how the form ended: ActionSubmit, ActionQuit, or
// ActionNone while it is still running.
func (m *Model) Outcome() greeter.Action {
	return m.outcome
}

// Greeter exposes the greeter core.
func (m *Model) Greeter() *greeter.Greeter {
	return m.greeter
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.caretDirty {
		m.caretDirty = false
		m.caret.Blink = false
		if cmd := m.caret.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width, m.height = size.Width, size.Height
	m.buf.Resize(size.Width, size.Height)
	// the next frameMsg draws; only the cursor position must be current
	m.greeter.Layout(m.buf.Size())
	return nil
}

func (m *Model) scheduleFrame() tea.Cmd {
	if m.manualFrames {
		return nil
	}
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) handleFrameMsg(msg tea.Msg) tea.Cmd {
	if m.outcome != greeter.ActionNone {
		return nil
	}
	m.greeter.Frame(m.buf)
	return m.scheduleFrame()
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	for _, k := range translateKey(keyMsg) {
		beforeX, beforeY := m.greeter.CursorPosition()
		action := m.greeter.HandleKey(k)
		if x, y := m.greeter.CursorPosition(); x != beforeX || y != beforeY {
			m.caretDirty = true
		}
		if action != greeter.ActionNone {
			m.outcome = action
			return tea.Quit
		}
	}
	return nil
}
