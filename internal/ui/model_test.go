package ui

import (
	"math/rand/v2"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tui-greeter/internal/animation"
	"github.com/atomicstack/tui-greeter/internal/backend"
	"github.com/atomicstack/tui-greeter/internal/cellbuf"
	"github.com/atomicstack/tui-greeter/internal/greeter"
	"github.com/atomicstack/tui-greeter/internal/sessions"
	"github.com/atomicstack/tui-greeter/internal/ui/state"
)

func newTestHarness(t *testing.T) *Harness {
	t.Helper()
	desktop := state.NewSelector("shell")
	desktop.Append("i3", "i3", state.KindXorg)
	g := greeter.New(nil, desktop, greeter.Options{InputWidth: 20, Hostname: "box"})
	h := NewHarness(NewModel(g, nil, 0))
	h.Resize(80, 24)
	return h
}

func TestNewModelDefaultsFrameInterval(t *testing.T) {
	m := NewModel(greeter.New(nil, state.NewSelector("shell"), greeter.Options{}), nil, 0)
	if m.frameInterval != defaultFrameInterval {
		t.Fatalf("expected default frame interval, got %v", m.frameInterval)
	}
}

func TestHandlerForKnownMessages(t *testing.T) {
	m := NewModel(greeter.New(nil, state.NewSelector("shell"), greeter.Options{}), nil, 0)
	for _, msg := range []tea.Msg{tea.KeyMsg{}, tea.WindowSizeMsg{}, frameMsg{}, backendEventMsg{}, backendDoneMsg{}} {
		if m.handlerFor(msg) == nil {
			t.Fatalf("expected handler for %T", msg)
		}
	}
	if m.handlerFor(struct{}{}) != nil {
		t.Fatalf("expected no handler for unknown message")
	}
}

func TestWindowSizeResizesBuffer(t *testing.T) {
	h := newTestHarness(t)
	if w, ht := h.Model().buf.Width(), h.Model().buf.Height(); w != 80 || ht != 24 {
		t.Fatalf("expected 80x24 buffer, got %dx%d", w, ht)
	}
	h.Resize(60, 20)
	if w, ht := h.Model().buf.Width(), h.Model().buf.Height(); w != 60 || ht != 20 {
		t.Fatalf("expected 60x20 buffer, got %dx%d", w, ht)
	}
}

func TestTypingFillsLoginAndMasksPassword(t *testing.T) {
	h := newTestHarness(t)
	h.Type("alice")
	h.Press(tea.KeyEnter)
	h.Type("pa ss")
	h.Frame()

	g := h.Model().Greeter()
	if g.Login().Text() != "alice" {
		t.Fatalf("expected login 'alice', got %q", g.Login().Text())
	}
	if g.Password().Text() != "pa ss" {
		t.Fatalf("expected password with space, got %q", g.Password().Text())
	}
	view := h.View()
	if !strings.Contains(view, "alice") {
		t.Fatalf("expected login in view, got\n%s", view)
	}
	if strings.Contains(view, "pa ss") {
		t.Fatalf("expected password to be masked, got\n%s", view)
	}
	if !strings.Contains(view, "*****") {
		t.Fatalf("expected mask in view, got\n%s", view)
	}
}

func TestEnterOnPasswordSubmits(t *testing.T) {
	h := newTestHarness(t)
	h.Type("bob")
	h.Press(tea.KeyTab)
	h.Type("secret")
	h.Press(tea.KeyEnter)

	m := h.Model()
	if m.Outcome() != greeter.ActionSubmit {
		t.Fatalf("expected submit outcome, got %v", m.Outcome())
	}
	if m.Greeter().Password().Len() != 0 {
		t.Fatalf("expected password cleared on submit")
	}
	if m.View() != "" {
		t.Fatalf("expected empty view after submit")
	}
	sub := m.Greeter().Submission()
	if sub.User != "bob" || sub.Session.Name != "i3" {
		t.Fatalf("unexpected submission %#v", sub)
	}
}

func TestCtrlCQuits(t *testing.T) {
	h := newTestHarness(t)
	h.Press(tea.KeyCtrlC)
	if h.Model().Outcome() != greeter.ActionQuit {
		t.Fatalf("expected quit outcome, got %v", h.Model().Outcome())
	}
}

func TestSelectorArrowKeys(t *testing.T) {
	h := newTestHarness(t)
	h.Press(tea.KeyUp)
	h.Press(tea.KeyRight)
	if name := h.Model().Greeter().Desktop().Current().Name; name != "shell" {
		t.Fatalf("expected right to wrap to shell, got %q", name)
	}
	h.Press(tea.KeyLeft)
	if name := h.Model().Greeter().Desktop().Current().Name; name != "i3" {
		t.Fatalf("expected left to return to i3, got %q", name)
	}
}

func TestBackendEventsMergeSessionsAndHostname(t *testing.T) {
	h := newTestHarness(t)
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindSessions, Data: []sessions.Session{
		{Name: "i3", Command: "i3", Kind: state.KindXorg},
		{Name: "Sway", Command: "sway", Kind: state.KindWayland},
	}}})
	h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindHostname, Data: "workstation"}})
	h.Frame()

	g := h.Model().Greeter()
	if g.Desktop().Len() != 3 {
		t.Fatalf("expected one new session merged, got %d entries", g.Desktop().Len())
	}
	if g.Desktop().Current().Name != "i3" {
		t.Fatalf("expected selection to stay on i3, got %q", g.Desktop().Current().Name)
	}
	if !strings.Contains(h.View(), "workstation") {
		t.Fatalf("expected hostname in view")
	}
}

func TestBackendDoneClearsWatcher(t *testing.T) {
	h := newTestHarness(t)
	h.Send(backendDoneMsg{})
	if h.Model().backend != nil {
		t.Fatalf("expected watcher to be cleared")
	}
}

func TestResizeDoesNotAdvanceAnimation(t *testing.T) {
	newDoomGreeter := func() *greeter.Greeter {
		d := animation.NewDispatcher(animation.KindDoom, rand.New(rand.NewPCG(7, 9)))
		return greeter.New(d, state.NewSelector("shell"), greeter.Options{InputWidth: 20})
	}

	h := NewHarness(NewModel(newDoomGreeter(), nil, 0))
	h.Resize(40, 20)
	h.Resize(40, 20)
	h.Frame()

	want := cellbuf.New(40, 20)
	newDoomGreeter().Frame(want)
	if got := h.Model().buf.String(); got != want.String() {
		t.Fatalf("expected exactly one animation tick after resizes\nexpected:\n%s\ngot:\n%s", want.String(), got)
	}
	if x, y := h.Model().Greeter().CursorPosition(); x == 0 && y == 0 {
		t.Fatalf("expected layout applied on resize")
	}
}
