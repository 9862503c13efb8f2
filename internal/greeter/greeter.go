// Package greeter ties the animated background and the login form
// together. Frontends feed it Key events and ask it to draw frames into a
// cell buffer; it never touches the terminal itself.
package greeter

import (
	"github.com/atomicstack/tui-greeter/internal/animation"
	"github.com/atomicstack/tui-greeter/internal/cellbuf"
	"github.com/atomicstack/tui-greeter/internal/logging/events"
	"github.com/atomicstack/tui-greeter/internal/sessions"
	"github.com/atomicstack/tui-greeter/internal/ui/state"
)

// Focus names the form field receiving input.
type Focus int

const (
	FocusDesktop Focus = iota
	FocusLogin
	FocusPassword
)

const focusCount = 3

func (f Focus) String() string {
	switch f {
	case FocusDesktop:
		return "desktop"
	case FocusLogin:
		return "login"
	case FocusPassword:
		return "password"
	default:
		return "unknown"
	}
}

// Action is what the caller should do after a key was handled.
type Action int

const (
	ActionNone Action = iota
	ActionSubmit
	ActionQuit
)

// Labels are the user-facing strings drawn next to the fields.
type Labels struct {
	Login    string
	Password string
}

// Options configure a Greeter.
type Options struct {
	InputWidth int
	Hostname   string
	Labels     Labels
}

// Submission is handed to the session launcher. It never carries the
// password.
type Submission struct {
	User    string
	Session state.Entry
}

// Greeter owns the form state and the animation dispatcher.
type Greeter struct {
	anim     *animation.Dispatcher
	desktop  *state.Selector
	login    *state.TextField
	password *state.TextField

	focus      Focus
	hostname   string
	info       string
	labels     Labels
	inputWidth int

	layout layout
}

// New builds a greeter around desktop. anim may be nil for a static
// background.
func New(anim *animation.Dispatcher, desktop *state.Selector, opts Options) *Greeter {
	width := opts.InputWidth
	if width < minInputWidth {
		width = minInputWidth
	}
	labels := opts.Labels
	if labels.Login == "" {
		labels.Login = "login"
	}
	if labels.Password == "" {
		labels.Password = "password"
	}
	g := &Greeter{
		anim:       anim,
		desktop:    desktop,
		login:      state.NewTextField(width),
		password:   state.NewTextField(width),
		hostname:   opts.Hostname,
		labels:     labels,
		inputWidth: width,
	}
	g.login.OnGrow(func(capacity int) { events.Field.Grow(FocusLogin.String(), capacity) })
	g.password.OnGrow(func(capacity int) { events.Field.Grow(FocusPassword.String(), capacity) })
	g.focus = FocusLogin
	return g
}

// Desktop returns the session selector.
func (g *Greeter) Desktop() *state.Selector { return g.desktop }

// Login returns the login name field.
func (g *Greeter) Login() *state.TextField { return g.login }

// Password returns the password field.
func (g *Greeter) Password() *state.TextField { return g.password }

// Focus returns the focused field.
func (g *Greeter) Focus() Focus { return g.focus }

// SetFocus moves input to f.
func (g *Greeter) SetFocus(f Focus) {
	if f < 0 || f >= focusCount || f == g.focus {
		return
	}
	events.Focus.Change(g.focus.String(), f.String())
	g.focus = f
}

// Hostname returns the title drawn above the form.
func (g *Greeter) Hostname() string { return g.hostname }

// SetHostname replaces the title.
func (g *Greeter) SetHostname(name string) { g.hostname = name }

// Info returns the status line.
func (g *Greeter) Info() string { return g.info }

// SetInfo replaces the status line.
func (g *Greeter) SetInfo(msg string) { g.info = msg }

// Submission reports the current login name and selected session.
func (g *Greeter) Submission() Submission {
	return Submission{User: g.login.Text(), Session: g.desktop.Current()}
}

// HandleKey routes k to the focused field or acts on it at form level.
func (g *Greeter) HandleKey(k Key) Action {
	switch k.Kind {
	case KeyInterrupt:
		g.clearPassword()
		return ActionQuit
	case KeyUp:
		if g.focus > FocusDesktop {
			g.SetFocus(g.focus - 1)
		}
		return ActionNone
	case KeyDown:
		if g.focus < FocusPassword {
			g.SetFocus(g.focus + 1)
		}
		return ActionNone
	case KeyTab:
		g.SetFocus((g.focus + 1) % focusCount)
		return ActionNone
	case KeyBacktab:
		g.SetFocus((g.focus + focusCount - 1) % focusCount)
		return ActionNone
	case KeyEnter:
		if g.focus != FocusPassword {
			g.SetFocus(g.focus + 1)
			return ActionNone
		}
		g.clearPassword()
		return ActionSubmit
	}

	if g.focus == FocusDesktop {
		g.handleDesktopKey(k)
		return ActionNone
	}
	field := g.login
	if g.focus == FocusPassword {
		field = g.password
	}
	if handleTextKey(field, k) {
		events.Field.Edit(g.focus.String(), field.Len(), field.Cursor())
	}
	return ActionNone
}

func (g *Greeter) handleDesktopKey(k Key) {
	switch k.Kind {
	case KeyLeft:
		g.desktop.Prev()
	case KeyRight:
		g.desktop.Next()
	default:
		return
	}
	events.Session.Cursor(g.desktop.Cursor(), g.desktop.Current().Name)
}

func handleTextKey(field *state.TextField, k Key) bool {
	switch k.Kind {
	case KeyLeft:
		return field.Left()
	case KeyRight:
		return field.Right()
	case KeyDelete:
		return field.Delete()
	case KeyBackspace:
		return field.Backspace()
	case KeySpace:
		return field.Write(' ')
	case KeyRune:
		if !printable(k.Rune) {
			return false
		}
		return field.Write(byte(k.Rune))
	}
	return false
}

func (g *Greeter) clearPassword() {
	g.password.Clear()
	events.Field.Cleared(FocusPassword.String())
}

// Frame draws one animation tick followed by the form.
func (g *Greeter) Frame(buf *cellbuf.Buffer) {
	if buf == nil {
		return
	}
	if g.anim != nil && g.anim.Kind() != animation.KindNone {
		g.anim.Animate(buf)
	} else {
		buf.Fill(cellbuf.Blank)
	}
	g.Layout(buf.Size())
	g.draw(buf)
}

// CursorPosition returns where the terminal cursor belongs.
func (g *Greeter) CursorPosition() (x, y int) {
	switch g.focus {
	case FocusDesktop:
		return g.desktop.X + 2, g.desktop.Y
	case FocusLogin:
		return g.login.CursorColumn(), g.login.Y
	default:
		return g.password.CursorColumn(), g.password.Y
	}
}

// Teardown wipes the password and releases animation state.
func (g *Greeter) Teardown() {
	if g.password.Len() > 0 {
		g.clearPassword()
	}
	if g.anim != nil {
		g.anim.Teardown()
	}
}

// MergeSessions appends sessions found by a rescan without moving the
// selection.
func (g *Greeter) MergeSessions(found []sessions.Session) int {
	cursor := g.desktop.Cursor()
	added := sessions.AppendTo(g.desktop, found)
	g.desktop.SetCursor(cursor)
	return added
}
