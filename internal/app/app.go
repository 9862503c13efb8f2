package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tui-greeter/internal/animation"
	"github.com/atomicstack/tui-greeter/internal/backend"
	"github.com/atomicstack/tui-greeter/internal/data/dispatcher"
	"github.com/atomicstack/tui-greeter/internal/format/table"
	"github.com/atomicstack/tui-greeter/internal/greeter"
	"github.com/atomicstack/tui-greeter/internal/logging"
	"github.com/atomicstack/tui-greeter/internal/logging/events"
	"github.com/atomicstack/tui-greeter/internal/persist"
	"github.com/atomicstack/tui-greeter/internal/screen"
	"github.com/atomicstack/tui-greeter/internal/sessions"
	"github.com/atomicstack/tui-greeter/internal/ui"
	"github.com/atomicstack/tui-greeter/internal/ui/state"
)

// InfoLoadFailed is shown when the saved login and session exist but
// cannot be read.
const InfoLoadFailed = "unable to load saved login"

// Result is the outcome of one greeter run.
type Result struct {
	Action     greeter.Action
	Submission greeter.Submission
}

// Submitted reports whether the user submitted the form.
func (r Result) Submitted() bool {
	return r.Action == greeter.ActionSubmit
}

// Run builds the greeter from cfg and drives it with the configured
// renderer until the form is submitted or abandoned.
func Run(ctx context.Context, cfg Config) (Result, error) {
	g := NewGreeter(cfg)
	defer g.Teardown()

	var watcher *backend.Watcher
	if cfg.WatchInterval > 0 {
		watcher = backend.NewWatcher(backend.Config{
			Sources:  sessionSources(cfg),
			Options:  sessions.Options{WaylandSpecifier: cfg.WaylandSpecifier},
			Interval: cfg.WatchInterval,
		})
		defer watcher.Stop()
	}

	events.App.Renderer(cfg.Renderer)
	// the form owns the terminal until the renderer returns
	logging.SetFallback(io.Discard)
	action, err := runRenderer(ctx, cfg, g, watcher)
	logging.SetFallback(os.Stderr)
	if err != nil {
		return Result{Action: greeter.ActionQuit}, err
	}
	return finish(cfg, g, action), nil
}

// NewGreeter assembles the selector, animation and saved state.
func NewGreeter(cfg Config) *greeter.Greeter {
	desktop, unreadable := buildSelector(cfg)

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed>>1|1))
	}
	hostname, err := os.Hostname()
	if err != nil {
		logging.Error(fmt.Errorf("hostname: %w", err))
	}
	g := greeter.New(animation.NewDispatcher(cfg.Animation, rng), desktop, greeter.Options{
		InputWidth: cfg.InputWidth,
		Hostname:   hostname,
		Labels: greeter.Labels{
			Login:    cfg.Lang.Login,
			Password: cfg.Lang.Password,
		},
	})
	if unreadable {
		g.SetInfo(dispatcher.InfoSessionsFailed)
	}
	restore(cfg, g)
	return g
}

// BuildSelector creates the session list: the shell, the xinitrc entry
// when configured, then Wayland and X11 sessions found on disk.
func BuildSelector(cfg Config) *state.Selector {
	desktop, _ := buildSelector(cfg)
	return desktop
}

// buildSelector also reports whether a session directory that exists
// could not be read.
func buildSelector(cfg Config) (*state.Selector, bool) {
	desktop := state.NewSelector(cfg.Lang.Shell)
	if cfg.Xinitrc != "" {
		desktop.Append(cfg.Lang.Xinitrc, cfg.Xinitrc, state.KindXinitrc)
	}
	opts := sessions.Options{WaylandSpecifier: cfg.WaylandSpecifier}
	found, errs := sessions.CrawlAll(sessionSources(cfg), opts)
	unreadable := false
	for _, err := range errs {
		logging.Error(err)
		if !errors.Is(err, fs.ErrNotExist) {
			unreadable = true
		}
	}
	sessions.AppendTo(desktop, found)
	return desktop, unreadable
}

// SessionTable lists the selector entries BuildSelector would offer, one
// aligned row per entry.
func SessionTable(cfg Config) []string {
	entries := BuildSelector(cfg).Entries()
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, []string{"#", "NAME", "KIND", "COMMAND"})
	for i, e := range entries {
		rows = append(rows, []string{strconv.Itoa(i), e.Name, e.Kind.String(), e.Command})
	}
	return table.Format(rows, []table.Alignment{table.AlignRight})
}

func sessionSources(cfg Config) []sessions.Source {
	return []sessions.Source{
		{Dir: cfg.WaylandSessions, Kind: state.KindWayland},
		{Dir: cfg.XSessions, Kind: state.KindXorg},
	}
}

// restore applies the saved login and session, falling back to the
// configured default session when nothing was saved.
func restore(cfg Config, g *greeter.Greeter) {
	if cfg.Load && cfg.SaveFile != "" {
		st, err := persist.Load(cfg.SaveFile)
		switch {
		case err == nil:
			g.Desktop().SetCursor(st.Cursor)
			if st.Login != "" {
				g.Login().SetText(st.Login)
				g.SetFocus(greeter.FocusPassword)
			}
			return
		case !errors.Is(err, persist.ErrNoState):
			logging.Error(err)
			g.SetInfo(InfoLoadFailed)
		}
	}
	if cfg.DefaultSession != "" {
		idx := g.Desktop().Find(cfg.DefaultSession)
		events.Session.Default(cfg.DefaultSession, idx)
		g.Desktop().SetCursor(idx)
	}
}

func runRenderer(ctx context.Context, cfg Config, g *greeter.Greeter, watcher *backend.Watcher) (greeter.Action, error) {
	switch cfg.Renderer {
	case RendererTcell:
		s, err := screen.New(g, watcher, cfg.FrameInterval)
		if err != nil {
			return greeter.ActionNone, err
		}
		defer s.Close()
		action, err := s.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return action, nil
		}
		return action, err
	default:
		model := ui.NewModel(g, watcher, cfg.FrameInterval)
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithOutput(os.Stderr))
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return greeter.ActionQuit, nil
		}
		return model.Outcome(), err
	}
}

func finish(cfg Config, g *greeter.Greeter, action greeter.Action) Result {
	if action != greeter.ActionSubmit {
		events.App.Quit("abandoned")
		return Result{Action: greeter.ActionQuit}
	}
	sub := g.Submission()
	events.App.Submit(sub.User, sub.Session.Name)
	if cfg.Save && cfg.SaveFile != "" {
		st := persist.State{Login: sub.User, Cursor: g.Desktop().Cursor()}
		if err := persist.Save(cfg.SaveFile, st); err != nil {
			logging.Error(err)
		}
	}
	return Result{Action: action, Submission: sub}
}
