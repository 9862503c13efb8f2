// Package screen is the tcell frontend. It draws the greeter's cell buffer
// straight onto a tcell.Screen, for terminals where a full Bubble Tea
// program is unwanted (bare consoles, serial lines).
package screen

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/atomicstack/tui-greeter/internal/backend"
	"github.com/atomicstack/tui-greeter/internal/cellbuf"
	"github.com/atomicstack/tui-greeter/internal/data/dispatcher"
	"github.com/atomicstack/tui-greeter/internal/greeter"
)

const defaultFrameInterval = 20 * time.Millisecond

// Screen runs the greeter against a tcell screen.
type Screen struct {
	screen   tcell.Screen
	greeter  *greeter.Greeter
	buf      *cellbuf.Buffer
	watcher  *backend.Watcher
	interval time.Duration
	dispatch *dispatcher.Dispatcher

	events    chan tcell.Event
	stop      chan struct{}
	pollDone  chan struct{}
	closeOnce sync.Once
}

// New opens the controlling terminal. watcher may be nil.
func New(g *greeter.Greeter, watcher *backend.Watcher, interval time.Duration) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	return NewWithScreen(screen, g, watcher, interval)
}

// NewWithScreen initialises an existing tcell screen, such as a simulation
// screen in tests.
func NewWithScreen(screen tcell.Screen, g *greeter.Greeter, watcher *backend.Watcher, interval time.Duration) (*Screen, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	s := &Screen{
		screen:   screen,
		greeter:  g,
		buf:      cellbuf.New(0, 0),
		watcher:  watcher,
		dispatch: dispatcher.New(g),
		interval: interval,
		events:   make(chan tcell.Event, 10),
		stop:     make(chan struct{}),
		pollDone: make(chan struct{}),
	}
	s.resize()
	return s, nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.screen.Fini()

		// PollEvent returns nil once the screen is finalised
		select {
		case <-s.pollDone:
		case <-time.After(100 * time.Millisecond):
		}
	})
}

// Run draws frames and handles input until the form is submitted or
// abandoned, or ctx is cancelled.
func (s *Screen) Run(ctx context.Context) (greeter.Action, error) {
	s.screen.Clear()
	go s.pollEvents()

	var watch <-chan backend.Event
	if s.watcher != nil {
		watch = s.watcher.Events()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.render()
	for {
		select {
		case <-ctx.Done():
			s.greeter.HandleKey(greeter.Key{Kind: greeter.KeyInterrupt})
			return greeter.ActionQuit, ctx.Err()
		case ev := <-s.events:
			if action := s.handleEvent(ev); action != greeter.ActionNone {
				return action, nil
			}
		case evt, ok := <-watch:
			if !ok {
				watch = nil
				continue
			}
			if s.applyBackendEvent(evt).Changed() {
				s.render()
			}
		case <-ticker.C:
			s.render()
		}
	}
}

// pollEvents reads events until the screen is finalized.
func (s *Screen) pollEvents() {
	defer close(s.pollDone)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.stop:
			return
		}
	}
}

func (s *Screen) handleEvent(ev tcell.Event) greeter.Action {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.resize()
		s.screen.Sync()
	case *tcell.EventKey:
		k, ok := translateKey(ev)
		if !ok {
			return greeter.ActionNone
		}
		return s.greeter.HandleKey(k)
	}
	return greeter.ActionNone
}

func (s *Screen) applyBackendEvent(evt backend.Event) dispatcher.Result {
	return s.dispatch.Handle(evt)
}

func (s *Screen) resize() {
	w, h := s.screen.Size()
	s.buf.Resize(w, h)
}

// render draws one frame and flushes it to the terminal.
func (s *Screen) render() {
	s.greeter.Frame(s.buf)
	blit(s.screen, s.buf)
	x, y := s.greeter.CursorPosition()
	s.screen.ShowCursor(x, y)
	s.screen.Show()
}

// blit copies buf onto screen. Wide-rune continuation cells are skipped;
// tcell fills them itself.
func blit(screen tcell.Screen, buf *cellbuf.Buffer) {
	for y := 0; y < buf.Height(); y++ {
		for x, c := range buf.Row(y) {
			if c.Ch == 0 {
				continue
			}
			screen.SetContent(x, y, c.Ch, nil, styleFor(c))
		}
	}
}

func styleFor(c cellbuf.Cell) tcell.Style {
	style := tcell.StyleDefault.Foreground(color(c.Fg)).Background(color(c.Bg))
	if c.Attr&cellbuf.AttrBold != 0 {
		style = style.Bold(true)
	}
	if c.Attr&cellbuf.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	return style
}

func color(c cellbuf.Color) tcell.Color {
	idx, ok := c.ANSI()
	if !ok {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(idx)
}

func translateKey(ev *tcell.EventKey) (greeter.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return greeter.Key{Kind: greeter.KeyLeft}, true
	case tcell.KeyRight:
		return greeter.Key{Kind: greeter.KeyRight}, true
	case tcell.KeyUp:
		return greeter.Key{Kind: greeter.KeyUp}, true
	case tcell.KeyDown:
		return greeter.Key{Kind: greeter.KeyDown}, true
	case tcell.KeyDelete:
		return greeter.Key{Kind: greeter.KeyDelete}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return greeter.Key{Kind: greeter.KeyBackspace}, true
	case tcell.KeyEnter:
		return greeter.Key{Kind: greeter.KeyEnter}, true
	case tcell.KeyTab:
		return greeter.Key{Kind: greeter.KeyTab}, true
	case tcell.KeyBacktab:
		return greeter.Key{Kind: greeter.KeyBacktab}, true
	case tcell.KeyCtrlC:
		return greeter.Key{Kind: greeter.KeyInterrupt}, true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return greeter.Key{}, false
		}
		if ev.Rune() == ' ' {
			return greeter.Key{Kind: greeter.KeySpace}, true
		}
		return greeter.RuneKey(ev.Rune()), true
	}
	return greeter.Key{}, false
}
