package app

import (
	"time"

	"github.com/atomicstack/tui-greeter/internal/animation"
)

const (
	RendererBubbletea = "bubbletea"
	RendererTcell     = "tcell"
)

// Config describes user-provided application options.
type Config struct {
	Animation     animation.Kind
	Renderer      string
	FrameInterval time.Duration
	// Seed feeds the animation PRNG; 0 seeds from the clock.
	Seed       uint64
	InputWidth int

	Save     bool
	Load     bool
	SaveFile string

	XSessions        string
	WaylandSessions  string
	WaylandSpecifier bool
	Xinitrc          string
	DefaultSession   string
	WatchInterval    time.Duration

	Lang Lang
}

// Lang holds the user-facing strings.
type Lang struct {
	Login    string
	Password string
	Shell    string
	Xinitrc  string
}
