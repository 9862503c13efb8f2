package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tui-greeter/internal/animation"
	"github.com/atomicstack/tui-greeter/internal/app"
)

// ErrUnknownRenderer is returned when the renderer is not one of the
// supported frontends.
var ErrUnknownRenderer = errors.New("unknown renderer")

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the config file that was consulted, whether or not it existed.
	File string
	// ListSessions prints the discovered sessions and exits.
	ListSessions bool
	Flags        map[string]string
	Args         []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig           = "TUI_GREETER_CONFIG"
	envAnimation        = "TUI_GREETER_ANIMATION"
	envRenderer         = "TUI_GREETER_RENDERER"
	envFrameMS          = "TUI_GREETER_FRAME_MS"
	envSeed             = "TUI_GREETER_SEED"
	envInputWidth       = "TUI_GREETER_INPUT_WIDTH"
	envSave             = "TUI_GREETER_SAVE"
	envLoad             = "TUI_GREETER_LOAD"
	envSaveFile         = "TUI_GREETER_SAVE_FILE"
	envXSessions        = "TUI_GREETER_XSESSIONS"
	envWaylandSessions  = "TUI_GREETER_WAYLAND_SESSIONS"
	envWaylandSpecifier = "TUI_GREETER_WAYLAND_SPECIFIER"
	envXinitrc          = "TUI_GREETER_XINITRC"
	envDefaultSession   = "TUI_GREETER_DEFAULT_SESSION"
	envWatchMS          = "TUI_GREETER_WATCH_MS"
	envTrace            = "TUI_GREETER_TRACE"
	envLogFile          = "TUI_GREETER_LOG_FILE"
)

// defaults holds the value of every setting before environment variables
// and flags are applied.
type defaults struct {
	animation        string
	renderer         string
	frameMS          int
	seed             int64
	inputWidth       int
	save             bool
	load             bool
	saveFile         string
	xsessions        string
	waylandSessions  string
	waylandSpecifier bool
	xinitrc          string
	defaultSession   string
	watchMS          int
	logFile          string
	trace            bool
	langLogin        string
	langPassword     string
	langShell        string
	langXinitrc      string
}

func builtinDefaults() defaults {
	return defaults{
		animation:       "none",
		renderer:        app.RendererBubbletea,
		frameMS:         20,
		inputWidth:      34,
		save:            true,
		load:            true,
		saveFile:        "/var/cache/tui-greeter/save",
		xsessions:       "/usr/share/xsessions",
		waylandSessions: "/usr/share/wayland-sessions",
		xinitrc:         "~/.xinitrc",
		watchMS:         2000,
		langLogin:       "login",
		langPassword:    "password",
		langShell:       "shell",
		langXinitrc:     "xinitrc",
	}
}

// Load parses configuration from the config file, environment variables
// and CLI arguments.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Later sources
// win: built-in defaults, the KDL file, the environment, then flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := configPathFromArgs(args)
	if path == "" {
		path = envOrDefault(env, envConfig, DefaultConfigPath)
	}
	d := builtinDefaults()
	fc, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	fc.apply(&d)

	fs := flag.NewFlagSet("tui-greeter", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	fs.String("config", path, "path to the KDL config file")
	anim := fs.String("animation", envOrDefault(env, envAnimation, d.animation), "background animation (none, random, doom, matrix, blizzard)")
	renderer := fs.String("renderer", envOrDefault(env, envRenderer, d.renderer), "terminal frontend (bubbletea, tcell)")
	frameMS := fs.Int("frame-ms", envOrInt(env, envFrameMS, d.frameMS), "milliseconds between animation frames")
	seed := fs.Int64("seed", envOrInt64(env, envSeed, d.seed), "animation PRNG seed (0 seeds from the clock)")
	inputWidth := fs.Int("input-width", envOrInt(env, envInputWidth, d.inputWidth), "visible width of the form fields")
	save := fs.Bool("save", envOrBool(env, envSave, d.save), "remember the login and session on submit")
	load := fs.Bool("load", envOrBool(env, envLoad, d.load), "restore the remembered login and session")
	saveFile := fs.String("save-file", envOrDefault(env, envSaveFile, d.saveFile), "path of the remembered state")
	xsessions := fs.String("xsessions", envOrDefault(env, envXSessions, d.xsessions), "directory of X11 session .desktop files")
	waylandSessions := fs.String("wayland-sessions", envOrDefault(env, envWaylandSessions, d.waylandSessions), "directory of Wayland session .desktop files")
	waylandSpecifier := fs.Bool("wayland-specifier", envOrBool(env, envWaylandSpecifier, d.waylandSpecifier), "append \" (Wayland)\" to Wayland session names")
	xinitrc := fs.String("xinitrc", envOrDefault(env, envXinitrc, d.xinitrc), "xinitrc command offered as a session (empty hides it)")
	defaultSession := fs.String("default-session", envOrDefault(env, envDefaultSession, d.defaultSession), "session selected at startup when nothing was loaded")
	watchMS := fs.Int("watch-ms", envOrInt(env, envWatchMS, d.watchMS), "milliseconds between session directory rescans (0 disables)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, d.trace), "enable verbose JSON trace logging")
	listSessions := fs.Bool("list-sessions", false, "print the discovered sessions and exit")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, d.logFile), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	kind, err := animation.ParseKind(*anim)
	if err != nil {
		return Config{}, err
	}
	if *frameMS <= 0 {
		return Config{}, fmt.Errorf("frame-ms must be > 0 (got %d)", *frameMS)
	}
	if *watchMS < 0 {
		return Config{}, fmt.Errorf("watch-ms must be >= 0 (got %d)", *watchMS)
	}

	cfg := Config{
		App: app.Config{
			Animation:        kind,
			Renderer:         strings.ToLower(strings.TrimSpace(*renderer)),
			FrameInterval:    time.Duration(*frameMS) * time.Millisecond,
			Seed:             uint64(*seed),
			InputWidth:       *inputWidth,
			Save:             *save,
			Load:             *load,
			SaveFile:         *saveFile,
			XSessions:        *xsessions,
			WaylandSessions:  *waylandSessions,
			WaylandSpecifier: *waylandSpecifier,
			Xinitrc:          *xinitrc,
			DefaultSession:   *defaultSession,
			WatchInterval:    time.Duration(*watchMS) * time.Millisecond,
			Lang: app.Lang{
				Login:    d.langLogin,
				Password: d.langPassword,
				Shell:    d.langShell,
				Xinitrc:  d.langXinitrc,
			},
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File:         path,
		ListSessions: *listSessions,
		Flags: map[string]string{
			"animation":         *anim,
			"renderer":          *renderer,
			"frame-ms":          strconv.Itoa(*frameMS),
			"seed":              strconv.FormatInt(*seed, 10),
			"input-width":       strconv.Itoa(*inputWidth),
			"save":              strconv.FormatBool(*save),
			"load":              strconv.FormatBool(*load),
			"save-file":         *saveFile,
			"xsessions":         *xsessions,
			"wayland-sessions":  *waylandSessions,
			"wayland-specifier": strconv.FormatBool(*waylandSpecifier),
			"xinitrc":           *xinitrc,
			"default-session":   *defaultSession,
			"watch-ms":          strconv.Itoa(*watchMS),
			"trace":             strconv.FormatBool(*trace),
			"logFile":           *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configPathFromArgs finds --config ahead of the main parse so the file can
// supply flag defaults.
func configPathFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrInt64(env map[string]string, key string, fallback int64) int64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	switch cfg.App.Renderer {
	case app.RendererBubbletea, app.RendererTcell:
	default:
		return fmt.Errorf("%w %q", ErrUnknownRenderer, cfg.App.Renderer)
	}
	if cfg.App.InputWidth < 8 {
		return fmt.Errorf("input-width must be >= 8 (got %d)", cfg.App.InputWidth)
	}
	if cfg.App.Save && strings.TrimSpace(cfg.App.SaveFile) == "" {
		return errors.New("save-file must be set when save is enabled")
	}
	return nil
}
