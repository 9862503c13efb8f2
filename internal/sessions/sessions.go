// Package sessions discovers login targets from freedesktop session
// directories (xsessions, wayland-sessions).
package sessions

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/atomicstack/tui-greeter/internal/logging/events"
	"github.com/atomicstack/tui-greeter/internal/ui/state"
)

const (
	desktopSection   = "Desktop Entry"
	waylandSpecifier = " (Wayland)"
)

// Session is one discovered login target.
type Session struct {
	Name    string
	Command string
	Kind    state.SessionKind
	Path    string
}

// Source is a directory to crawl and the kind of session it holds.
type Source struct {
	Dir  string
	Kind state.SessionKind
}

// Options control how discovered names are presented.
type Options struct {
	// WaylandSpecifier appends " (Wayland)" to Wayland session names that
	// do not already carry it.
	WaylandSpecifier bool
}

// Crawl reads every .desktop file in dir. Dotfiles, entries without Name
// or Exec, and hidden entries are skipped. Results are ordered by file name.
func Crawl(dir string, kind state.SessionKind, opts Options) ([]Session, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read session dir %s: %w", dir, err)
	}
	sessions := make([]Session, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, name)
		session, ok, err := readDesktopFile(path)
		if err != nil || !ok {
			continue
		}
		session.Kind = kind
		if kind == state.KindWayland && opts.WaylandSpecifier && !strings.Contains(session.Name, waylandSpecifier) {
			session.Name += waylandSpecifier
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// CrawlAll crawls each source in order. Directories that cannot be read are
// reported through the returned errors but do not stop the crawl.
func CrawlAll(sources []Source, opts Options) ([]Session, []error) {
	var (
		all  []Session
		errs []error
	)
	for _, src := range sources {
		if strings.TrimSpace(src.Dir) == "" {
			continue
		}
		found, err := Crawl(src.Dir, src.Kind, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		all = append(all, found...)
	}
	return all, errs
}

func readDesktopFile(path string) (Session, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return Session{}, false, err
	}
	defer f.Close()
	session, ok, err := parseDesktopEntry(f)
	session.Path = path
	return session, ok, err
}

// parseDesktopEntry extracts Name and Exec from the [Desktop Entry]
// section. Localised keys (Name[de]=...) are ignored.
func parseDesktopEntry(r io.Reader) (Session, bool, error) {
	var (
		session Session
		section string
		hidden  bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}
		if section != desktopSection {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "Name":
			if session.Name == "" {
				session.Name = value
			}
		case "Exec":
			if session.Command == "" {
				session.Command = value
			}
		case "Hidden", "NoDisplay":
			if strings.EqualFold(value, "true") {
				hidden = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Session{}, false, err
	}
	if hidden || session.Name == "" || session.Command == "" {
		return session, false, nil
	}
	return session, true, nil
}

// AppendTo adds every session sel does not already hold and returns how
// many were added. Like Selector.Append, the cursor ends on the last entry
// added.
func AppendTo(sel *state.Selector, found []Session) int {
	added := 0
	for _, s := range found {
		if sel.Contains(s.Name, s.Command) {
			continue
		}
		sel.Append(s.Name, s.Command, s.Kind)
		events.Session.Append(s.Name, s.Kind.String(), sel.Len())
		added++
	}
	return added
}
