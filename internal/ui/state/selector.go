package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SessionKind categorises a login target.
type SessionKind int

const (
	KindShell SessionKind = iota
	KindXinitrc
	KindXorg
	KindWayland
)

func (k SessionKind) String() string {
	switch k {
	case KindShell:
		return "shell"
	case KindXinitrc:
		return "xinitrc"
	case KindXorg:
		return "xorg"
	case KindWayland:
		return "wayland"
	default:
		return "unknown"
	}
}

// Entry is one selectable session.
type Entry struct {
	Name    string
	Key     string
	Command string
	Kind    SessionKind
}

// SessionKey normalises a display name to its first whitespace-delimited
// token in lower case: "GNOME Classic" becomes "gnome".
func SessionKey(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}

// Selector is an append-only, cyclic list of sessions. It always holds at
// least the shell entry it was created with.
type Selector struct {
	entries []Entry
	cursor  int

	// X and Y locate the field on screen.
	X, Y int
}

// NewSelector creates a selector holding the shell fallback entry.
func NewSelector(shellName string) *Selector {
	s := &Selector{}
	s.Append(shellName, "", KindShell)
	return s
}

// Append adds an entry and moves the cursor onto it.
func (s *Selector) Append(name, command string, kind SessionKind) {
	s.entries = append(s.entries, Entry{
		Name:    name,
		Key:     SessionKey(name),
		Command: command,
		Kind:    kind,
	})
	s.cursor = len(s.entries) - 1
}

// Next moves the cursor forward, wrapping to the first entry.
func (s *Selector) Next() {
	s.cursor++
	if s.cursor >= len(s.entries) {
		s.cursor = 0
	}
}

// Prev moves the cursor back, wrapping to the last entry.
func (s *Selector) Prev() {
	if s.cursor == 0 {
		s.cursor = len(s.entries) - 1
		return
	}
	s.cursor--
}

// Len returns the number of entries.
func (s *Selector) Len() int { return len(s.entries) }

// Cursor returns the selected index.
func (s *Selector) Cursor() int { return s.cursor }

// Current returns the selected entry.
func (s *Selector) Current() Entry {
	return s.entries[s.cursor]
}

// Entries returns a copy of all entries in order.
func (s *Selector) Entries() []Entry {
	dup := make([]Entry, len(s.entries))
	copy(dup, s.entries)
	return dup
}

// SetCursor selects index i when it is in range.
func (s *Selector) SetCursor(i int) bool {
	if i < 0 || i >= len(s.entries) {
		return false
	}
	s.cursor = i
	return true
}

// Contains reports whether an entry with the same name and command exists.
func (s *Selector) Contains(name, command string) bool {
	for _, e := range s.entries {
		if e.Name == name && e.Command == command {
			return true
		}
	}
	return false
}

// Find returns the index of the entry best matching query, or -1. Exact
// key matches win, then key prefixes, then the closest fuzzy match over
// the display names.
func (s *Selector) Find(query string) int {
	key := SessionKey(query)
	if key == "" {
		return -1
	}
	for i, e := range s.entries {
		if e.Key == key {
			return i
		}
	}
	for i, e := range s.entries {
		if strings.HasPrefix(e.Key, key) {
			return i
		}
	}
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(query), names)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
