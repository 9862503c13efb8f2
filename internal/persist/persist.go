// Package persist remembers the last login name and session selection
// between greeter runs.
package persist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/tui-greeter/internal/logging/events"
)

// ErrNoState is returned by Load when nothing has been saved yet.
var ErrNoState = errors.New("persist: no saved state")

// State is the remembered form content. The password is never stored.
type State struct {
	Login  string
	Cursor int
}

// Save writes the login name and session cursor to path, one per line.
func Save(path string, st State) error {
	if path == "" {
		return errors.New("persist: empty save path")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			events.Persist.Error("save", err)
			return fmt.Errorf("create save dir: %w", err)
		}
	}
	data := st.Login + "\n" + strconv.Itoa(st.Cursor) + "\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		events.Persist.Error("save", err)
		return fmt.Errorf("write save file: %w", err)
	}
	events.Persist.Save(path, st.Cursor)
	return nil
}

// Load reads state written by Save. A negative stored cursor is folded to
// its absolute value; a missing or malformed cursor line yields 0.
func Load(path string) (State, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return State{}, ErrNoState
		}
		events.Persist.Error("load", err)
		return State{}, fmt.Errorf("open save file: %w", err)
	}
	defer f.Close()

	var st State
	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		st.Login = strings.TrimRight(scanner.Text(), "\r")
	}
	if scanner.Scan() {
		if n, err := strconv.Atoi(strings.TrimSpace(scanner.Text())); err == nil {
			if n < 0 {
				n = -n
			}
			st.Cursor = n
		}
	}
	if err := scanner.Err(); err != nil {
		events.Persist.Error("load", err)
		return State{}, fmt.Errorf("read save file: %w", err)
	}
	events.Persist.Load(path, st.Cursor)
	return st, nil
}
