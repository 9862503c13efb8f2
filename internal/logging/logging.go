// Package logging appends errors and JSON trace entries to a log file.
// Stdout carries the submission and the terminal carries the form, so
// nothing here writes to either.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "tui-greeter.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	// fallback receives failures to open or write the log file.
	fallback io.Writer = os.Stderr
)

// Error appends err to the log file. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	line := fmt.Sprintf("%s ERROR %v\n", time.Now().UTC().Format(time.RFC3339), err)
	mu.Lock()
	defer mu.Unlock()
	appendLocked(func(w io.Writer) error {
		_, werr := io.WriteString(w, line)
		return werr
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a JSON entry to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled {
		return
	}
	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}
	appendLocked(func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

// Configure sets the log destination. An empty path restores the default.
// Missing directories are created.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(fallback, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetFallback redirects failure reports, which go to stderr by default.
func SetFallback(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	mu.Lock()
	fallback = w
	mu.Unlock()
}

// appendLocked opens the log for append and hands it to write. The file
// may hold login names, so it is created owner-only. Callers hold mu.
func appendLocked(write func(io.Writer) error) {
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		fmt.Fprintf(fallback, "logging failed: %v\n", err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(fallback, "logging failed: %v\n", err)
	}
}
