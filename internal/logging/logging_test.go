package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logs", "greeter.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
		SetFallback(os.Stderr)
	})
	return path
}

func TestErrorAppendsLine(t *testing.T) {
	path := useTempLog(t)
	Error(errors.New("first"))
	Error(nil)
	Error(errors.New("second"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	if !strings.HasSuffix(lines[0], "ERROR first") || !strings.HasSuffix(lines[1], "ERROR second") {
		t.Fatalf("unexpected log lines %q", lines)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected mode 0600, got %o", perm)
	}
}

func TestTraceOnlyWhenEnabled(t *testing.T) {
	path := useTempLog(t)
	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file while tracing is off, got %v", err)
	}

	SetTraceEnabled(true)
	if !TraceEnabled() {
		t.Fatalf("expected tracing enabled")
	}
	Trace("focus.change", map[string]interface{}{"to": "password"})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("decode trace: %v", err)
	}
	if entry.Event != "focus.change" || entry.Payload["to"] != "password" {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestFailuresGoToFallback(t *testing.T) {
	useTempLog(t)
	var buf bytes.Buffer
	SetFallback(&buf)
	Configure(t.TempDir())
	Error(errors.New("boom"))
	if !strings.Contains(buf.String(), "logging failed") {
		t.Fatalf("expected failure on fallback writer, got %q", buf.String())
	}
}
