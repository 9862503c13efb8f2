package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/tui-greeter/internal/backend"
	"github.com/atomicstack/tui-greeter/internal/greeter"
	"github.com/atomicstack/tui-greeter/internal/sessions"
	"github.com/atomicstack/tui-greeter/internal/ui/state"
)

func newGreeter() *greeter.Greeter {
	desktop := state.NewSelector("shell")
	desktop.Append("i3", "i3", state.KindXorg)
	return greeter.New(nil, desktop, greeter.Options{InputWidth: 20, Hostname: "box"})
}

func TestHandleSessionsMergesNewEntries(t *testing.T) {
	g := newGreeter()
	d := New(g)
	res := d.Handle(backend.Event{Kind: backend.KindSessions, Data: []sessions.Session{
		{Name: "i3", Command: "i3", Kind: state.KindXorg},
		{Name: "Sway", Command: "sway", Kind: state.KindWayland},
	}})
	if res.SessionsAdded != 1 || !res.Changed() {
		t.Fatalf("expected one added session, got %#v", res)
	}
	if g.Desktop().Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", g.Desktop().Len())
	}
	if g.Desktop().Current().Name != "i3" {
		t.Fatalf("expected selection kept on i3, got %q", g.Desktop().Current().Name)
	}
}

func TestHandleHostname(t *testing.T) {
	g := newGreeter()
	d := New(g)
	if res := d.Handle(backend.Event{Kind: backend.KindHostname, Data: "box"}); res.Changed() {
		t.Fatalf("expected unchanged hostname to be a no-op, got %#v", res)
	}
	if res := d.Handle(backend.Event{Kind: backend.KindHostname, Data: "node"}); !res.HostnameUpdated {
		t.Fatalf("expected hostname update, got %#v", res)
	}
	if g.Hostname() != "node" {
		t.Fatalf("expected hostname node, got %q", g.Hostname())
	}
}

func TestHandleErrorShowsInfoUntilRecovery(t *testing.T) {
	g := newGreeter()
	d := New(g)
	evt := backend.Event{Kind: backend.KindSessions, Err: errors.New("boom")}
	if res := d.Handle(evt); !res.InfoUpdated || res.SessionsAdded != 0 {
		t.Fatalf("expected only the info line to change, got %#v", res)
	}
	if g.Info() != InfoSessionsFailed {
		t.Fatalf("expected info %q, got %q", InfoSessionsFailed, g.Info())
	}
	if res := d.Handle(evt); res.Changed() {
		t.Fatalf("expected repeated error to be a no-op, got %#v", res)
	}
	if d.lastErr != "boom" {
		t.Fatalf("expected last error recorded, got %q", d.lastErr)
	}
	if g.Desktop().Len() != 2 {
		t.Fatalf("expected entries untouched, got %d", g.Desktop().Len())
	}

	res := d.Handle(backend.Event{Kind: backend.KindSessions, Data: []sessions.Session{}})
	if !res.InfoUpdated || g.Info() != "" {
		t.Fatalf("expected info cleared on recovery, got %#v / %q", res, g.Info())
	}
}

func TestHandlePartialCrawlMergesAndReports(t *testing.T) {
	g := newGreeter()
	d := New(g)
	res := d.Handle(backend.Event{
		Kind: backend.KindSessions,
		Data: []sessions.Session{{Name: "Sway", Command: "sway", Kind: state.KindWayland}},
		Err:  errors.New("read session dir /x: permission denied"),
	})
	if res.SessionsAdded != 1 || !res.InfoUpdated {
		t.Fatalf("expected merge and info update, got %#v", res)
	}
	if g.Info() != InfoSessionsFailed {
		t.Fatalf("expected sessions info, got %q", g.Info())
	}
}

func TestHandleKeepsForeignInfo(t *testing.T) {
	g := newGreeter()
	d := New(g)
	g.SetInfo("saved state unreadable")
	if res := d.Handle(backend.Event{Kind: backend.KindHostname, Data: "box"}); res.InfoUpdated {
		t.Fatalf("expected info untouched, got %#v", res)
	}
	if g.Info() != "saved state unreadable" {
		t.Fatalf("expected foreign info kept, got %q", g.Info())
	}

	d.Handle(backend.Event{Kind: backend.KindHostname, Err: errors.New("no name")})
	if g.Info() != InfoHostnameFailed {
		t.Fatalf("expected hostname info, got %q", g.Info())
	}
	g.SetInfo("something else")
	d.Handle(backend.Event{Kind: backend.KindHostname, Data: "box"})
	if g.Info() != "something else" {
		t.Fatalf("expected newer foreign info kept, got %q", g.Info())
	}
}
