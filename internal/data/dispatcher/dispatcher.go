// Package dispatcher applies backend watcher events to a greeter. Both
// frontends route watcher output through it.
package dispatcher

import (
	"github.com/atomicstack/tui-greeter/internal/backend"
	"github.com/atomicstack/tui-greeter/internal/greeter"
	"github.com/atomicstack/tui-greeter/internal/logging"
	"github.com/atomicstack/tui-greeter/internal/sessions"
)

// Messages shown on the info line while a poll keeps failing.
const (
	InfoSessionsFailed = "unable to read session directories"
	InfoHostnameFailed = "unable to read hostname"
)

type Result struct {
	SessionsAdded   int
	HostnameUpdated bool
	InfoUpdated     bool
}

// Changed reports whether the event altered anything on screen.
func (r Result) Changed() bool {
	return r.SessionsAdded > 0 || r.HostnameUpdated || r.InfoUpdated
}

type Dispatcher struct {
	greeter *greeter.Greeter
	lastErr string
	// failing tracks which poll kinds last reported an error.
	failing map[backend.Kind]bool
}

func New(g *greeter.Greeter) *Dispatcher {
	return &Dispatcher{greeter: g, failing: make(map[backend.Kind]bool)}
}

// Handle merges evt into the greeter. Repeated identical errors are logged
// once; while any poll is failing the info line says so, and it is cleared
// once every poll recovers.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		if msg := evt.Err.Error(); msg != d.lastErr {
			d.lastErr = msg
			logging.Error(evt.Err)
		}
		d.failing[evt.Kind] = true
	} else {
		delete(d.failing, evt.Kind)
		if len(d.failing) == 0 {
			d.lastErr = ""
		}
	}
	res.InfoUpdated = d.updateInfo()

	switch evt.Kind {
	case backend.KindSessions:
		if found, ok := evt.Data.([]sessions.Session); ok {
			res.SessionsAdded = d.greeter.MergeSessions(found)
		}
	case backend.KindHostname:
		if evt.Err != nil {
			break
		}
		if name, ok := evt.Data.(string); ok && name != "" && name != d.greeter.Hostname() {
			d.greeter.SetHostname(name)
			res.HostnameUpdated = true
		}
	}
	return res
}

func (d *Dispatcher) updateInfo() bool {
	var msg string
	switch {
	case d.failing[backend.KindSessions]:
		msg = InfoSessionsFailed
	case d.failing[backend.KindHostname]:
		msg = InfoHostnameFailed
	}
	current := d.greeter.Info()
	if msg == "" {
		// only poll messages are cleared; others stay until replaced
		if current != InfoSessionsFailed && current != InfoHostnameFailed {
			return false
		}
	} else if current == msg {
		return false
	}
	d.greeter.SetInfo(msg)
	return true
}
