package events

import "github.com/atomicstack/tui-greeter/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Renderer(name string) {
	logging.Trace("app.renderer", map[string]interface{}{"renderer": name})
}

func (AppTracer) Submit(user, session string) {
	logging.Trace("app.submit", map[string]interface{}{"user": user, "session": session})
}

func (AppTracer) Quit(reason string) {
	logging.Trace("app.quit", map[string]interface{}{"reason": reason})
}
