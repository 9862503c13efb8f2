package events

import "github.com/atomicstack/tui-greeter/internal/logging"

type PersistTracer struct{}

var Persist = PersistTracer{}

func (PersistTracer) Save(path string, cursor int) {
	logging.Trace("persist.save", map[string]interface{}{"path": path, "cursor": cursor})
}

func (PersistTracer) Load(path string, cursor int) {
	logging.Trace("persist.load", map[string]interface{}{"path": path, "cursor": cursor})
}

func (PersistTracer) Error(op string, err error) {
	if err == nil {
		return
	}
	logging.Trace("persist.error", map[string]interface{}{"op": op, "error": err.Error()})
}
