package events

import "github.com/atomicstack/tui-greeter/internal/logging"

type FocusTracer struct{}

// FieldTracer records edits to text fields. Only lengths and offsets are
// traced; field contents may be credentials.
type FieldTracer struct{}

var (
	Focus = FocusTracer{}
	Field = FieldTracer{}
)

func (FocusTracer) Change(from, to string) {
	logging.Trace("focus.change", map[string]interface{}{"from": from, "to": to})
}

func (FieldTracer) Cleared(field string) {
	logging.Trace("field.clear", map[string]interface{}{"field": field})
}

func (FieldTracer) Grow(field string, capacity int) {
	logging.Trace("field.grow", map[string]interface{}{"field": field, "capacity": capacity})
}

func (FieldTracer) Edit(field string, length, cursor int) {
	logging.Trace("field.edit", map[string]interface{}{"field": field, "length": length, "cursor": cursor})
}
