package events

import "github.com/atomicstack/tui-greeter/internal/logging"

type AnimationTracer struct{}

var Animation = AnimationTracer{}

func (AnimationTracer) Init(kind string, width, height int) {
	logging.Trace("animation.init", map[string]interface{}{"kind": kind, "width": width, "height": height})
}

func (AnimationTracer) Teardown(kind string) {
	logging.Trace("animation.teardown", map[string]interface{}{"kind": kind})
}

func (AnimationTracer) Pick(kind string) {
	logging.Trace("animation.random.pick", map[string]interface{}{"kind": kind})
}
