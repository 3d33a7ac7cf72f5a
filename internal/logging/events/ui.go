package events

import "github.com/atomicstack/stockroom/internal/logging"

type UITracer struct{}

type NotifyTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Notify  = NotifyTracer{}
	Command = CommandTracer{}
)

func (UITracer) Page(page string) {
	logging.Trace("ui.page", map[string]interface{}{"page": page})
}

func (UITracer) Focus(scope string, index int) {
	logging.Trace("ui.focus", map[string]interface{}{"scope": scope, "index": index})
}

func (UITracer) Pointer(x, y int, target string) {
	logging.Trace("ui.pointer", map[string]interface{}{"x": x, "y": y, "target": target})
}

func (NotifyTracer) Show(id, level, message string) {
	logging.Trace("notify.show", map[string]interface{}{"id": id, "level": level, "message": message})
}

func (NotifyTracer) Dismiss(id string) {
	logging.Trace("notify.dismiss", map[string]interface{}{"id": id})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
