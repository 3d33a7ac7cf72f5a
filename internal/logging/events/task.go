package events

import "github.com/atomicstack/stockroom/internal/logging"

type TaskTracer struct{}

type StoreTracer struct{}

var (
	Task  = TaskTracer{}
	Store = StoreTracer{}
)

func (TaskTracer) Open(kind string, generation uint64) {
	logging.Trace("task.open", map[string]interface{}{"kind": kind, "generation": generation})
}

func (TaskTracer) Teardown(kind string, widgets int) {
	logging.Trace("task.teardown", map[string]interface{}{"kind": kind, "widgets": widgets})
}

func (TaskTracer) Validation(kind, field, message string) {
	logging.Trace("task.validation", map[string]interface{}{"kind": kind, "field": field, "message": message})
}

func (TaskTracer) Submit(kind string) {
	logging.Trace("task.submit", map[string]interface{}{"kind": kind})
}

func (TaskTracer) Result(kind, info string, err error) {
	payload := map[string]interface{}{"kind": kind, "info": info}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("task.result", payload)
}

func (TaskTracer) Stale(kind string, generation, current uint64) {
	logging.Trace("task.stale", map[string]interface{}{"kind": kind, "generation": generation, "current": current})
}

func (StoreTracer) Query(name string, args ...interface{}) {
	logging.Trace("store.query", map[string]interface{}{"name": name, "args": args})
}
