package events

import "github.com/atomicstack/stockroom/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.stop", payload)
}

func (AppTracer) Migrated(path string, version uint) {
	logging.Trace("app.migrated", map[string]interface{}{"db": path, "version": version})
}

func (AppTracer) Seeded(path string, inserted bool) {
	logging.Trace("app.seeded", map[string]interface{}{"db": path, "inserted": inserted})
}
