package events

import "github.com/atomicstack/stockroom/internal/logging"

type TableTracer struct{}

var Table = TableTracer{}

func (TableTracer) Request(source string, requestID uint64, offset, limit int) {
	logging.Trace("table.request", map[string]interface{}{
		"source":  source,
		"request": requestID,
		"offset":  offset,
		"limit":   limit,
	})
}

func (TableTracer) Loaded(source string, offset, count int, exhausted bool) {
	logging.Trace("table.loaded", map[string]interface{}{
		"source":    source,
		"offset":    offset,
		"count":     count,
		"exhausted": exhausted,
	})
}

func (TableTracer) Stale(source string, requestID, current uint64) {
	logging.Trace("table.stale", map[string]interface{}{"source": source, "request": requestID, "current": current})
}

func (TableTracer) Failed(source string, err error) {
	payload := map[string]interface{}{"source": source}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("table.failed", payload)
}

func (TableTracer) Busy(source string) {
	logging.Trace("table.busy", map[string]interface{}{"source": source})
}

func (TableTracer) Exhausted(source string) {
	logging.Trace("table.exhausted", map[string]interface{}{"source": source})
}

func (TableTracer) Refresh(source string, superseded bool) {
	logging.Trace("table.refresh", map[string]interface{}{"source": source, "superseded": superseded})
}
