package events

import "github.com/atomicstack/stockroom/internal/logging"

// SelectTracer records selection widget activity.
type SelectTracer struct{}

var Select = SelectTracer{}

func (SelectTracer) Open(widgetID, filter string, visible int) {
	logging.Trace("select.open", map[string]interface{}{"widget": widgetID, "filter": filter, "visible": visible})
}

func (SelectTracer) Filter(widgetID, filter string, visible int) {
	logging.Trace("select.filter", map[string]interface{}{"widget": widgetID, "filter": filter, "visible": visible})
}

func (SelectTracer) Commit(widgetID, key, label string, synthesized bool) {
	logging.Trace("select.commit", map[string]interface{}{
		"widget":      widgetID,
		"key":         key,
		"label":       label,
		"synthesized": synthesized,
	})
}

func (SelectTracer) Dismiss(widgetID, reason string) {
	logging.Trace("select.dismiss", map[string]interface{}{"widget": widgetID, "reason": reason})
}

func (SelectTracer) CallbackFailed(widgetID string, recovered interface{}) {
	logging.Trace("select.callback-failed", map[string]interface{}{"widget": widgetID, "panic": recovered})
}
