package dispatcher

import (
	"github.com/atomicstack/stockroom/internal/backend"
	"github.com/atomicstack/stockroom/internal/inventory"
	"github.com/atomicstack/stockroom/internal/state"
)

type Result struct {
	MetricsUpdated bool
	Err            error
}

type Dispatcher struct {
	metrics state.MetricsStore
}

func New(m state.MetricsStore) *Dispatcher {
	return &Dispatcher{metrics: m}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	switch evt.Kind {
	case backend.KindMetrics:
		if evt.Err != nil {
			d.metrics.SetErr(evt.Err)
			res.Err = evt.Err
			return res
		}
		if metrics, ok := evt.Data.([]inventory.Metric); ok {
			d.metrics.SetMetrics(metrics, evt.At)
			res.MetricsUpdated = true
		}
	}
	return res
}
