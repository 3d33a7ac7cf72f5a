// Package state holds the snapshots the backend watcher keeps current for the
// UI.
package state

import (
	"time"

	"github.com/atomicstack/stockroom/internal/inventory"
)

type MetricsStore interface {
	Metrics() []inventory.Metric
	SetMetrics([]inventory.Metric, time.Time)
	UpdatedAt() time.Time
	Err() error
	SetErr(error)
}

type metricsStore struct {
	metrics   []inventory.Metric
	updatedAt time.Time
	err       error
}

func NewMetricsStore() MetricsStore {
	return &metricsStore{}
}

func (m *metricsStore) Metrics() []inventory.Metric {
	return cloneMetrics(m.metrics)
}

// SetMetrics replaces the snapshot and clears any poll error.
func (m *metricsStore) SetMetrics(metrics []inventory.Metric, at time.Time) {
	m.metrics = cloneMetrics(metrics)
	m.updatedAt = at
	m.err = nil
}

func (m *metricsStore) UpdatedAt() time.Time {
	return m.updatedAt
}

func (m *metricsStore) Err() error {
	return m.err
}

// SetErr records a poll failure; the last good snapshot is kept.
func (m *metricsStore) SetErr(err error) {
	m.err = err
}

func cloneMetrics(metrics []inventory.Metric) []inventory.Metric {
	if len(metrics) == 0 {
		return nil
	}
	dup := make([]inventory.Metric, len(metrics))
	copy(dup, metrics)
	return dup
}
