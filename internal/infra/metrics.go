package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	messagesReceived atomic.Uint64
	parseRejections  atomic.Uint64
	tradesClassified atomic.Uint64
	tradesPersisted  atomic.Uint64
	storageRetries   atomic.Uint64
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordMessage records one raw message received from the feed.
func (m *Metrics) RecordMessage() {
	m.messagesReceived.Add(1)
}

// RecordRejection records one parser rejection.
func (m *Metrics) RecordRejection() {
	m.parseRejections.Add(1)
}

// RecordClassified records one classified trade.
func (m *Metrics) RecordClassified() {
	m.tradesClassified.Add(1)
}

// RecordPersisted records one durably committed trade row.
func (m *Metrics) RecordPersisted() {
	m.tradesPersisted.Add(1)
}

// RecordStorageRetry records one transient storage contention failure.
func (m *Metrics) RecordStorageRetry() {
	m.storageRetries.Add(1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	MessagesReceived uint64
	ParseRejections  uint64
	TradesClassified uint64
	TradesPersisted  uint64
	StorageRetries   uint64
	Timestamp        time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		MessagesReceived: m.messagesReceived.Load(),
		ParseRejections:  m.parseRejections.Load(),
		TradesClassified: m.tradesClassified.Load(),
		TradesPersisted:  m.tradesPersisted.Load(),
		StorageRetries:   m.storageRetries.Load(),
		Timestamp:        time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.messagesReceived.Store(0)
	m.parseRejections.Store(0)
	m.tradesClassified.Store(0)
	m.tradesPersisted.Store(0)
	m.storageRetries.Store(0)
}
