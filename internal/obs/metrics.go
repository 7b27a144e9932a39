// Package obs collects lightweight runtime counters for the pipeline
// stages. Counters are atomic so connectors and listeners can report from
// any goroutine without coordination.
package obs

import (
	"sync/atomic"
	"time"
)

// Stage identifies one pipeline stage for metrics attribution.
type Stage int

const (
	StagePricing Stage = iota
	StageAlgoStreaming
	StageStreaming
	StageGUI
	StageMarketData
	StageAlgoExecution
	StageExecution
	StageTradeBooking
	StagePosition
	StageRisk
	StageInquiry
	StageHistory

	stageCount
)

var stageNames = [stageCount]string{
	"pricing",
	"algo-streaming",
	"streaming",
	"gui",
	"market-data",
	"algo-execution",
	"execution",
	"trade-booking",
	"position",
	"risk",
	"inquiry",
	"history",
}

// String returns the stage name used in logs and summaries.
func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return "unknown"
	}
	return stageNames[s]
}

// Metrics collects per-stage counters and dispatch latency stats.
type Metrics struct {
	accepted  [stageCount]uint64
	skipped   [stageCount]uint64
	persisted [stageCount]uint64

	dispatchLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// StageSnapshot holds one stage's counter values.
type StageSnapshot struct {
	Stage     Stage
	Accepted  uint64
	Skipped   uint64
	Persisted uint64
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	Stages          []StageSnapshot
	DispatchLatency LatencySnapshot
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncAccepted records one event accepted by a stage.
func (m *Metrics) IncAccepted(stage Stage) {
	if m == nil {
		return
	}
	m.add(&m.accepted, stage)
}

// IncSkipped records one input the stage declined: a malformed row, an
// unknown product, or a spread outside the execution gate.
func (m *Metrics) IncSkipped(stage Stage) {
	if m == nil {
		return
	}
	m.add(&m.skipped, stage)
}

// IncPersisted records one record written to a historical sink.
func (m *Metrics) IncPersisted(stage Stage) {
	if m == nil {
		return
	}
	m.add(&m.persisted, stage)
}

func (m *Metrics) add(counters *[stageCount]uint64, stage Stage) {
	if stage < 0 || stage >= stageCount {
		return
	}
	atomic.AddUint64(&counters[stage], 1)
}

// ObserveDispatch measures one synchronous publish fan-out.
func (m *Metrics) ObserveDispatch(d time.Duration) {
	if m == nil {
		return
	}
	m.dispatchLatency.Observe(d)
}

// Snapshot returns a copy of the current metrics values. Stages with no
// activity are omitted.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	var stages []StageSnapshot
	for i := Stage(0); i < stageCount; i++ {
		snap := StageSnapshot{
			Stage:     i,
			Accepted:  atomic.LoadUint64(&m.accepted[i]),
			Skipped:   atomic.LoadUint64(&m.skipped[i]),
			Persisted: atomic.LoadUint64(&m.persisted[i]),
		}
		if snap.Accepted == 0 && snap.Skipped == 0 && snap.Persisted == 0 {
			continue
		}
		stages = append(stages, snap)
	}
	return Snapshot{
		Stages:          stages,
		DispatchLatency: m.dispatchLatency.Snapshot(),
	}
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	for {
		min := atomic.LoadUint64(&l.min)
		if min != 0 && nanos >= min {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, min, nanos) {
			break
		}
	}

	for {
		max := atomic.LoadUint64(&l.max)
		if nanos <= max {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, max, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	sum := atomic.LoadUint64(&l.sum)
	min := atomic.LoadUint64(&l.min)
	max := atomic.LoadUint64(&l.max)
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(min),
		Max:   time.Duration(max),
		Avg:   time.Duration(sum / count),
	}
}
