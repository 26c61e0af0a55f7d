// Stats collection for the driver's six stages (§6's "optional stats
// collector... receives per-stage wall-clock durations: Parse,
// Validate, Link, Compile, Execute, and Deserialize"). The spec leaves
// the collector's shape unspecified; this binds it concretely to
// Prometheus histograms, grounded on the teacher's dag/executor.go
// metrics (one histogram per named operation, registered once via
// promauto at package init).
package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage identifies one of the driver's instrumented phases.
type Stage string

const (
	StageParse       Stage = "parse"
	StageValidate    Stage = "validate"
	StageLink        Stage = "link"
	StageCompile     Stage = "compile"
	StageExecute     Stage = "execute"
	StageDeserialize Stage = "deserialize"
)

// StatsCollector receives a wall-clock duration for one pipeline stage.
// A host may wire this to Prometheus, a log line, an in-memory ring
// buffer — anything. Nil is a legal StatsCollector value everywhere this
// package accepts one; Record is simply never called.
type StatsCollector interface {
	Record(stage Stage, d time.Duration)
}

// NopStats discards every observation. The Options zero value uses
// this, so a host that never configures a collector pays no cost
// beyond a single no-op method call per stage.
type NopStats struct{}

func (NopStats) Record(Stage, time.Duration) {}

// recordStage calls collector.Record if collector is non-nil, so
// callers can pass a possibly-nil StatsCollector without a guard at
// every call site.
func recordStage(collector StatsCollector, stage Stage, d time.Duration) {
	if collector == nil {
		return
	}
	collector.Record(stage, d)
}

var stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "jyro_pipeline_stage_duration_seconds",
	Help:    "Wall-clock duration of each jyro pipeline stage.",
	Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
}, []string{"stage"})

// PrometheusStats is a StatsCollector backed by a histogram vector
// labeled by stage, exported on whatever /metrics handler the host
// already registers prometheus.DefaultRegisterer against.
type PrometheusStats struct{}

// NewPrometheusStats returns a StatsCollector that observes every stage
// into stageDuration, registered with prometheus.DefaultRegisterer at
// package init via promauto.
func NewPrometheusStats() PrometheusStats {
	return PrometheusStats{}
}

func (PrometheusStats) Record(stage Stage, d time.Duration) {
	stageDuration.WithLabelValues(string(stage)).Observe(d.Seconds())
}

// timeStage runs fn, recording its wall-clock duration against stage
// whether fn succeeds or not.
func timeStage(collector StatsCollector, stage Stage, fn func() error) error {
	start := time.Now()
	err := fn()
	recordStage(collector, stage, time.Since(start))
	return err
}
