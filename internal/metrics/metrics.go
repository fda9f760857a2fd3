package metrics

import (
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AggregationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_aggregation_duration_seconds",
			Help:    "Time taken to build a dashboard snapshot in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	AggregationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_aggregations_total",
			Help: "Total number of aggregation runs by source and result",
		},
		[]string{"source", "result"},
	)

	UncategorizedUsers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_uncategorized_users",
			Help: "Users with workflows left out of the engagement partition in the last inconsistent run",
		},
	)

	SnapshotWorkflows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_snapshot_workflows",
			Help: "Workflows covered by the last snapshot",
		},
	)

	SnapshotLatencySamples = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dashboard_snapshot_latency_samples",
			Help: "Latency samples per block type in the last snapshot; types past the cap are summed under \"other\"",
		},
		[]string{"block_type"},
	)

	LogsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_execution_logs_ingested_total",
			Help: "Execution log entries accepted by the ingest API by result",
		},
		[]string{"result"},
	)
)

// Aggregation results
const (
	ResultOK           = "ok"
	ResultInconsistent = "inconsistent"
	ResultError        = "error"
)

// Ingest results
const (
	IngestCreated   = "created"
	IngestDuplicate = "duplicate"
)

func init() {
	prometheus.MustRegister(AggregationDuration)
	prometheus.MustRegister(AggregationsTotal)
	prometheus.MustRegister(UncategorizedUsers)
	prometheus.MustRegister(SnapshotWorkflows)
	prometheus.MustRegister(SnapshotLatencySamples)
	prometheus.MustRegister(LogsIngested)
}

// MaxLatencyBlockTypes caps the block_type series of SnapshotLatencySamples.
// Block types come from log text, so the label set is not trusted.
const MaxLatencyBlockTypes = 20

const OtherBlockType = "other"

// RecordLatencySamples replaces the SnapshotLatencySamples series with the
// given per-type counts. The largest MaxLatencyBlockTypes types keep their own
// series; the rest are summed under OtherBlockType.
func RecordLatencySamples(samples map[string]int) {
	SnapshotLatencySamples.Reset()

	types := make([]string, 0, len(samples))
	for t := range samples {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if samples[types[i]] != samples[types[j]] {
			return samples[types[i]] > samples[types[j]]
		}
		return types[i] < types[j]
	})

	other := 0
	for i, t := range types {
		if i < MaxLatencyBlockTypes && t != OtherBlockType {
			SnapshotLatencySamples.WithLabelValues(t).Set(float64(samples[t]))
			continue
		}
		other += samples[t]
	}
	if other > 0 {
		SnapshotLatencySamples.WithLabelValues(OtherBlockType).Add(float64(other))
	}
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer measures one operation for a histogram.
type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

func (t *Timer) ObserveDuration(o prometheus.Observer) {
	o.Observe(t.Duration().Seconds())
}
