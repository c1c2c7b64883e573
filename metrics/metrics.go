// Package metrics exposes run statistics as Prometheus metrics. A run is a
// single batch, so metrics are written once to a textfile for the node
// exporter textfile collector instead of being served.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ChristianF88/buddyx/grouping"
)

const namespace = "buddyx"

// Collector owns a private registry with the run metrics.
type Collector struct {
	registry *prometheus.Registry

	users             prometheus.Gauge
	groups            prometheus.Gauge
	solitary          prometheus.Gauge
	maxSignatureWidth prometheus.Gauge
	groupSize         prometheus.Histogram
	stageDuration     *prometheus.GaugeVec
	topkSelected      prometheus.Gauge
	topkCandidates    prometheus.Gauge
	lastRun           prometheus.Gauge
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		users: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "users",
			Help: "Users read in the last grouping run.",
		}),
		groups: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "groups",
			Help: "Groups of two or more users found in the last run.",
		}),
		solitary: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "solitary_users",
			Help: "Users whose item list matched nobody in the last run.",
		}),
		maxSignatureWidth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "max_signature_width",
			Help: "Radix passes of the global signature sort.",
		}),
		groupSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "group_size",
			Help:    "Members per group.",
			Buckets: prometheus.ExponentialBuckets(2, 2, 8),
		}),
		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "stage_duration_seconds",
			Help: "Wall time of each grouping stage.",
		}, []string{"stage"}),
		topkSelected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "topk_selected",
			Help: "Entries returned by the last top-k selection.",
		}),
		topkCandidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "topk_candidates",
			Help: "Scored entries considered by the last top-k selection.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
	}
	c.registry.MustRegister(
		c.users, c.groups, c.solitary, c.maxSignatureWidth,
		c.groupSize, c.stageDuration, c.topkSelected, c.topkCandidates, c.lastRun,
	)
	return c
}

// ObserveGrouping records the outcome of a grouping run.
func (c *Collector) ObserveGrouping(res *grouping.Result) {
	c.users.Set(float64(res.TotalUsers))
	c.groups.Set(float64(len(res.Groups)))
	c.solitary.Set(float64(len(res.Solitary)))
	c.maxSignatureWidth.Set(float64(res.MaxSignatureWidth))
	for _, g := range res.Groups {
		c.groupSize.Observe(float64(len(g.MemberIDs)))
	}
	for _, st := range res.Timings {
		c.stageDuration.WithLabelValues(st.Stage).Set(st.Duration.Seconds())
	}
	c.lastRun.SetToCurrentTime()
}

// ObserveTopK records a top-k selection over candidates entries.
func (c *Collector) ObserveTopK(candidates, selected int) {
	c.topkCandidates.Set(float64(candidates))
	c.topkSelected.Set(float64(selected))
	c.lastRun.SetToCurrentTime()
}

// WriteTextfile writes all metrics in the text exposition format. The file is
// replaced atomically.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
