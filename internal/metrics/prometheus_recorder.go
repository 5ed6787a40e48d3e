package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	registry      *prom.Registry
	buildDuration *prom.HistogramVec
	buildResults  *prom.CounterVec
	runDuration   prom.Histogram
	runOutcome    *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.once.Do(func() {
		pr.buildDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "wheelhouse",
			Name:      "package_build_duration_seconds",
			Help:      "Duration of individual package builds",
			Buckets:   prom.DefBuckets,
		}, []string{"package", "result"})
		pr.buildResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "wheelhouse",
			Name:      "package_build_results_total",
			Help:      "Package build results by success/failure",
		}, []string{"result"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "wheelhouse",
			Name:      "run_duration_seconds",
			Help:      "Total run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "wheelhouse",
			Name:      "run_outcomes_total",
			Help:      "Run outcomes by final status",
		}, []string{"outcome"})
		reg.MustRegister(pr.buildDuration, pr.buildResults, pr.runDuration, pr.runOutcome)
	})
	return pr
}

func (p *PrometheusRecorder) ObservePackageBuild(pkg string, d time.Duration, success bool) {
	if p == nil || p.buildDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.buildDuration.WithLabelValues(pkg, res).Observe(d.Seconds())
	p.buildResults.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile persists the current metric state to path in the Prometheus
// text exposition format, suitable for a node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.registry == nil {
		return nil
	}
	return prom.WriteToTextfile(path, p.registry)
}
