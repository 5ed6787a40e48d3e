// Package metrics provides observability hooks for build runs.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics can be enabled by swapping implementations without
// touching orchestration code. Because wheelhouse is a one-shot CLI with no
// process to scrape, the Prometheus implementation exports a textfile
// snapshot (node_exporter textfile-collector format) at the end of the run.
package metrics

import "time"

// OutcomeLabel enumerates run outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for run and per-package metrics.
// All methods must be safe on the NoopRecorder zero value (allowing optional injection).
type Recorder interface {
	ObservePackageBuild(pkg string, d time.Duration, success bool)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePackageBuild(string, time.Duration, bool) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)                {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)                      {}
