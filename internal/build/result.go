package build

import (
	"time"

	"github.com/geniustechspace/wheelhouse/internal/artifacts"
	"github.com/geniustechspace/wheelhouse/internal/pybuild"
)

// Status represents the aggregate outcome of a run.
type Status string

const (
	// StatusSuccess indicates no eligible package failed (including the
	// case where every candidate was skipped and nothing was built).
	StatusSuccess Status = "success"

	// StatusFailed indicates at least one eligible package failed.
	StatusFailed Status = "failed"
)

// Result contains the aggregate outcome of a packaging run. Computed once,
// at the end of the run; it is the sole determinant of the process exit code.
type Result struct {
	// RunID uniquely identifies this run (history records, log correlation).
	RunID string

	// Succeeded and Failed partition the eligible packages' outcomes,
	// preserving declaration order.
	Succeeded []pybuild.Outcome
	Failed    []pybuild.Outcome

	// Skipped lists candidates excluded for lacking a build descriptor.
	// They never entered the run and do not affect Status.
	Skipped []string

	// Artifacts lists wheel files discovered in the shared output
	// directory after the run, with byte sizes.
	Artifacts []artifacts.Wheel

	Start    time.Time
	End      time.Time
	Duration time.Duration
}

// Status derives the overall run status: failed iff any package failed.
func (r *Result) Status() Status {
	if len(r.Failed) > 0 {
		return StatusFailed
	}
	return StatusSuccess
}

// Outcomes returns all per-package outcomes, successes first, declaration
// order preserved within each group.
func (r *Result) Outcomes() []pybuild.Outcome {
	out := make([]pybuild.Outcome, 0, len(r.Succeeded)+len(r.Failed))
	out = append(out, r.Succeeded...)
	out = append(out, r.Failed...)
	return out
}

// ExitCode maps the run status to the process exit signal: 0 on success,
// 1 otherwise. This is the only machine-readable contract exposed to callers.
func (r *Result) ExitCode() int {
	if r.Status() == StatusFailed {
		return 1
	}
	return 0
}
