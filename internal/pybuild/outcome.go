package pybuild

import "time"

// Status enumerates the terminal states of one package build.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Outcome is the immutable per-package build record. Produced exactly once
// per package per run; Diagnostic is populated only on failure.
type Outcome struct {
	Package    string
	Status     Status
	Diagnostic string
	Duration   time.Duration
}

// OK reports whether the build succeeded.
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}
