// Package build provides the canonical run execution pipeline for wheelhouse.
// All execution paths (CLI, watch mode, tests) should route through Service.
package build

import (
	"context"

	"github.com/geniustechspace/wheelhouse/internal/pybuild"
	"github.com/geniustechspace/wheelhouse/internal/workspace"
)

// Service is the canonical interface for executing packaging runs.
// CLI commands are thin wrappers over this interface.
type Service interface {
	// Run executes a complete packaging run: filter → isolate → build →
	// aggregate. Per-package build failures are contained in the Result;
	// the error return is reserved for workspace-level failures.
	Run(ctx context.Context, req Request) (*Result, error)
}

// Request contains all inputs required to execute a packaging run.
type Request struct {
	// Layout is the resolved workspace layout.
	Layout *workspace.Layout

	// Packages is the ordered candidate list. Declaration order is build
	// order; no dependency ordering is computed.
	Packages []string

	// Observer receives progress notifications as packages complete.
	// Optional; nil disables progress rendering.
	Observer Observer
}

// Observer receives run progress events. Implementations must be pure
// presentation: they can never affect control flow or the Result.
type Observer interface {
	// RunStarted is invoked once, after the output directory is ready.
	RunStarted(distDir string)

	// PackageSkipped is invoked for candidates without a build descriptor.
	PackageSkipped(name string)

	// PackageStarted is invoked before a package's isolation and build.
	PackageStarted(name string)

	// PackageFinished is invoked with the package's outcome, immediately,
	// so failures are visible even if the run is later interrupted.
	PackageFinished(outcome pybuild.Outcome)
}
