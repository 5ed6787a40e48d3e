package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/geniustechspace/wheelhouse/internal/artifacts"
	"github.com/geniustechspace/wheelhouse/internal/logfields"
	"github.com/geniustechspace/wheelhouse/internal/metrics"
	"github.com/geniustechspace/wheelhouse/internal/pybuild"
)

// Isolator removes stale build state from one package directory.
type Isolator interface {
	Clean(pkgDir, name string) error
}

// ArtifactScanner lists produced wheels in the shared output directory.
// Injected for testability; defaults to artifacts.Scan.
type ArtifactScanner func(distDir string) ([]artifacts.Wheel, error)

// DefaultService is the standard implementation of Service. It walks the
// candidate list strictly sequentially, one package at a time, in declaration
// order; there is no parallelism and no mid-run cancellation beyond the
// context handed to the executor's child process.
type DefaultService struct {
	isolator Isolator
	executor pybuild.Executor
	scanner  ArtifactScanner
	recorder metrics.Recorder
}

// NewService creates a DefaultService with the given isolator and executor.
func NewService(isolator Isolator, executor pybuild.Executor) *DefaultService {
	return &DefaultService{
		isolator: isolator,
		executor: executor,
		scanner:  artifacts.Scan,
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder allows injecting a metrics recorder.
func (s *DefaultService) WithRecorder(recorder metrics.Recorder) *DefaultService {
	s.recorder = recorder
	return s
}

// WithArtifactScanner allows injecting a custom artifact scanner (for testing).
func (s *DefaultService) WithArtifactScanner(scanner ArtifactScanner) *DefaultService {
	s.scanner = scanner
	return s
}

// Run executes the complete packaging run.
func (s *DefaultService) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	result := &Result{
		RunID: uuid.NewString(),
		Start: start,
	}

	if req.Layout == nil {
		return nil, fmt.Errorf("workspace layout required")
	}

	// Workspace-level failures are fatal to the entire run; no partial
	// report is produced.
	if err := req.Layout.EnsureDist(); err != nil {
		return nil, err
	}

	distDir := req.Layout.Dist()
	if req.Observer != nil {
		req.Observer.RunStarted(distDir)
	}

	slog.Info("Starting packaging run",
		logfields.RunID(result.RunID),
		logfields.Path(distDir),
		logfields.Count(len(req.Packages)))

	for _, name := range req.Packages {
		pkgDir := req.Layout.PackageDir(name)

		if !pybuild.Eligible(pkgDir) {
			// Not an error: the package is not applicable for this run.
			slog.Info("Skipping package without build descriptor", logfields.Package(name))
			result.Skipped = append(result.Skipped, name)
			if req.Observer != nil {
				req.Observer.PackageSkipped(name)
			}
			continue
		}

		if req.Observer != nil {
			req.Observer.PackageStarted(name)
		}

		outcome := s.buildOne(ctx, name, pkgDir, distDir)

		s.recorder.ObservePackageBuild(name, outcome.Duration, outcome.OK())
		if outcome.OK() {
			slog.Info("Package built",
				logfields.Package(name),
				logfields.DurationMS(float64(outcome.Duration.Milliseconds())))
			result.Succeeded = append(result.Succeeded, outcome)
		} else {
			slog.Error("Package build failed",
				logfields.Package(name),
				slog.String("diagnostic", outcome.Diagnostic))
			result.Failed = append(result.Failed, outcome)
		}

		if req.Observer != nil {
			req.Observer.PackageFinished(outcome)
		}
	}

	wheels, err := s.scanner(distDir)
	if err != nil {
		return nil, err
	}
	result.Artifacts = wheels

	result.End = time.Now()
	result.Duration = result.End.Sub(start)

	s.recorder.ObserveRunDuration(result.Duration)
	if result.Status() == StatusFailed {
		s.recorder.IncRunOutcome(metrics.OutcomeFailed)
	} else {
		s.recorder.IncRunOutcome(metrics.OutcomeSuccess)
	}

	slog.Info("Packaging run finished",
		logfields.RunID(result.RunID),
		slog.String("status", string(result.Status())),
		slog.Int("succeeded", len(result.Succeeded)),
		slog.Int("failed", len(result.Failed)),
		slog.Int("skipped", len(result.Skipped)))

	return result, nil
}

// buildOne isolates and builds a single package. An isolation failure is
// folded into a failed outcome for that package; the run continues.
func (s *DefaultService) buildOne(ctx context.Context, name, pkgDir, distDir string) pybuild.Outcome {
	cleanStart := time.Now()
	if err := s.isolator.Clean(pkgDir, name); err != nil {
		return pybuild.Outcome{
			Package:    name,
			Status:     pybuild.StatusFailure,
			Diagnostic: fmt.Sprintf("failed to clean stale build state: %v", err),
			Duration:   time.Since(cleanStart),
		}
	}
	return s.executor.Build(ctx, name, pkgDir, distDir)
}
