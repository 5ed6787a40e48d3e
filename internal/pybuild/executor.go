package pybuild

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/geniustechspace/wheelhouse/internal/logfields"
)

// Executor invokes the external build frontend for a single package.
// Implementations never return a Go error for a failing build; a non-zero
// exit is an expected outcome carried in the returned Outcome.
type Executor interface {
	Build(ctx context.Context, name, pkgDir, distDir string) Outcome
}

// FrontendExecutor runs `<python> -m build --wheel --outdir <dist>` with the
// package directory as working directory. This is the single external
// protocol boundary: success means wheel file(s) written into the shared
// dist directory, failure means non-zero exit with diagnostics on stderr.
type FrontendExecutor struct {
	python string
}

// NewFrontendExecutor creates an executor using the given Python interpreter.
func NewFrontendExecutor(python string) *FrontendExecutor {
	return &FrontendExecutor{python: python}
}

// Build runs the build frontend for one package and blocks until the child
// process terminates. There is deliberately no timeout: a hung build tool
// blocks the run until the operator intervenes.
func (e *FrontendExecutor) Build(ctx context.Context, name, pkgDir, distDir string) Outcome {
	start := time.Now()

	cmd := exec.CommandContext(ctx, e.python, "-m", "build", "--wheel", "--outdir", distDir)
	cmd.Dir = pkgDir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	slog.Debug("Invoking build frontend",
		logfields.Package(name),
		logfields.Path(pkgDir),
		slog.String("interpreter", e.python))

	err := cmd.Run()
	elapsed := time.Since(start)

	if err == nil {
		return Outcome{Package: name, Status: StatusSuccess, Duration: elapsed}
	}

	// Both a failing build (non-zero exit) and an unstartable process
	// (missing interpreter, missing build module) fold into the same
	// failure shape; the run must continue either way.
	diagnostic := strings.TrimSpace(stderr.String())
	if diagnostic == "" {
		diagnostic = err.Error()
	}

	return Outcome{
		Package:    name,
		Status:     StatusFailure,
		Diagnostic: diagnostic,
		Duration:   elapsed,
	}
}
