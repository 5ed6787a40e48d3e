package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/geniustechspace/wheelhouse/internal/build"
	"github.com/geniustechspace/wheelhouse/internal/config"
	"github.com/geniustechspace/wheelhouse/internal/filelock"
	"github.com/geniustechspace/wheelhouse/internal/foundation"
	"github.com/geniustechspace/wheelhouse/internal/history"
	"github.com/geniustechspace/wheelhouse/internal/logfields"
	"github.com/geniustechspace/wheelhouse/internal/metrics"
	"github.com/geniustechspace/wheelhouse/internal/pybuild"
	"github.com/geniustechspace/wheelhouse/internal/report"
	"github.com/geniustechspace/wheelhouse/internal/workspace"

	prom "github.com/prometheus/client_golang/prometheus"
)

// CommandExecutor provides a service-oriented interface for CLI command execution
type CommandExecutor interface {
	ExecuteBuild(ctx context.Context, req BuildRequest) foundation.Result[BuildResponse, error]
	ExecuteClean(ctx context.Context, req CleanRequest) foundation.Result[CleanResponse, error]
	ExecuteList(ctx context.Context, req ListRequest) foundation.Result[ListResponse, error]
	ExecuteHistory(ctx context.Context, req HistoryRequest) foundation.Result[HistoryResponse, error]
}

// Request/Response types for each command

type BuildRequest struct {
	ConfigPath string
	Out        io.Writer
}

type BuildResponse struct {
	Result  *build.Result
	DistDir string
}

type CleanRequest struct {
	ConfigPath string
	Out        io.Writer
}

type CleanResponse struct {
	Cleaned []string
}

type ListRequest struct {
	ConfigPath string
}

// Candidate pairs a configured package name with its eligibility.
type Candidate struct {
	Name     string
	Path     string
	Eligible bool
}

type ListResponse struct {
	Candidates []Candidate
}

type HistoryRequest struct {
	ConfigPath string
	Limit      int
}

type HistoryResponse struct {
	Runs []history.RunRecord
}

// DefaultCommandExecutor implements the CommandExecutor interface
type DefaultCommandExecutor struct {
	service build.Service
}

// NewCommandExecutor creates a new command executor.
func NewCommandExecutor() *DefaultCommandExecutor {
	return &DefaultCommandExecutor{}
}

// WithService allows injecting a custom build Service (for testing).
func (e *DefaultCommandExecutor) WithService(svc build.Service) *DefaultCommandExecutor {
	e.service = svc
	return e
}

// resolveConfig loads the configuration. When the implicit default path does
// not exist the built-in defaults apply, so the tool runs with zero setup
// inside the workspace, like the build script it replaces. An explicitly
// requested config file that is missing is still an error.
func resolveConfig(configPath string) (*config.Config, error) {
	if configPath == config.DefaultConfigPath {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			slog.Debug("No configuration file, using defaults", logfields.Path(configPath))
			return config.Default(), nil
		}
	}
	return config.Load(configPath)
}

// rootedPath resolves a config-relative path against the workspace root.
func rootedPath(layout *workspace.Layout, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(layout.Root(), p)
}

// ExecuteBuild runs the full packaging pipeline: resolve workspace, take the
// run lock, build every eligible package sequentially, render the summary,
// and persist history/metrics when configured.
func (e *DefaultCommandExecutor) ExecuteBuild(ctx context.Context, req BuildRequest) foundation.Result[BuildResponse, error] {
	cfg, err := resolveConfig(req.ConfigPath)
	if err != nil {
		return foundation.Err[BuildResponse](fmt.Errorf("load config: %w", err))
	}

	layout, err := workspace.Resolve(cfg)
	if err != nil {
		return foundation.Err[BuildResponse](err)
	}

	// The lock file lives inside the dist dir, so it must exist first.
	if err := layout.EnsureDist(); err != nil {
		return foundation.Err[BuildResponse](err)
	}

	lock := filelock.New(layout.Dist())
	acquired, err := lock.TryAcquire()
	if err != nil {
		return foundation.Err[BuildResponse](err)
	}
	if !acquired {
		return foundation.Err[BuildResponse](fmt.Errorf("another run is already writing to %s", layout.Dist()))
	}
	defer func() {
		if err := lock.Release(); err != nil {
			slog.Warn("Failed to release run lock", logfields.Error(err))
		}
	}()

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var promRecorder *metrics.PrometheusRecorder
	if cfg.Metrics.Enabled {
		promRecorder = metrics.NewPrometheusRecorder(prom.NewRegistry())
		recorder = promRecorder
	}

	svc := e.service
	if svc == nil {
		python := pybuild.Interpreter(layout.Sources(), cfg.Python)
		svc = build.NewService(
			pybuild.NewIsolator(cfg.Namespace),
			pybuild.NewFrontendExecutor(python),
		).WithRecorder(recorder)
	}

	out := req.Out
	if out == nil {
		out = os.Stdout
	}
	printer := report.NewPrinter(out)

	result, err := svc.Run(ctx, build.Request{
		Layout:   layout,
		Packages: cfg.Packages,
		Observer: printer,
	})
	if err != nil {
		return foundation.Err[BuildResponse](err)
	}

	printer.Summary(result, layout.Dist())

	// History and metrics persistence are best-effort: a full dist dir of
	// wheels beats a lost run because a sidecar file was unwritable.
	if cfg.History.Enabled {
		if err := recordHistory(ctx, rootedPath(layout, cfg.History.Path), result); err != nil {
			slog.Warn("Failed to record run history", logfields.Error(err))
		}
	}
	if promRecorder != nil {
		if err := promRecorder.WriteTextfile(rootedPath(layout, cfg.Metrics.Textfile)); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Error(err))
		}
	}

	return foundation.Ok[BuildResponse, error](BuildResponse{
		Result:  result,
		DistDir: layout.Dist(),
	})
}

func recordHistory(ctx context.Context, dbPath string, result *build.Result) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return store.Record(ctx, result)
}

// ExecuteClean removes stale build state from every eligible package without
// building anything.
func (e *DefaultCommandExecutor) ExecuteClean(_ context.Context, req CleanRequest) foundation.Result[CleanResponse, error] {
	cfg, err := resolveConfig(req.ConfigPath)
	if err != nil {
		return foundation.Err[CleanResponse](fmt.Errorf("load config: %w", err))
	}

	layout, err := workspace.Resolve(cfg)
	if err != nil {
		return foundation.Err[CleanResponse](err)
	}

	isolator := pybuild.NewIsolator(cfg.Namespace)
	var cleaned []string
	for _, name := range cfg.Packages {
		pkgDir := layout.PackageDir(name)
		if !pybuild.Eligible(pkgDir) {
			continue
		}
		if err := isolator.Clean(pkgDir, name); err != nil {
			return foundation.Err[CleanResponse](fmt.Errorf("clean %s: %w", name, err))
		}
		cleaned = append(cleaned, name)
	}

	return foundation.Ok[CleanResponse, error](CleanResponse{Cleaned: cleaned})
}

// ExecuteList reports each configured candidate and whether it is buildable.
func (e *DefaultCommandExecutor) ExecuteList(_ context.Context, req ListRequest) foundation.Result[ListResponse, error] {
	cfg, err := resolveConfig(req.ConfigPath)
	if err != nil {
		return foundation.Err[ListResponse](fmt.Errorf("load config: %w", err))
	}

	layout, err := workspace.Resolve(cfg)
	if err != nil {
		return foundation.Err[ListResponse](err)
	}

	candidates := make([]Candidate, 0, len(cfg.Packages))
	for _, name := range cfg.Packages {
		pkgDir := layout.PackageDir(name)
		candidates = append(candidates, Candidate{
			Name:     name,
			Path:     pkgDir,
			Eligible: pybuild.Eligible(pkgDir),
		})
	}

	return foundation.Ok[ListResponse, error](ListResponse{Candidates: candidates})
}

// ExecuteHistory returns the most recent persisted runs.
func (e *DefaultCommandExecutor) ExecuteHistory(ctx context.Context, req HistoryRequest) foundation.Result[HistoryResponse, error] {
	cfg, err := resolveConfig(req.ConfigPath)
	if err != nil {
		return foundation.Err[HistoryResponse](fmt.Errorf("load config: %w", err))
	}
	if !cfg.History.Enabled {
		return foundation.Err[HistoryResponse](fmt.Errorf("run history is not enabled; set history.enabled in %s", req.ConfigPath))
	}

	layout, err := workspace.Resolve(cfg)
	if err != nil {
		return foundation.Err[HistoryResponse](err)
	}

	store, err := history.Open(rootedPath(layout, cfg.History.Path))
	if err != nil {
		return foundation.Err[HistoryResponse](err)
	}
	defer func() { _ = store.Close() }()

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return foundation.Err[HistoryResponse](err)
	}

	return foundation.Ok[HistoryResponse, error](HistoryResponse{Runs: runs})
}
