package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/geniustechspace/wheelhouse/internal/config"
	"github.com/geniustechspace/wheelhouse/internal/logfields"
)

// Layout resolves the fixed directory structure the orchestrator operates on:
// the workspace root, the sub-project sources directory, and the shared
// distribution directory all wheel files are collected into.
type Layout struct {
	root       string
	sourcesDir string
	distDir    string
}

// Resolve computes the workspace layout from configuration. When no root is
// configured the workspace root is derived from the invoking binary: the
// binary is expected to live one directory below the root (e.g. <root>/scripts),
// so the root is the parent of the executable's directory.
func Resolve(cfg *config.Config) (*Layout, error) {
	root := cfg.Workspace.Root
	if root == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate executable: %w", err)
		}
		root = filepath.Dir(filepath.Dir(exe))
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace root %s: %w", root, err)
	}

	return &Layout{
		root:       abs,
		sourcesDir: cfg.Workspace.SourcesDir,
		distDir:    cfg.Workspace.DistDir,
	}, nil
}

// Root returns the workspace root directory.
func (l *Layout) Root() string {
	return l.root
}

// Sources returns the directory holding sub-project sources.
func (l *Layout) Sources() string {
	return filepath.Join(l.root, filepath.FromSlash(l.sourcesDir))
}

// Dist returns the shared output directory for produced wheel files.
func (l *Layout) Dist() string {
	return filepath.Join(l.root, filepath.FromSlash(l.distDir))
}

// PackageDir returns the source directory of one sub-project.
func (l *Layout) PackageDir(name string) string {
	return filepath.Join(l.Sources(), name)
}

// EnsureDist creates the shared output directory if it does not exist.
// Idempotent; the only failure mode is an unreadable or unwritable filesystem,
// which is fatal to the whole run.
func (l *Layout) EnsureDist() error {
	dist := l.Dist()
	if err := os.MkdirAll(dist, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	slog.Debug("Output directory ready", logfields.Path(dist))
	return nil
}
