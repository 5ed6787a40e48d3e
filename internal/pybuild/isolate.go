package pybuild

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/geniustechspace/wheelhouse/internal/logfields"
)

// Isolator removes stale build state from a package directory before a
// rebuild, so artifacts from a previous version or failed attempt can never
// leak into the new wheel.
type Isolator struct {
	namespace string
}

// NewIsolator creates an Isolator. namespace is the distribution namespace
// prefix used to derive the normalized egg-info directory name
// (<namespace>_<package>.egg-info).
func NewIsolator(namespace string) *Isolator {
	return &Isolator{namespace: namespace}
}

// staleDirs enumerates the subdirectories of a package directory that hold
// prior build state.
func (i *Isolator) staleDirs(name string) []string {
	dirs := []string{
		"build",
		"dist",
		name + ".egg-info",
	}
	if i.namespace != "" {
		dirs = append(dirs, i.namespace+"_"+name+".egg-info")
	}
	return dirs
}

// Clean removes the stale build directories under pkgDir. Deletion is scoped
// strictly to pkgDir; sibling packages and the shared output directory are
// never touched. Missing directories are a no-op. A removal failure (e.g.
// permission denied) is returned so the caller can fold it into the package's
// build outcome.
func (i *Isolator) Clean(pkgDir, name string) error {
	for _, sub := range i.staleDirs(name) {
		target := filepath.Join(pkgDir, sub)
		if _, err := os.Stat(target); os.IsNotExist(err) {
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("failed to remove stale %s: %w", sub, err)
		}
		slog.Debug("Removed stale build state", logfields.Package(name), logfields.Path(target))
	}
	return nil
}
