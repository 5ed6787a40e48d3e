package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/geniustechspace/wheelhouse/internal/config"
)

func testConfig(root string) *config.Config {
	cfg := config.Default()
	cfg.Workspace.Root = root
	return cfg
}

func TestResolvePaths(t *testing.T) {
	root := t.TempDir()
	layout, err := Resolve(testConfig(root))
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if layout.Root() != root {
		t.Errorf("Root() = %q, want %q", layout.Root(), root)
	}
	if want := filepath.Join(root, "clients", "python"); layout.Sources() != want {
		t.Errorf("Sources() = %q, want %q", layout.Sources(), want)
	}
	if want := filepath.Join(root, "dist", "python"); layout.Dist() != want {
		t.Errorf("Dist() = %q, want %q", layout.Dist(), want)
	}
	if want := filepath.Join(root, "clients", "python", "core"); layout.PackageDir("core") != want {
		t.Errorf("PackageDir(core) = %q, want %q", layout.PackageDir("core"), want)
	}
}

func TestEnsureDistIdempotent(t *testing.T) {
	root := t.TempDir()
	layout, err := Resolve(testConfig(root))
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if err := layout.EnsureDist(); err != nil {
		t.Fatalf("EnsureDist() failed: %v", err)
	}
	if _, err := os.Stat(layout.Dist()); err != nil {
		t.Fatalf("dist directory missing after EnsureDist: %v", err)
	}

	// Second call must be a no-op, not an error.
	if err := layout.EnsureDist(); err != nil {
		t.Fatalf("EnsureDist() second call failed: %v", err)
	}
}

func TestEnsureDistPreservesContents(t *testing.T) {
	root := t.TempDir()
	layout, err := Resolve(testConfig(root))
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if err := layout.EnsureDist(); err != nil {
		t.Fatalf("EnsureDist() failed: %v", err)
	}

	marker := filepath.Join(layout.Dist(), "existing-0.1.0-py3-none-any.whl")
	if err := os.WriteFile(marker, []byte("wheel"), 0o600); err != nil {
		t.Fatalf("write marker: %v", err)
	}

	// The dist dir is append-only across runs; EnsureDist must never clear it.
	if err := layout.EnsureDist(); err != nil {
		t.Fatalf("EnsureDist() failed: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("EnsureDist removed existing artifact: %v", err)
	}
}

func TestResolveRelativeRoot(t *testing.T) {
	layout, err := Resolve(testConfig("."))
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if !filepath.IsAbs(layout.Root()) {
		t.Errorf("Root() should be absolute, got %q", layout.Root())
	}
}
