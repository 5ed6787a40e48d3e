package artifacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestScanFindsWheelsSorted(t *testing.T) {
	dist := t.TempDir()

	files := map[string]int{
		"idp-0.1.0-py3-none-any.whl":  2048,
		"core-0.1.0-py3-none-any.whl": 1024,
		"notes.txt":                   10, // ignored: not a wheel
	}
	for name, size := range files {
		if err := os.WriteFile(filepath.Join(dist, name), make([]byte, size), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	// Subdirectories are ignored even with a wheel-like name.
	if err := os.MkdirAll(filepath.Join(dist, "junk.whl"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	wheels, err := Scan(dist)
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}

	if len(wheels) != 2 {
		t.Fatalf("got %d wheels, want 2", len(wheels))
	}
	if wheels[0].Name != "core-0.1.0-py3-none-any.whl" || wheels[1].Name != "idp-0.1.0-py3-none-any.whl" {
		t.Errorf("wheels not sorted by name: %v", wheels)
	}
	if wheels[0].Size != 1024 {
		t.Errorf("core wheel size = %d, want 1024", wheels[0].Size)
	}
}

func TestScanMissingDir(t *testing.T) {
	wheels, err := Scan(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Scan() on missing dir failed: %v", err)
	}
	if len(wheels) != 0 {
		t.Errorf("expected empty listing, got %v", wheels)
	}
}

func TestHumanSize(t *testing.T) {
	w := Wheel{Name: "core-0.1.0-py3-none-any.whl", Size: 2_048_000}
	if got := w.HumanSize(); !strings.Contains(got, "MB") {
		t.Errorf("HumanSize() = %q, want megabyte rendering", got)
	}
}

func TestInstallHint(t *testing.T) {
	hint := InstallHint("/ws/dist/python")
	if !strings.HasPrefix(hint, "pip install ") || !strings.HasSuffix(hint, "*.whl") {
		t.Errorf("InstallHint() = %q", hint)
	}
}
