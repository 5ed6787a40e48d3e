// Package artifacts discovers produced wheel files in the shared output
// directory. Discovery is post-hoc: wheels are correlated to packages by
// naming convention only, never tracked individually.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// WheelExt is the distributable artifact extension.
const WheelExt = ".whl"

// Wheel is one produced distributable file.
type Wheel struct {
	Name string
	Size int64
}

// HumanSize renders the byte size in human-readable form (e.g. "12 kB").
func (w Wheel) HumanSize() string {
	return humanize.Bytes(uint64(w.Size)) //nolint:gosec // sizes are non-negative
}

// Scan lists wheel files in distDir sorted by name. A missing directory
// yields an empty listing, not an error: a run that built nothing has
// nothing to report.
func Scan(distDir string) ([]Wheel, error) {
	entries, err := os.ReadDir(distDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan output directory: %w", err)
	}

	var wheels []Wheel
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), WheelExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		wheels = append(wheels, Wheel{Name: entry.Name(), Size: info.Size()})
	}

	sort.Slice(wheels, func(i, j int) bool { return wheels[i].Name < wheels[j].Name })
	return wheels, nil
}

// InstallHint returns the example installation instruction for the output
// directory.
func InstallHint(distDir string) string {
	return fmt.Sprintf("pip install %s", filepath.Join(distDir, "*"+WheelExt))
}
