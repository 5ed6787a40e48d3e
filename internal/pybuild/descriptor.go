package pybuild

import (
	"os"
	"path/filepath"
)

// DescriptorFile is the build descriptor whose presence marks a package
// directory as buildable.
const DescriptorFile = "pyproject.toml"

// Eligible reports whether dir is a buildable package: the directory exists
// and contains the build descriptor. Absence is not an error, the package is
// simply not applicable for this run.
func Eligible(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	if _, err := os.Stat(filepath.Join(dir, DescriptorFile)); err != nil {
		return false
	}
	return true
}
