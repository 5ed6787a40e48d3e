package pybuild

import (
	"os"
	"path/filepath"
)

// defaultInterpreter is the PATH fallback when no venv or override applies.
const defaultInterpreter = "python3"

// Interpreter selects the Python interpreter for builds. Preference order:
// the sources directory's virtualenv if present, then the configured
// override, then python3 from PATH.
func Interpreter(sourcesDir, override string) string {
	venv := filepath.Join(sourcesDir, ".venv", "bin", "python")
	if _, err := os.Stat(venv); err == nil {
		return venv
	}
	if override != "" {
		return override
	}
	return defaultInterpreter
}
