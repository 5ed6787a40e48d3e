package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/geniustechspace/wheelhouse/internal/artifacts"
	"github.com/geniustechspace/wheelhouse/internal/build"
	"github.com/geniustechspace/wheelhouse/internal/pybuild"
)

func TestProgressRendering(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.RunStarted("/ws/dist/python")
	p.PackageStarted("core")
	p.PackageFinished(pybuild.Outcome{Package: "core", Status: pybuild.StatusSuccess})
	p.PackageSkipped("idp")
	p.PackageFinished(pybuild.Outcome{
		Package:    "notification",
		Status:     pybuild.StatusFailure,
		Diagnostic: "missing dependency X",
	})

	out := buf.String()
	for _, want := range []string{
		"Building Python Packages for Distribution",
		"Output directory: /ws/dist/python",
		"Building core...",
		"✓ core built successfully",
		"Skipping idp (no pyproject.toml)",
		"✗ notification build failed:",
		"missing dependency X",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	// Writer is not a TTY: no ANSI escapes may leak in.
	if strings.Contains(out, "\x1b[") {
		t.Error("unexpected ANSI escape sequences in non-TTY output")
	}
}

func TestSummaryRendering(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &build.Result{
		Succeeded: []pybuild.Outcome{
			{Package: "core", Status: pybuild.StatusSuccess},
			{Package: "idp", Status: pybuild.StatusSuccess},
		},
		Failed: []pybuild.Outcome{
			{Package: "notification", Status: pybuild.StatusFailure, Diagnostic: "missing dependency X"},
		},
		Artifacts: []artifacts.Wheel{
			{Name: "core-0.1.0-py3-none-any.whl", Size: 14336},
			{Name: "idp-0.1.0-py3-none-any.whl", Size: 9216},
		},
	}

	p.Summary(result, "/ws/dist/python")
	out := buf.String()

	for _, want := range []string{
		"Build Summary",
		"Successfully built 2 package(s):",
		"  ✓ core",
		"  ✓ idp",
		"Failed to build 1 package(s):",
		"  ✗ notification",
		"Built wheel files:",
		"core-0.1.0-py3-none-any.whl",
		"Installation command:",
		"pip install /ws/dist/python/*.whl",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryEmptyRun(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Summary(&build.Result{}, "/ws/dist/python")
	out := buf.String()

	if strings.Contains(out, "Successfully built") {
		t.Error("empty run should not render a success list")
	}
	if strings.Contains(out, "Installation command") {
		t.Error("empty run should not render an install hint")
	}
	if !strings.Contains(out, "Build Summary") {
		t.Error("summary banner should always render")
	}
}

func TestPrinterImplementsObserver(t *testing.T) {
	var _ build.Observer = NewPrinter(&bytes.Buffer{})
}
