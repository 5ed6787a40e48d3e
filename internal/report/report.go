// Package report renders run progress and the final summary for humans.
//
// Rendering is pure presentation: nothing here influences control flow or the
// run result. Output mirrors the workspace's original build script — colored
// section banners, immediate per-package progress with failure diagnostics,
// and a closing summary with the wheel listing and install hint.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/geniustechspace/wheelhouse/internal/artifacts"
	"github.com/geniustechspace/wheelhouse/internal/build"
	"github.com/geniustechspace/wheelhouse/internal/pybuild"
)

const rulerWidth = 70

// Printer writes human-readable progress and summaries to a single writer.
// It implements build.Observer. Color is enabled only when the writer is a
// terminal; any other writer gets plain text.
type Printer struct {
	w     io.Writer
	blue  *color.Color
	green *color.Color
	red   *color.Color
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{
		w:     w,
		blue:  color.New(color.FgBlue),
		green: color.New(color.FgGreen),
		red:   color.New(color.FgRed),
	}
	if isTerminal(w) {
		p.blue.EnableColor()
		p.green.EnableColor()
		p.red.EnableColor()
	} else {
		p.blue.DisableColor()
		p.green.DisableColor()
		p.red.DisableColor()
	}
	return p
}

// isTerminal reports whether w is a TTY that supports colors.
// NO_COLOR is honored via the color package's global detection.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Section renders a banner delimited by ruler lines.
func (p *Printer) Section(msg string) {
	ruler := strings.Repeat("=", rulerWidth)
	fmt.Fprintln(p.w)
	p.blue.Fprintln(p.w, ruler)
	p.blue.Fprintln(p.w, msg)
	p.blue.Fprintln(p.w, ruler)
	fmt.Fprintln(p.w)
}

// RunStarted implements build.Observer.
func (p *Printer) RunStarted(distDir string) {
	p.Section("Building Python Packages for Distribution")
	fmt.Fprintf(p.w, "Output directory: %s\n\n", distDir)
}

// PackageSkipped implements build.Observer.
func (p *Printer) PackageSkipped(name string) {
	fmt.Fprintf(p.w, "Skipping %s (no %s)\n", name, pybuild.DescriptorFile)
}

// PackageStarted implements build.Observer.
func (p *Printer) PackageStarted(name string) {
	fmt.Fprintf(p.w, "Building %s...\n", name)
}

// PackageFinished implements build.Observer. Failure diagnostics are printed
// immediately, so they remain visible even if the run is interrupted before
// the summary.
func (p *Printer) PackageFinished(outcome pybuild.Outcome) {
	if outcome.OK() {
		p.green.Fprintf(p.w, "✓ %s built successfully\n", outcome.Package)
		return
	}
	p.red.Fprintf(p.w, "✗ %s build failed:\n", outcome.Package)
	fmt.Fprintln(p.w, outcome.Diagnostic)
}

// Summary renders the end-of-run report: success and failure name lists, the
// discovered wheel listing with sizes, and the installation hint.
func (p *Printer) Summary(result *build.Result, distDir string) {
	p.Section("Build Summary")

	if len(result.Succeeded) > 0 {
		p.green.Fprintf(p.w, "Successfully built %d package(s):\n", len(result.Succeeded))
		for _, o := range result.Succeeded {
			fmt.Fprintf(p.w, "  ✓ %s\n", o.Package)
		}
	}

	if len(result.Failed) > 0 {
		fmt.Fprintln(p.w)
		p.red.Fprintf(p.w, "Failed to build %d package(s):\n", len(result.Failed))
		for _, o := range result.Failed {
			fmt.Fprintf(p.w, "  ✗ %s\n", o.Package)
		}
	}

	if len(result.Artifacts) > 0 {
		fmt.Fprintln(p.w)
		p.blue.Fprintln(p.w, "Built wheel files:")
		for _, w := range result.Artifacts {
			fmt.Fprintf(p.w, "  %s (%s)\n", w.Name, w.HumanSize())
		}

		fmt.Fprintln(p.w)
		p.green.Fprintln(p.w, "Installation command:")
		fmt.Fprintf(p.w, "  %s\n", artifacts.InstallHint(distDir))
	}
}
