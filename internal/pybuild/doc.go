// Package pybuild implements the per-package build mechanics: eligibility
// checks against the build descriptor, stale-artifact isolation before each
// build, and invocation of the external PEP 517 build frontend
// (python -m build) as a child process.
//
// A failing build is not an error here. The executor folds non-zero exits and
// unstartable processes alike into an Outcome with captured diagnostics, so
// the orchestrator's loop stays a plain sequential walk with no exception
// shaped branching.
package pybuild
