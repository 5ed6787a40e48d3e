// Package workspace resolves the monorepo directory layout builds operate on.
//
// The layout is fixed relative to a single root: sub-project sources live
// under the sources directory (clients/python by default) and every produced
// wheel is collected into one shared dist directory (dist/python by default),
// flat across all sub-projects. Resolution itself never touches the
// filesystem; only EnsureDist mutates it, and idempotently.
package workspace
