// Package plugin lets external code observe the build lifecycle. A plugin is
// a named value optionally implementing before- and after-build hooks; the
// configured plugin list resolves once at build start into a fixed ordered
// slice of instances.
package plugin

import (
	"context"
	"log/slog"
)

// Plugin identifies a plugin. Hook behavior is added through the optional
// interfaces below.
type Plugin interface {
	Name() string
}

// BeforeBuildHook runs before any page or content render. The hook may
// mutate bctx (for example inject additional global variables); later hooks
// and all subsequent renders observe those mutations. An error aborts the
// entire build.
type BeforeBuildHook interface {
	BeforeBuild(ctx context.Context, bctx *Context) error
}

// AfterBuildHook runs after all output has been written. An error still
// propagates, but written output stays on disk.
type AfterBuildHook interface {
	AfterBuild(bctx *Context) error
}

// Context is the mutable build state handed to hooks.
type Context struct {
	// BuildID uniquely identifies this build.
	BuildID string

	// SourceDir, ContentDir and OutputDir are the resolved roots.
	SourceDir  string
	ContentDir string
	OutputDir  string

	// Vars is the shared global variable set read by every render. Hooks
	// mutate it in place.
	Vars map[string]any

	// Logger provides structured logging for hook diagnostics.
	Logger *slog.Logger
}
