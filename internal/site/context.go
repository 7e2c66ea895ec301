// Package site orchestrates the build: it indexes content, runs plugin
// hooks, renders page and content templates, and writes the output tree
// through an explicit staged pipeline.
package site

import (
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/plugin"
	"git.home.luguber.info/inful/sitegen/internal/render"
)

// BuildContext is the per-build, read-mostly state. Constructed once at
// build start and passed by reference to every stage; after construction
// only the index stage and before-hooks mutate it.
type BuildContext struct {
	BuildID string

	SourceDir  string
	ContentDir string
	OutputDir  string

	// TemplateExt marks page template files under SourceDir.
	TemplateExt string

	// ContentTemplatePath locates the single shared content template;
	// ContentTemplate holds its raw text when HasContentTemplate is true.
	// Without it, content building is skipped entirely.
	ContentTemplatePath string
	ContentTemplate     string
	HasContentTemplate  bool

	// Vars is the global variable surface available in every render. The
	// index stage adds the content collections; before-hooks may add more.
	Vars map[string]any

	Index *content.Index

	Verbosity config.Verbosity
}

// NewBuildContext resolves configuration and filesystem state into a build
// context. A missing content template is not an error.
func NewBuildContext(cfg *config.Config, buildID string) (*BuildContext, error) {
	bctx := &BuildContext{
		BuildID:             buildID,
		SourceDir:           cfg.Source,
		ContentDir:          cfg.Content,
		OutputDir:           cfg.Output,
		TemplateExt:         cfg.TemplateExtension,
		ContentTemplatePath: cfg.ContentTemplatePath(),
		Vars:                make(map[string]any, len(cfg.Vars)+2),
		Verbosity:           cfg.Logging.Verbosity,
	}
	for k, v := range cfg.Vars {
		bctx.Vars[k] = v
	}

	raw, err := os.ReadFile(bctx.ContentTemplatePath)
	switch {
	case err == nil:
		bctx.ContentTemplate = string(raw)
		bctx.HasContentTemplate = true
	case os.IsNotExist(err):
		// No shared content template: content directories may exist but the
		// render-content stage becomes a no-op.
	default:
		return nil, fmt.Errorf("read content template %s: %w", bctx.ContentTemplatePath, err)
	}

	return bctx, nil
}

// BuildContentIndex scans the content root and publishes the contentArray
// and contentObj collections into the global variable surface. Called once
// per build, before any render.
func (b *BuildContext) BuildContentIndex() (*content.Index, error) {
	idx, err := content.BuildIndex(b.ContentDir)
	if err != nil {
		return nil, err
	}
	b.Index = idx
	b.Vars["contentArray"] = idx.Ordered
	b.Vars["contentObj"] = idx.ByPath
	return idx, nil
}

// PluginContext exposes the mutable build state to plugin hooks. The Vars
// map is shared, so hook mutations are observed by later hooks and by every
// subsequent render.
func (b *BuildContext) PluginContext() *plugin.Context {
	return &plugin.Context{
		BuildID:    b.BuildID,
		SourceDir:  b.SourceDir,
		ContentDir: b.ContentDir,
		OutputDir:  b.OutputDir,
		Vars:       b.Vars,
		Logger:     slog.Default(),
	}
}

// view assembles the ephemeral per-render variable set: the globals plus
// render-site overrides.
func (b *BuildContext) view(overrides map[string]any) render.View {
	return render.NewView(b.Vars, overrides)
}
