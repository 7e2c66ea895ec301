package site

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/plugin"
	"git.home.luguber.info/inful/sitegen/internal/render"
)

// Builder ties the pipeline together for one build invocation.
type Builder struct {
	cfg      *config.Config
	plugins  []plugin.Plugin
	renderer *render.Renderer
}

// NewBuilder creates a builder over the resolved configuration and the fixed
// ordered plugin list.
func NewBuilder(cfg *config.Config, plugins []plugin.Plugin) *Builder {
	return &Builder{cfg: cfg, plugins: plugins, renderer: render.New()}
}

// Run executes the build pipeline: index, before-hooks, render-pages,
// render-content, after-hooks. It halts on the first fatal error; output
// already written stays on disk. The report is returned even on failure.
func (b *Builder) Run(ctx context.Context, buildID string) (*BuildReport, error) {
	bctx, err := NewBuildContext(b.cfg, buildID)
	if err != nil {
		return nil, err
	}

	bs := newBuildState(bctx, b.renderer, plugin.NewRunner(b.plugins))
	slog.Info("Starting site build",
		logfields.BuildID(buildID),
		logfields.Path(bctx.SourceDir),
		logfields.Count(len(b.plugins)))

	err = runStages(ctx, bs, []struct {
		name string
		fn   Stage
	}{
		{StageNameIndex, stageIndex},
		{StageNameBeforeHooks, stageBeforeHooks},
		{StageNameRenderPages, stageRenderPages},
		{StageNameRenderContent, stageRenderContent},
		{StageNameAfterHooks, stageAfterHooks},
	})

	bs.Report.Finished = time.Now()
	if err != nil {
		slog.Error("Site build failed", logfields.BuildID(buildID), logfields.Error(err))
		return bs.Report, err
	}
	slog.Info("Site build finished",
		logfields.BuildID(buildID),
		slog.Int("pages", bs.Report.Pages),
		slog.Int("content_items", bs.Report.ContentItems),
		logfields.DurationMS(float64(bs.Report.Finished.Sub(bs.Report.Started).Microseconds())/1000))
	return bs.Report, nil
}
