package plugin

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
)

// Runner executes lifecycle hooks over a fixed ordered plugin list. Hooks
// run strictly sequentially in declared order; hook errors propagate
// unwrapped so their original diagnostics survive.
type Runner struct {
	plugins []Plugin
}

// NewRunner creates a runner over the resolved plugin list.
func NewRunner(plugins []Plugin) *Runner {
	return &Runner{plugins: plugins}
}

// RunBeforeBuild invokes each plugin's before-hook in order, waiting for one
// to complete before invoking the next. The first error aborts the build.
func (r *Runner) RunBeforeBuild(ctx context.Context, bctx *Context) error {
	for _, p := range r.plugins {
		hook, ok := p.(BeforeBuildHook)
		if !ok {
			continue
		}
		slog.Debug("Invoking plugin before-hook", logfields.Plugin(p.Name()))
		if err := hook.BeforeBuild(ctx, bctx); err != nil {
			return err
		}
	}
	return nil
}

// RunAfterBuild invokes each plugin's after-hook in order. Output already
// written stays on disk regardless of hook failures.
func (r *Runner) RunAfterBuild(bctx *Context) error {
	for _, p := range r.plugins {
		hook, ok := p.(AfterBuildHook)
		if !ok {
			continue
		}
		slog.Debug("Invoking plugin after-hook", logfields.Plugin(p.Name()))
		if err := hook.AfterBuild(bctx); err != nil {
			return err
		}
	}
	return nil
}
