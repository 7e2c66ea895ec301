package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/plugin"
	"git.home.luguber.info/inful/sitegen/internal/render"
)

// Stage is a discrete unit of work in the site build.
type Stage func(ctx context.Context, bs *BuildState) error

// StageErrorKind enumerates structured stage error categories.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"    // Build must abort.
	StageErrorWarning  StageErrorKind = "warning"  // Non-fatal; record and continue.
	StageErrorCanceled StageErrorKind = "canceled" // Context cancellation.
)

// StageError is a structured error carrying category and underlying cause.
type StageError struct {
	Kind  StageErrorKind
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

func newFatalStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorFatal, Stage: stage, Err: err}
}
func newCanceledStageError(stage string, err error) *StageError {
	return &StageError{Kind: StageErrorCanceled, Stage: stage, Err: err}
}

// BuildState carries mutable state and timings across stages.
type BuildState struct {
	Context  *BuildContext
	Renderer *render.Renderer
	Runner   *plugin.Runner
	Report   *BuildReport
	start    time.Time
}

// BuildReport summarizes one build invocation.
type BuildReport struct {
	BuildID        string
	Started        time.Time
	Finished       time.Time
	Pages          int
	ContentItems   int
	StageDurations map[string]time.Duration
	Warnings       []error
}

func newBuildState(bctx *BuildContext, renderer *render.Renderer, runner *plugin.Runner) *BuildState {
	now := time.Now()
	return &BuildState{
		Context:  bctx,
		Renderer: renderer,
		Runner:   runner,
		Report: &BuildReport{
			BuildID:        bctx.BuildID,
			Started:        now,
			StageDurations: make(map[string]time.Duration),
		},
		start: now,
	}
}

// runStages executes stages in order, recording timing and stopping on the
// first fatal error. Output already written stays on disk.
func runStages(ctx context.Context, bs *BuildState, stages []struct {
	name string
	fn   Stage
}) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			return newCanceledStageError(st.name, ctx.Err())
		default:
		}

		t0 := time.Now()
		err := st.fn(ctx, bs)
		dur := time.Since(t0)
		bs.Report.StageDurations[st.name] = dur
		slog.Debug("Stage finished",
			logfields.Stage(st.name),
			logfields.DurationMS(float64(dur.Microseconds())/1000))

		if err == nil {
			continue
		}
		var se *StageError
		if !errors.As(err, &se) {
			// Wrap unknown errors as fatal by default.
			se = newFatalStageError(st.name, err)
		}
		switch se.Kind {
		case StageErrorWarning:
			bs.Report.Warnings = append(bs.Report.Warnings, se)
			continue
		default:
			return se
		}
	}
	return nil
}

// stageIndex builds the content index once, before any render, and publishes
// the collections into the global variable surface.
func stageIndex(_ context.Context, bs *BuildState) error {
	idx, err := bs.Context.BuildContentIndex()
	if err != nil {
		return newFatalStageError(StageNameIndex, err)
	}
	slog.Info("Content indexed", logfields.Count(len(idx.Ordered)))
	return nil
}

// stageBeforeHooks runs plugin before-hooks sequentially; a failing hook
// aborts the build since later stages depend on context it may have set up.
func stageBeforeHooks(ctx context.Context, bs *BuildState) error {
	return bs.Runner.RunBeforeBuild(ctx, bs.Context.PluginContext())
}

func stageRenderPages(ctx context.Context, bs *BuildState) error {
	return bs.renderPages(ctx)
}

func stageRenderContent(ctx context.Context, bs *BuildState) error {
	return bs.renderContent(ctx)
}

// stageAfterHooks runs plugin after-hooks; failures propagate but occur
// after output has been written.
func stageAfterHooks(_ context.Context, bs *BuildState) error {
	return bs.Runner.RunAfterBuild(bs.Context.PluginContext())
}

// Stage name constants, in pipeline order.
const (
	StageNameIndex         = "index"
	StageNameBeforeHooks   = "before_hooks"
	StageNameRenderPages   = "render_pages"
	StageNameRenderContent = "render_content"
	StageNameAfterHooks    = "after_hooks"
)
