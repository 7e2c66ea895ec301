package site

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitegen/internal/plugin"
	"git.home.luguber.info/inful/sitegen/internal/render"
)

func newTestState() *BuildState {
	bctx := &BuildContext{Vars: map[string]any{}}
	return newBuildState(bctx, render.New(), plugin.NewRunner(nil))
}

func stageList(stages ...struct {
	name string
	fn   Stage
}) []struct {
	name string
	fn   Stage
} {
	return stages
}

func namedStage(name string, fn Stage) struct {
	name string
	fn   Stage
} {
	return struct {
		name string
		fn   Stage
	}{name, fn}
}

func TestRunStages_HaltsOnFirstFatalError(t *testing.T) {
	boom := errors.New("boom")
	var ran []string

	record := func(name string, err error) Stage {
		return func(context.Context, *BuildState) error {
			ran = append(ran, name)
			return err
		}
	}

	bs := newTestState()
	err := runStages(context.Background(), bs, stageList(
		namedStage("one", record("one", nil)),
		namedStage("two", record("two", boom)),
		namedStage("three", record("three", nil)),
	))

	require.Error(t, err)
	require.Equal(t, []string{"one", "two"}, ran)

	var se *StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, StageErrorFatal, se.Kind)
	require.Equal(t, "two", se.Stage)
	require.ErrorIs(t, err, boom)
}

func TestRunStages_WarningsContinue(t *testing.T) {
	var ran []string

	bs := newTestState()
	err := runStages(context.Background(), bs, stageList(
		namedStage("warn", func(context.Context, *BuildState) error {
			ran = append(ran, "warn")
			return &StageError{Kind: StageErrorWarning, Stage: "warn", Err: errors.New("minor")}
		}),
		namedStage("after", func(context.Context, *BuildState) error {
			ran = append(ran, "after")
			return nil
		}),
	))

	require.NoError(t, err)
	require.Equal(t, []string{"warn", "after"}, ran)
	require.Len(t, bs.Report.Warnings, 1)
}

func TestRunStages_CanceledContextStopsBeforeNextStage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	bs := newTestState()
	err := runStages(ctx, bs, stageList(
		namedStage("one", func(context.Context, *BuildState) error {
			cancel()
			return nil
		}),
		namedStage("two", func(context.Context, *BuildState) error {
			t.Fatal("stage two must not run after cancellation")
			return nil
		}),
	))

	require.Error(t, err)
	var se *StageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, StageErrorCanceled, se.Kind)
}

func TestRunStages_RecordsDurations(t *testing.T) {
	bs := newTestState()
	err := runStages(context.Background(), bs, stageList(
		namedStage("only", func(context.Context, *BuildState) error { return nil }),
	))

	require.NoError(t, err)
	require.Contains(t, bs.Report.StageDurations, "only")
}
