package plugin

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingPlugin struct {
	name   string
	calls  *[]string
	before error
	after  error
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) BeforeBuild(_ context.Context, bctx *Context) error {
	*p.calls = append(*p.calls, p.name+":before")
	bctx.Vars["touched_by_"+p.name] = true
	return p.before
}

func (p *recordingPlugin) AfterBuild(_ *Context) error {
	*p.calls = append(*p.calls, p.name+":after")
	return p.after
}

// hookless is a plugin with no lifecycle hooks at all.
type hookless struct{}

func (hookless) Name() string { return "hookless" }

func newTestContext() *Context {
	return &Context{Vars: map[string]any{}, Logger: slog.Default()}
}

func TestRunBeforeBuild_RunsHooksInDeclaredOrder(t *testing.T) {
	var calls []string
	runner := NewRunner([]Plugin{
		&recordingPlugin{name: "first", calls: &calls},
		hookless{},
		&recordingPlugin{name: "second", calls: &calls},
	})

	require.NoError(t, runner.RunBeforeBuild(context.Background(), newTestContext()))
	require.Equal(t, []string{"first:before", "second:before"}, calls)
}

func TestRunBeforeBuild_LaterHooksObserveEarlierMutations(t *testing.T) {
	var calls []string
	bctx := newTestContext()
	runner := NewRunner([]Plugin{&recordingPlugin{name: "writer", calls: &calls}})

	require.NoError(t, runner.RunBeforeBuild(context.Background(), bctx))
	require.Equal(t, true, bctx.Vars["touched_by_writer"])
}

func TestRunBeforeBuild_ErrorAbortsRemainingHooks(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	runner := NewRunner([]Plugin{
		&recordingPlugin{name: "first", calls: &calls, before: boom},
		&recordingPlugin{name: "second", calls: &calls},
	})

	err := runner.RunBeforeBuild(context.Background(), newTestContext())
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"first:before"}, calls)
}

func TestRunAfterBuild_RunsHooksInDeclaredOrderAndPropagatesError(t *testing.T) {
	var calls []string
	boom := errors.New("after boom")
	runner := NewRunner([]Plugin{
		&recordingPlugin{name: "first", calls: &calls},
		&recordingPlugin{name: "second", calls: &calls, after: boom},
		&recordingPlugin{name: "third", calls: &calls},
	})

	err := runner.RunAfterBuild(newTestContext())
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"first:after", "second:after"}, calls)
}
