package plugin

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

func init() {
	if err := Register("gitinfo", func() Plugin { return &GitInfo{} }); err != nil {
		panic(err)
	}
}

// GitInfo is a builtin before-hook that resolves the source tree's HEAD and
// exposes it to templates under the gitInfo global, so sites can render
// revision footers. A source tree outside any repository is skipped quietly.
type GitInfo struct{}

// Name implements Plugin.
func (*GitInfo) Name() string { return "gitinfo" }

// BeforeBuild implements BeforeBuildHook.
func (*GitInfo) BeforeBuild(_ context.Context, bctx *Context) error {
	repo, err := git.PlainOpenWithOptions(bctx.SourceDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			bctx.Logger.Debug("gitinfo: source tree is not a git repository, skipping")
			return nil
		}
		return fmt.Errorf("gitinfo: open repository at %s: %w", bctx.SourceDir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("gitinfo: resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("gitinfo: read commit %s: %w", head.Hash(), err)
	}

	bctx.Vars["gitInfo"] = map[string]any{
		"commit":      head.Hash().String(),
		"shortCommit": head.Hash().String()[:7],
		"branch":      head.Name().Short(),
		"commitTime":  commit.Author.When,
	}
	return nil
}
