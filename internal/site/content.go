package site

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/fsutil"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/render"
	"git.home.luguber.info/inful/sitegen/internal/rewrite"
)

// renderContent renders the shared content template once per indexed item.
// Without a content template the whole stage is a no-op, not an error.
func (bs *BuildState) renderContent(ctx context.Context) error {
	b := bs.Context
	if !b.HasContentTemplate {
		slog.Info("No content template found, skipping content build",
			logfields.Path(b.ContentTemplatePath))
		return nil
	}

	for _, rec := range b.Index.Ordered {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageNameRenderContent, ctx.Err())
		default:
		}
		if err := bs.buildContentItem(rec); err != nil {
			return newFatalStageError(StageNameRenderContent, err)
		}
		bs.Report.ContentItems++
	}
	slog.Info("Content items rendered", logfields.Count(bs.Report.ContentItems))
	return nil
}

// buildContentItem renders one item into <output>/<dir>/index.html and
// copies its assets. The asset copy always follows the HTML write.
func (bs *BuildState) buildContentItem(rec *content.MetaRecord) error {
	b := bs.Context
	destDir := filepath.Join(b.OutputDir, filepath.FromSlash(rec.Path))
	if err := fsutil.EnsureDir(destDir); err != nil {
		return err
	}

	view := b.view(map[string]any{
		"path":       rec.Path,
		"root":       rec.RootPrefix,
		"rootPrefix": rec.RootPrefix,
		"meta":       rec.Fields,
	})

	html, err := bs.Renderer.RenderTemplate(b.ContentTemplate, view, render.Options{
		SourcePath: b.ContentTemplatePath,
		BaseDir:    filepath.Dir(b.ContentTemplatePath),
		Importer:   render.NewImporter(bs.Renderer, b.ContentDir, view),
	})
	if err != nil {
		return err
	}

	// Nested output sits deeper than the template author assumed when
	// writing root-relative references; compensate with one up-level marker
	// per extra directory. Top-level items stay byte-identical.
	if depth := rewrite.Depth(rec.Path); depth > 1 {
		html, err = rewrite.RewriteRelative(html, rewrite.RootPrefix(depth-1))
		if err != nil {
			return err
		}
	}

	outPath := filepath.Join(destDir, "index.html")
	if err := os.WriteFile(outPath, []byte(html), 0644); err != nil {
		return err
	}
	slog.Debug("Content item written", logfields.Item(rec.Path), logfields.Path(outPath))

	assets := filepath.Join(b.ContentDir, filepath.FromSlash(rec.Path), "assets")
	if fsutil.DirExists(assets) {
		if err := fsutil.CopyDir(assets, filepath.Join(destDir, "assets")); err != nil {
			return err
		}
		slog.Debug("Assets copied", logfields.Item(rec.Path))
	}
	return nil
}
