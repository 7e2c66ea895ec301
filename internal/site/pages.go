package site

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/fsutil"
	"git.home.luguber.info/inful/sitegen/internal/logfields"
	"git.home.luguber.info/inful/sitegen/internal/render"
	"git.home.luguber.info/inful/sitegen/internal/rewrite"
)

// LandingPage is the page whose output sits at the site root and receives
// prefetch injection.
const LandingPage = "index"

// renderPages discovers page templates under the source root and renders
// each one. Each page runs to completion, including its write, before the
// next begins.
func (bs *BuildState) renderPages(ctx context.Context) error {
	pages, err := bs.discoverPages()
	if err != nil {
		return newFatalStageError(StageNameRenderPages, err)
	}

	for _, page := range pages {
		select {
		case <-ctx.Done():
			return newCanceledStageError(StageNameRenderPages, ctx.Err())
		default:
		}
		if err := bs.buildPage(page); err != nil {
			return newFatalStageError(StageNameRenderPages, err)
		}
		bs.Report.Pages++
	}
	slog.Info("Pages rendered", logfields.Count(bs.Report.Pages))
	return nil
}

// discoverPages walks the source root for template files, excluding the
// shared content template and anything under the content root. Returned
// paths are slash-separated and extension-free.
func (bs *BuildState) discoverPages() ([]string, error) {
	b := bs.Context
	contentTemplate := filepath.Clean(b.ContentTemplatePath)
	contentDir := filepath.Clean(b.ContentDir)

	var pages []string
	err := filepath.WalkDir(b.SourceDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if filepath.Clean(p) == contentDir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(p) != b.TemplateExt || filepath.Clean(p) == contentTemplate {
			return nil
		}
		rel, err := filepath.Rel(b.SourceDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(strings.TrimSuffix(rel, b.TemplateExt))
		pages = append(pages, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// buildPage renders one page template into <output>/<page>.html.
func (bs *BuildState) buildPage(page string) error {
	b := bs.Context
	templatePath := filepath.Join(b.SourceDir, filepath.FromSlash(page)+b.TemplateExt)

	raw, err := os.ReadFile(templatePath)
	if err != nil {
		return &PageTemplateError{Page: page, Err: err}
	}
	text := string(raw)

	// The landing page declares prefetch hints for whatever external
	// resources the content template references, without the page author
	// duplicating them.
	if page == LandingPage && b.HasContentTemplate {
		refs := rewrite.ExtractExternalRefs(b.ContentTemplate)
		text = rewrite.InjectPrefetch(text, rewrite.PrefetchBlock(refs))
	}

	// Depth of the page's containing directory below the source root: the
	// page's own file name does not add a level.
	root := rewrite.RootPrefix(rewrite.Depth(page) - 1)
	view := b.view(map[string]any{
		"root": root,
		"path": page,
	})

	html, err := bs.Renderer.RenderTemplate(text, view, render.Options{
		SourcePath: templatePath,
		BaseDir:    filepath.Dir(templatePath),
		Importer:   render.NewImporter(bs.Renderer, b.ContentDir, view),
	})
	if err != nil {
		return err
	}

	outPath := filepath.Join(b.OutputDir, filepath.FromSlash(page)+".html")
	if err := fsutil.EnsureDir(filepath.Dir(outPath)); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(html), 0644); err != nil {
		return err
	}
	slog.Debug("Page written", logfields.Page(page), logfields.Path(outPath))
	return nil
}
