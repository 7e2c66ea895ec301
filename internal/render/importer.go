package render

import (
	"os"
	"path/filepath"
)

// Importer is the importContent capability: one operation reading a markdown
// file under the content root, applying template substitution with the bound
// view, and converting the result to HTML. Constructed once per render and
// handed to the evaluator's function namespace.
type Importer struct {
	renderer    *Renderer
	contentRoot string
	view        View
}

// NewImporter binds an Importer to the content root and the current view.
func NewImporter(r *Renderer, contentRoot string, view View) *Importer {
	return &Importer{renderer: r, contentRoot: contentRoot, view: view}
}

// Import reads the markdown file at relPath below the content root and
// returns its rendered HTML.
func (im *Importer) Import(relPath string) (string, error) {
	path := filepath.Join(im.contentRoot, filepath.FromSlash(relPath))
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", newMarkdownError(path, err)
	}
	return im.renderer.RenderMarkdown(string(raw), im.view, Options{
		SourcePath: path,
		BaseDir:    filepath.Dir(path),
		Importer:   im,
	})
}
