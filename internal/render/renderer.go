// Package render adapts the template evaluator and the markdown converter to
// the build pipeline. Templates are authored by the site owner and evaluated
// without escaping or sandboxing; markdown bodies pass through the evaluator
// first so they may embed the same expression syntax as templates.
package render

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// View is the variable surface of a single render: a copy of the global
// variables plus render-site-specific overrides. Discarded after the render
// returns.
type View map[string]any

// NewView copies globals and overlays the render-site overrides.
func NewView(globals map[string]any, overrides map[string]any) View {
	view := make(View, len(globals)+len(overrides))
	for k, v := range globals {
		view[k] = v
	}
	for k, v := range overrides {
		view[k] = v
	}
	return view
}

// Options configure a single render call.
type Options struct {
	// SourcePath tags errors with the template or markdown origin.
	SourcePath string

	// BaseDir resolves relative include paths inside the template.
	BaseDir string

	// Importer backs the importContent template function. Nil disables it.
	Importer *Importer
}

// Renderer wraps the external evaluator and converter. Both render calls are
// deterministic functions of their inputs; failures propagate tagged with the
// source path, with no retries.
type Renderer struct {
	md goldmark.Markdown
}

// New constructs a Renderer. The converter accepts raw embedded HTML and
// generates anchor targets for headings.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// RenderTemplate evaluates templateText against view.
func (r *Renderer) RenderTemplate(templateText string, view View, opts Options) (string, error) {
	tmpl, err := template.New(filepath.Base(opts.SourcePath)).
		Option("missingkey=zero").
		Funcs(r.funcs(view, opts)).
		Parse(templateText)
	if err != nil {
		return "", newTemplateError(opts.SourcePath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(view)); err != nil {
		return "", newTemplateError(opts.SourcePath, err)
	}
	return buf.String(), nil
}

// RenderMarkdown evaluates markdownText as a template against view, then
// converts the result to HTML.
func (r *Renderer) RenderMarkdown(markdownText string, view View, opts Options) (string, error) {
	substituted, err := r.RenderTemplate(markdownText, view, opts)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(substituted), &buf); err != nil {
		return "", newMarkdownError(opts.SourcePath, err)
	}
	return buf.String(), nil
}

// funcs builds the function surface available to templates. include resolves
// against the render's base directory; importContent is present only when an
// Importer was bound.
func (r *Renderer) funcs(view View, opts Options) template.FuncMap {
	fm := template.FuncMap{
		"include": func(rel string) (string, error) {
			path := filepath.Join(opts.BaseDir, filepath.FromSlash(rel))
			raw, err := os.ReadFile(path)
			if err != nil {
				return "", newTemplateError(path, err)
			}
			sub := opts
			sub.SourcePath = path
			sub.BaseDir = filepath.Dir(path)
			return r.RenderTemplate(string(raw), view, sub)
		},
	}
	if opts.Importer != nil {
		fm["importContent"] = opts.Importer.Import
	}
	return fm
}
