package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderTemplate_SubstitutesViewVariables(t *testing.T) {
	r := New()
	view := NewView(map[string]any{"siteName": "My Site"}, map[string]any{"root": "../"})

	out, err := r.RenderTemplate(`<a href="{{.root}}index.html">{{.siteName}}</a>`, view, Options{SourcePath: "page.tmpl"})
	require.NoError(t, err)
	require.Equal(t, `<a href="../index.html">My Site</a>`, out)
}

func TestRenderTemplate_InvalidSyntax_TaggedWithSourcePath(t *testing.T) {
	r := New()

	_, err := r.RenderTemplate(`{{ .broken`, NewView(nil, nil), Options{SourcePath: "bad.tmpl"})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTemplateRender)

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	require.Equal(t, "bad.tmpl", srcErr.Path)
}

func TestRenderMarkdown_AppliesTemplatePassThenConverts(t *testing.T) {
	r := New()
	view := NewView(map[string]any{"name": "world"}, nil)

	out, err := r.RenderMarkdown("# Hello World\n\nGreetings, {{.name}}.\n", view, Options{SourcePath: "body.md"})
	require.NoError(t, err)
	require.Contains(t, out, `id="hello-world"`)
	require.Contains(t, out, "Greetings, world.")
}

func TestRenderMarkdown_RawEmbeddedHTMLPreserved(t *testing.T) {
	r := New()

	out, err := r.RenderMarkdown("before\n\n<div class=\"raw\">kept</div>\n", NewView(nil, nil), Options{SourcePath: "body.md"})
	require.NoError(t, err)
	require.Contains(t, out, `<div class="raw">kept</div>`)
}

func TestImporter_RendersMarkdownUnderContentRoot(t *testing.T) {
	contentRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(contentRoot, "intro.md"), []byte("# Intro\n\nHi {{.who}}.\n"), 0644))

	r := New()
	view := NewView(map[string]any{"who": "reader"}, nil)
	importer := NewImporter(r, contentRoot, view)

	out, err := r.RenderTemplate(`{{importContent "intro.md"}}`, view, Options{SourcePath: "page.tmpl", Importer: importer})
	require.NoError(t, err)
	require.Contains(t, out, `id="intro"`)
	require.Contains(t, out, "Hi reader.")
}

func TestImporter_MissingFile_ReturnsMarkdownError(t *testing.T) {
	r := New()
	importer := NewImporter(r, t.TempDir(), NewView(nil, nil))

	_, err := importer.Import("missing.md")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMarkdownParse)
}

func TestRenderTemplate_IncludeResolvesAgainstBaseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partial.tmpl"), []byte("partial for {{.who}}"), 0644))

	r := New()
	view := NewView(map[string]any{"who": "tests"}, nil)

	out, err := r.RenderTemplate(`<p>{{include "partial.tmpl"}}</p>`, view, Options{SourcePath: "page.tmpl", BaseDir: dir})
	require.NoError(t, err)
	require.Equal(t, "<p>partial for tests</p>", out)
}
