package rewrite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootPrefix_OneMarkerPerLevel(t *testing.T) {
	require.Equal(t, "", RootPrefix(0))
	require.Equal(t, "../", RootPrefix(1))
	require.Equal(t, "../../../", RootPrefix(3))
	require.Equal(t, "", RootPrefix(-1))
}

func TestDepth_CountsPathSegments(t *testing.T) {
	require.Equal(t, 0, Depth(""))
	require.Equal(t, 0, Depth("."))
	require.Equal(t, 1, Depth("posts"))
	require.Equal(t, 2, Depth("posts/a"))
	require.Equal(t, 3, Depth("a/b/c"))
}

func TestRewriteRelative_EmptyPrefix_ReturnsInputBytes(t *testing.T) {
	doc := `<html><body><img src="assets/x.png"></body></html>`

	out, err := RewriteRelative(doc, "")
	require.NoError(t, err)
	require.Equal(t, doc, out)
}

func TestRewriteRelative_PrefixesRootRelativeReferences(t *testing.T) {
	doc := `<html><head><link rel="stylesheet" href="css/site.css"></head>` +
		`<body><a href="about.html">about</a><img src="assets/x.png"></body></html>`

	out, err := RewriteRelative(doc, "../")
	require.NoError(t, err)
	require.Contains(t, out, `href="../css/site.css"`)
	require.Contains(t, out, `href="../about.html"`)
	require.Contains(t, out, `src="../assets/x.png"`)
}

func TestRewriteRelative_LeavesNonRootRelativeReferencesAlone(t *testing.T) {
	doc := `<html><body>` +
		`<a href="https://example.com/x">abs</a>` +
		`<a href="/rooted.html">rooted</a>` +
		`<a href="#section">frag</a>` +
		`<a href="../up.html">up</a>` +
		`<a href="mailto:a@b.c">mail</a>` +
		`</body></html>`

	out, err := RewriteRelative(doc, "../../")
	require.NoError(t, err)
	require.Contains(t, out, `href="https://example.com/x"`)
	require.Contains(t, out, `href="/rooted.html"`)
	require.Contains(t, out, `href="#section"`)
	require.Contains(t, out, `href="../up.html"`)
	require.Contains(t, out, `href="mailto:a@b.c"`)
}

func TestRewriteRelative_DotSlashReferencesArePrefixed(t *testing.T) {
	doc := `<html><body><img src="./pic.png"></body></html>`

	out, err := RewriteRelative(doc, "../")
	require.NoError(t, err)
	require.Contains(t, out, `src=".././pic.png"`)
}
