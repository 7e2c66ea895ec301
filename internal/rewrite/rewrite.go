// Package rewrite keeps nested output internally consistent: it computes the
// root-relative prefix for a given directory depth and rewrites root-relative
// asset and link references in rendered HTML.
package rewrite

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// UpMarker is the single path segment used to address one level up.
const UpMarker = "../"

// RootPrefix returns the prefix addressing the output root from a file whose
// containing directory sits depth levels below it. Depth zero yields the
// empty string.
func RootPrefix(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(UpMarker, depth)
}

// Depth returns the number of path segments in a slash-separated relative
// path. The empty path and "." have depth zero.
func Depth(relPath string) int {
	relPath = strings.Trim(relPath, "/")
	if relPath == "" || relPath == "." {
		return 0
	}
	return strings.Count(relPath, "/") + 1
}

// rewritableAttrs maps element names to the attribute carrying a reference.
var rewritableAttrs = map[string]string{
	"a":      "href",
	"link":   "href",
	"area":   "href",
	"img":    "src",
	"script": "src",
	"source": "src",
	"audio":  "src",
	"video":  "src",
	"iframe": "src",
	"embed":  "src",
}

// RewriteRelative parses doc and prefixes every root-relative reference with
// prefix. Absolute URLs, fragment-only links, and references that already
// climb out of the page's directory are left alone.
func RewriteRelative(doc string, prefix string) (string, error) {
	if prefix == "" {
		return doc, nil
	}

	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("parse rendered html: %w", err)
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if attr, ok := rewritableAttrs[n.Data]; ok {
				for i := range n.Attr {
					if n.Attr[i].Key == attr && isRootRelative(n.Attr[i].Val) {
						n.Attr[i].Val = prefix + n.Attr[i].Val
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("render rewritten html: %w", err)
	}
	return buf.String(), nil
}

// isRootRelative reports whether ref is a reference the template author wrote
// against the output root: a bare relative path without scheme, host, leading
// slash, fragment, or explicit parent traversal.
func isRootRelative(ref string) bool {
	if ref == "" {
		return false
	}
	switch ref[0] {
	case '/', '#', '?':
		return false
	}
	if strings.HasPrefix(ref, "../") {
		return false
	}
	if strings.HasPrefix(ref, "./") {
		return true
	}
	// Scheme-qualified (http:, https:, mailto:, data:) references stay as-is.
	if i := strings.IndexAny(ref, ":/?#"); i >= 0 && ref[i] == ':' {
		return false
	}
	return true
}
