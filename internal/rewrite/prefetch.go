package rewrite

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractExternalRefs tokenizes template markup and collects the external
// (scheme-qualified) resources it references through link href and script
// src attributes. Order of appearance is preserved; duplicates collapse.
//
// The tokenizer tolerates template syntax in text positions, so raw template
// source can be scanned before rendering.
func ExtractExternalRefs(markup string) []string {
	tz := html.NewTokenizer(strings.NewReader(markup))

	seen := map[string]struct{}{}
	var refs []string
	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			return refs
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		tok := tz.Token()
		var attr string
		switch tok.Data {
		case "link":
			attr = "href"
		case "script":
			attr = "src"
		default:
			continue
		}
		for _, a := range tok.Attr {
			if a.Key != attr || !isExternal(a.Val) {
				continue
			}
			if _, dup := seen[a.Val]; dup {
				continue
			}
			seen[a.Val] = struct{}{}
			refs = append(refs, a.Val)
		}
	}
}

// PrefetchBlock renders refs as a block of prefetch resource hints.
func PrefetchBlock(refs []string) string {
	if len(refs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, ref := range refs {
		b.WriteString(`<link rel="prefetch" href="`)
		b.WriteString(ref)
		b.WriteString("\">\n")
	}
	return b.String()
}

// InjectPrefetch splices block into page markup ahead of the closing head
// tag. Pages without a head element get the block prepended.
func InjectPrefetch(page string, block string) string {
	if block == "" {
		return page
	}
	for _, closer := range []string{"</head>", "</HEAD>"} {
		if i := strings.Index(page, closer); i >= 0 {
			return page[:i] + block + page[i:]
		}
	}
	return block + page
}

func isExternal(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "//")
}
