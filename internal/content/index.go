package content

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ContentExtension is the recognized content file extension.
const ContentExtension = ".md"

// Index is the build-wide content collection: a keyed lookup plus a
// newest-first ordering. Built once per build and immutable afterward.
type Index struct {
	// ByPath maps a directory's relative slash path to its record.
	ByPath map[string]*MetaRecord

	// Ordered holds the same records sorted by CreatedAt descending. Ties
	// keep scan order (stable sort).
	Ordered []*MetaRecord
}

// BuildIndex scans contentRoot for content directories and loads one record
// per directory. A missing content root yields an empty index, not an error.
func BuildIndex(contentRoot string) (*Index, error) {
	idx := &Index{ByPath: map[string]*MetaRecord{}}

	if _, err := os.Stat(contentRoot); os.IsNotExist(err) {
		return idx, nil
	}

	dirs, err := contentDirs(contentRoot)
	if err != nil {
		return nil, err
	}

	for _, rel := range dirs {
		rec, err := LoadMeta(contentRoot, rel)
		if err != nil {
			return nil, err
		}
		idx.ByPath[rel] = rec
		idx.Ordered = append(idx.Ordered, rec)
	}

	sort.SliceStable(idx.Ordered, func(i, j int) bool {
		return idx.Ordered[i].CreatedAt.After(idx.Ordered[j].CreatedAt)
	})
	return idx, nil
}

// contentDirs returns the relative directories under root holding at least
// one content file, deduplicated, in walk order. The root itself is excluded
// since it has no addressable directory.
func contentDirs(root string) ([]string, error) {
	seen := map[string]struct{}{}
	var dirs []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ContentExtension) {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(p))
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if _, dup := seen[rel]; dup {
			return nil
		}
		seen[rel] = struct{}{}
		dirs = append(dirs, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}
