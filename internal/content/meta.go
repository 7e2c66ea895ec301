// Package content turns content directories into ordered, addressable
// metadata records: one MetaRecord per directory holding a markdown file,
// aggregated into an Index with a keyed lookup and a newest-first ordering.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitegen/internal/rewrite"
)

// Reserved metadata keys overriding filesystem timestamps.
const (
	KeyCreatedAt  = "$createdAt"
	KeyModifiedAt = "$modifiedAt"
)

// Explicit metadata sources, consulted in order; only the first present one
// is read.
var metaFileNames = []string{"meta.json", "meta.yaml"}

// MetaRecord describes one content directory.
type MetaRecord struct {
	// Slug is the final path segment of the content directory.
	Slug string

	// Title and Description come from explicit metadata, defaulted from the
	// slug when absent.
	Title       string
	Description string

	// Path is the directory's slash-separated path relative to the content
	// root.
	Path string

	// RootPrefix addresses the output root from this item's output file,
	// one up-level marker per segment of Path.
	RootPrefix string

	CreatedAt  time.Time
	ModifiedAt time.Time

	// Fields is the template-facing merged view: defaults overlaid with
	// every non-reserved explicit key, plus slug, path and the resolved
	// timestamps.
	Fields map[string]any
}

// LoadMeta builds the MetaRecord for the content directory at relDir below
// contentRoot. The caller guarantees the directory exists.
func LoadMeta(contentRoot, relDir string) (*MetaRecord, error) {
	relDir = filepath.ToSlash(filepath.Clean(relDir))
	slug := path.Base(relDir)

	rec := &MetaRecord{
		Slug:        slug,
		Title:       slug,
		Description: fmt.Sprintf("Hi, This is %s...", slug),
		Path:        relDir,
		RootPrefix:  rewrite.RootPrefix(rewrite.Depth(relDir)),
	}

	dir := filepath.Join(contentRoot, filepath.FromSlash(relDir))
	if info, err := os.Stat(dir); err == nil {
		rec.CreatedAt = info.ModTime()
		rec.ModifiedAt = info.ModTime()
	}

	explicit, err := readExplicitMeta(dir, relDir)
	if err != nil {
		return nil, err
	}
	if err := rec.applyExplicit(explicit, relDir); err != nil {
		return nil, err
	}

	rec.Fields = mergeFields(rec, explicit)
	return rec, nil
}

// readExplicitMeta reads the first present explicit metadata file in dir.
// A missing file is not an error; a malformed one is.
func readExplicitMeta(dir, relDir string) (map[string]any, error) {
	for _, name := range metaFileNames {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, &MetadataError{Dir: relDir, Err: err}
		}

		fields := map[string]any{}
		switch name {
		case "meta.json":
			err = json.Unmarshal(raw, &fields)
		default:
			err = yaml.Unmarshal(raw, &fields)
		}
		if err != nil {
			return nil, &MetadataError{Dir: relDir, Err: err}
		}
		return fields, nil
	}
	return nil, nil
}

// applyExplicit overlays explicit values onto the record. Precedence is
// shallow: an explicit key always wins, unknown keys pass through untouched
// into Fields.
func (r *MetaRecord) applyExplicit(explicit map[string]any, relDir string) error {
	if explicit == nil {
		return nil
	}
	if v, ok := explicit["title"].(string); ok {
		r.Title = v
	}
	if v, ok := explicit["description"].(string); ok {
		r.Description = v
	}
	for key, dst := range map[string]*time.Time{
		KeyCreatedAt:  &r.CreatedAt,
		KeyModifiedAt: &r.ModifiedAt,
	} {
		raw, ok := explicit[key]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return &MetadataError{Dir: relDir, Err: fmt.Errorf("%s must be a date string", key)}
		}
		t, err := parseDate(s)
		if err != nil {
			return &MetadataError{Dir: relDir, Err: fmt.Errorf("%s: %w", key, err)}
		}
		*dst = t
	}
	return nil
}

// mergeFields builds the template-facing view of the record.
func mergeFields(r *MetaRecord, explicit map[string]any) map[string]any {
	fields := map[string]any{
		"slug":        r.Slug,
		"title":       r.Title,
		"description": r.Description,
		"path":        r.Path,
		"rootPrefix":  r.RootPrefix,
	}
	for k, v := range explicit {
		if k == KeyCreatedAt || k == KeyModifiedAt {
			continue
		}
		fields[k] = v
	}
	// title and description always mirror the typed record, even when an
	// explicit value had an unexpected shape.
	fields["title"] = r.Title
	fields["description"] = r.Description
	fields["createdAt"] = r.CreatedAt
	fields["modifiedAt"] = r.ModifiedAt
	return fields
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
