package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T, root, dir string, files map[string]string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(dir))
	require.NoError(t, os.MkdirAll(full, 0755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(full, name), []byte(body), 0644))
	}
}

func TestBuildIndex_MissingContentRoot_YieldsEmptyIndex(t *testing.T) {
	idx, err := BuildIndex(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	require.Empty(t, idx.ByPath)
	require.Empty(t, idx.Ordered)
}

func TestBuildIndex_TwoItems_MetadataAndDefaults(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "posts/a", map[string]string{
		"a.md":      "# A",
		"meta.json": `{"title":"Hello"}`,
	})
	writeContent(t, root, "posts/b", map[string]string{"b.md": "# B"})

	idx, err := BuildIndex(root)
	require.NoError(t, err)
	require.Len(t, idx.ByPath, 2)
	require.Equal(t, "Hello", idx.ByPath["posts/a"].Title)
	require.Equal(t, "b", idx.ByPath["posts/b"].Title)
}

func TestBuildIndex_RootLevelContentFile_Excluded(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), []byte("# Root"), 0644))
	writeContent(t, root, "item", map[string]string{"body.md": "# Item"})

	idx, err := BuildIndex(root)
	require.NoError(t, err)
	require.Len(t, idx.ByPath, 1)
	require.Contains(t, idx.ByPath, "item")
}

func TestBuildIndex_MultipleContentFiles_OneEntryPerDirectory(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "item", map[string]string{
		"one.md": "# One",
		"two.md": "# Two",
	})

	idx, err := BuildIndex(root)
	require.NoError(t, err)
	require.Len(t, idx.ByPath, 1)
	require.Len(t, idx.Ordered, 1)
}

func TestBuildIndex_Ordered_SortedByCreatedAtDescending(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "old", map[string]string{
		"body.md":   "# Old",
		"meta.json": `{"$createdAt":"2020-01-01"}`,
	})
	writeContent(t, root, "newest", map[string]string{
		"body.md":   "# Newest",
		"meta.json": `{"$createdAt":"2024-01-01"}`,
	})
	writeContent(t, root, "middle", map[string]string{
		"body.md":   "# Middle",
		"meta.json": `{"$createdAt":"2022-01-01"}`,
	})

	idx, err := BuildIndex(root)
	require.NoError(t, err)
	require.Len(t, idx.Ordered, 3)
	require.Equal(t, "newest", idx.Ordered[0].Slug)
	require.Equal(t, "middle", idx.Ordered[1].Slug)
	require.Equal(t, "old", idx.Ordered[2].Slug)

	for i := 1; i < len(idx.Ordered); i++ {
		require.False(t, idx.Ordered[i].CreatedAt.After(idx.Ordered[i-1].CreatedAt))
	}
}

func TestBuildIndex_MalformedMetadata_FailsBuild(t *testing.T) {
	root := t.TempDir()
	writeContent(t, root, "bad", map[string]string{
		"body.md":   "# Bad",
		"meta.json": `not json`,
	})

	_, err := BuildIndex(root)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMetadataParse)
}
