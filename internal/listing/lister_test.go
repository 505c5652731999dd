package listing

import (
	"os"
	"path/filepath"
	"testing"

	"browsed/internal/config"
	"browsed/internal/errors"
	"browsed/pkg/testutils"
	"browsed/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(entries []types.FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

func TestListExcludesHiddenEntries(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "a.txt", ".b", "c/", ".git/", ".git/config")

	entries, err := New().List(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "a.txt"}, names(entries))
	for _, e := range entries {
		assert.False(t, IsHidden(e.Name()), "hidden entry %s leaked", e.Name())
		assert.Equal(t, filepath.Join(dir, e.Name()), e.Path)
	}
}

func TestListClassifiesEntries(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "docs/", "notes.txt")

	entries, err := New().List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, types.KindDirectory, entries[0].Kind)
	assert.Equal(t, "docs", entries[0].Name())
	assert.Equal(t, types.KindFile, entries[1].Kind)
	assert.Equal(t, "notes.txt", entries[1].Name())
}

func TestListSymlinkClassifiedByTarget(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "real/", "file.txt")
	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")))

	entries, err := New().List(dir)
	require.NoError(t, err)

	kinds := map[string]types.EntryKind{}
	for _, e := range entries {
		kinds[e.Name()] = e.Kind
	}
	assert.Equal(t, types.KindDirectory, kinds["link"])
	assert.Equal(t, types.KindFile, kinds["dangling"], "unresolvable links are files")
}

func TestListOrdering(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "beta.txt", "Alpha.txt", "zeta/", "Gamma/", "delta.txt")

	t.Run("directories first, case-insensitive names", func(t *testing.T) {
		entries, err := New().List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"Gamma", "zeta", "Alpha.txt", "beta.txt", "delta.txt"}, names(entries))
	})

	t.Run("mixed order", func(t *testing.T) {
		entries, err := New(WithDirectoriesFirst(false)).List(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha.txt", "beta.txt", "delta.txt", "Gamma", "zeta"}, names(entries))
	})

	t.Run("from config", func(t *testing.T) {
		cfg := config.New().Listing
		cfg.Sort = config.SortNone
		cfg.DirectoriesFirst = false
		entries, err := FromConfig(cfg).List(dir)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Alpha.txt", "beta.txt", "delta.txt", "Gamma", "zeta"}, names(entries))
	})
}

func TestListEmptyDirectory(t *testing.T) {
	entries, err := New().List(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListUnreadableDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")

	entries, err := New().List(missing)
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.True(t, errors.IsIoError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)

	var ioErr *errors.IoError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, missing, ioErr.Path())
}

func TestDisplayNameNormalizesToNFC(t *testing.T) {
	decomposed := "cafe\u0301.txt"
	e := types.NewFile(filepath.Join("/tmp", decomposed))
	assert.Equal(t, "caf\u00e9.txt", DisplayName(e))
}
