package transfer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"browsed/internal/errors"
	"browsed/internal/log"
	"browsed/pkg/testutils"
	"browsed/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCopier(buf *bytes.Buffer) *Copier {
	return New(log.NewLogger(log.WithOutput(buf)))
}

func TestCopyFilesRoundTrip(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutils.CreateTestFilesWithContent(t, src, map[string]string{
		"a.txt": "alpha",
		"b.bin": string([]byte{0, 1, 2, 255}),
	})

	var buf bytes.Buffer
	sources := []string{filepath.Join(src, "a.txt"), filepath.Join(src, "b.bin")}
	results := newTestCopier(&buf).CopyFiles(sources, dst)

	require.Len(t, results, 2)
	for i, r := range results {
		assert.True(t, r.Copied, "result %d: %v", i, r.Error)
		assert.NoError(t, r.Error)
		assert.Equal(t, sources[i], r.SourcePath)
		assert.Equal(t, filepath.Join(dst, filepath.Base(sources[i])), r.DestinationPath)

		want, err := os.ReadFile(sources[i])
		require.NoError(t, err)
		got, err := os.ReadFile(r.DestinationPath)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, int64(len(want)), r.Bytes)
	}
	assert.Empty(t, buf.String(), "successful copies log only at debug level")
}

func TestCopyFilesNameCollision(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutils.CreateTestFilesWithContent(t, src, map[string]string{"a.txt": "new", "b.txt": "bee"})
	testutils.CreateTestFilesWithContent(t, dst, map[string]string{"a.txt": "original"})

	var buf bytes.Buffer
	results := newTestCopier(&buf).CopyFiles(
		[]string{filepath.Join(src, "a.txt"), filepath.Join(src, "b.txt")}, dst)

	require.Len(t, results, 2)
	assert.False(t, results[0].Copied)
	assert.True(t, errors.IsCopyError(results[0].Error))
	assert.ErrorIs(t, results[0].Error, errors.ErrNameCollision)
	assert.True(t, results[1].Copied, "batch continues after a failure")

	content, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(content), "existing file must not be overwritten")

	assert.Contains(t, buf.String(), "copy failed")
	assert.Contains(t, buf.String(), "error_kind=copy_error")

	copied, failed := types.CopySummary(results)
	assert.Equal(t, 1, copied)
	assert.Equal(t, 1, failed)
}

func TestCopyFilesMissingDestination(t *testing.T) {
	src := t.TempDir()
	testutils.CreateTestFilesWithContent(t, src, map[string]string{"a.txt": "a", "b.txt": "b"})
	missing := filepath.Join(t.TempDir(), "nope")

	var buf bytes.Buffer
	results := newTestCopier(&buf).CopyFiles(
		[]string{filepath.Join(src, "a.txt"), filepath.Join(src, "b.txt")}, missing)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.Copied)
		assert.True(t, errors.IsCopyError(r.Error))
	}
	_, err := os.Stat(missing)
	assert.True(t, os.IsNotExist(err), "destination directory is not created")
}

func TestCopyFilesMissingSource(t *testing.T) {
	dst := t.TempDir()
	var buf bytes.Buffer
	results := newTestCopier(&buf).CopyFiles([]string{filepath.Join(t.TempDir(), "vanished.txt")}, dst)

	require.Len(t, results, 1)
	assert.False(t, results[0].Copied)
	assert.ErrorIs(t, results[0].Error, os.ErrNotExist)

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing is left behind")
}

func TestCopyFilesEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	results := newTestCopier(&buf).CopyFiles(nil, t.TempDir())
	assert.Empty(t, results)
}

func TestCopyFilePreservesMode(t *testing.T) {
	src := filepath.Join(t.TempDir(), "run.sh")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0755))
	dest := filepath.Join(t.TempDir(), "run.sh")

	var buf bytes.Buffer
	_, err := newTestCopier(&buf).CopyFile(src, dest)
	require.NoError(t, err)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}
