package types

import (
	"os"
	"path/filepath"
)

// EntryKind classifies a listed path.
type EntryKind int

const (
	// KindFile is anything that is not a directory.
	KindFile EntryKind = iota
	// KindDirectory is a directory, or a symlink resolving to one.
	KindDirectory
)

// String returns the kind name used on the wire.
func (k EntryKind) String() string {
	if k == KindDirectory {
		return "Directory"
	}
	return "File"
}

// FileEntry is a classified filesystem path. The classification is a snapshot
// taken when the entry was built and is not re-verified.
type FileEntry struct {
	Kind EntryKind `json:"kind"`
	Path string    `json:"path"`
}

// NewFile builds a File entry for path.
func NewFile(path string) FileEntry {
	return FileEntry{Kind: KindFile, Path: path}
}

// NewDirectory builds a Directory entry for path.
func NewDirectory(path string) FileEntry {
	return FileEntry{Kind: KindDirectory, Path: path}
}

// Classify stats path and builds the matching entry.
func Classify(path string) (FileEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileEntry{}, err
	}
	if info.IsDir() {
		return NewDirectory(path), nil
	}
	return NewFile(path), nil
}

// Name returns the final path component.
func (e FileEntry) Name() string {
	return filepath.Base(e.Path)
}

// IsDir reports whether the entry was classified as a directory.
func (e FileEntry) IsDir() bool {
	return e.Kind == KindDirectory
}
