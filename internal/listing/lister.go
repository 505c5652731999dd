// Package listing reads the direct children of a directory and classifies
// them as files or directories.
package listing

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"browsed/internal/config"
	"browsed/internal/errors"
	"browsed/pkg/types"

	"golang.org/x/text/unicode/norm"
)

// Lister lists directories non-recursively, skipping hidden entries.
type Lister struct {
	directoriesFirst bool
	sortByName       bool
}

// Option configures a Lister.
type Option func(*Lister)

// WithDirectoriesFirst places directories ahead of files.
func WithDirectoriesFirst(v bool) Option {
	return func(l *Lister) {
		l.directoriesFirst = v
	}
}

// WithNameSort orders entries by case-insensitive name. When off, entries
// keep the order the filesystem returned.
func WithNameSort(v bool) Option {
	return func(l *Lister) {
		l.sortByName = v
	}
}

// New creates a Lister. By default directories come first and names are sorted.
func New(opts ...Option) *Lister {
	l := &Lister{directoriesFirst: true, sortByName: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FromConfig creates a Lister from the listing section of the configuration.
func FromConfig(cfg config.ListingConfig) *Lister {
	return New(
		WithDirectoriesFirst(cfg.DirectoriesFirst),
		WithNameSort(cfg.Sort != config.SortNone),
	)
}

// List returns the visible direct children of path. Names starting with a dot
// are excluded. Symlinks are classified by their target when it resolves.
func (l *Lister) List(path string) ([]types.FileEntry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.NewIoError("cannot read directory", path, err)
	}

	entries := make([]types.FileEntry, 0, len(dirEntries))
	for _, e := range dirEntries {
		name := e.Name()
		if IsHidden(name) {
			continue
		}

		fullPath := filepath.Join(path, name)
		entry := types.NewFile(fullPath)
		switch {
		case e.Type()&os.ModeSymlink != 0:
			// dangling links stay files
			if target, err := types.Classify(fullPath); err == nil {
				entry = target
			}
		case e.IsDir():
			entry = types.NewDirectory(fullPath)
		}
		entries = append(entries, entry)
	}

	l.sort(entries)
	return entries, nil
}

func (l *Lister) sort(entries []types.FileEntry) {
	if !l.directoriesFirst && !l.sortByName {
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if l.directoriesFirst && a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		if !l.sortByName {
			return false
		}
		an, bn := sortKey(a), sortKey(b)
		if an != bn {
			return an < bn
		}
		return DisplayName(a) < DisplayName(b)
	})
}

// IsHidden reports whether a name is excluded from listings.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// DisplayName returns the NFC-normalized final path component of e.
func DisplayName(e types.FileEntry) string {
	return norm.NFC.String(e.Name())
}

func sortKey(e types.FileEntry) string {
	return strings.ToLower(DisplayName(e))
}
