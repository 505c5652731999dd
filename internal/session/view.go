package session

import (
	"browsed/internal/errors"
	"browsed/internal/filter"
	"browsed/internal/listing"
	"browsed/pkg/types"
)

// ListCurrent returns the displayed listing. Marked flags are filled only
// when withMarks is set.
func (s *Session) ListCurrent(withMarks bool) types.Listing {
	s.listMu.RLock()
	entries := s.displayed
	gen := s.gen
	s.listMu.RUnlock()

	items := make([]types.ListItem, len(entries))
	for i, e := range entries {
		items[i] = types.ListItem{
			Name:   listing.DisplayName(e),
			Path:   e.Path,
			IsDir:  e.IsDir(),
			Marked: withMarks && !e.IsDir() && s.marked.Contains(e.Path),
		}
	}
	return types.Listing{Generation: gen, Items: items}
}

// ListMarked returns every marked path in sorted order, regardless of the
// current location.
func (s *Session) ListMarked() types.Listing {
	paths, gen := s.marked.Snapshot()
	items := make([]types.ListItem, len(paths))
	for i, p := range paths {
		items[i] = types.ListItem{
			Name:   listing.DisplayName(types.NewFile(p)),
			Path:   p,
			Marked: true,
		}
	}
	return types.Listing{Generation: gen, Items: items}
}

// SetFilter narrows the displayed listing to names matching pattern. An
// empty pattern clears the filter. An invalid pattern leaves the filter and
// listing unchanged. The filter persists across refreshes and is cleared by
// navigation.
func (s *Session) SetFilter(pattern string) error {
	f, err := filter.Compile(pattern, s.mode)
	if err != nil {
		s.logger.WithError(err).Error("rejected filter pattern")
		return err
	}

	s.filterMu.Lock()
	defer s.filterMu.Unlock()
	s.listMu.Lock()
	defer s.listMu.Unlock()

	s.filter = f
	s.displayed = applyFilter(f, s.cached)
	s.gen++
	return nil
}

// ToggleMark toggles the mark on the file at index. Directories and
// out-of-range indices are ignored.
func (s *Session) ToggleMark(index int) {
	s.listMu.RLock()
	e, ok := s.entryLocked(index)
	s.listMu.RUnlock()

	if ok && !e.IsDir() {
		s.marked.Toggle(e.Path)
	}
}

// ToggleMarkAt is ToggleMark against a specific listing generation. It
// reports whether the entry is marked afterwards.
func (s *Session) ToggleMarkAt(generation uint64, index int) (bool, error) {
	s.listMu.RLock()
	e, err := s.checkedEntryLocked(generation, index)
	s.listMu.RUnlock()
	if err != nil {
		return false, err
	}
	if e.IsDir() {
		return false, nil
	}
	return s.marked.Toggle(e.Path), nil
}

// ClearMarks unmarks every file.
func (s *Session) ClearMarks() {
	s.marked.Clear()
}

// entryLocked resolves index against the displayed listing. Requires at
// least the listing read lock.
func (s *Session) entryLocked(index int) (types.FileEntry, bool) {
	if index < 0 || index >= len(s.displayed) {
		return types.FileEntry{}, false
	}
	return s.displayed[index], true
}

func (s *Session) checkedEntryLocked(generation uint64, index int) (types.FileEntry, error) {
	if generation != s.gen {
		return types.FileEntry{}, errors.NewStaleListingError(generation, s.gen)
	}
	e, ok := s.entryLocked(index)
	if !ok {
		return types.FileEntry{}, errors.NewIndexError(index, len(s.displayed))
	}
	return e, nil
}

func applyFilter(f *filter.Filter, entries []types.FileEntry) []types.FileEntry {
	if entries == nil {
		return nil
	}
	return filter.Apply(f, entries)
}
