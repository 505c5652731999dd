package session

import (
	"path/filepath"

	"browsed/internal/errors"
	"browsed/internal/log"
	"browsed/pkg/types"
)

// lockAll takes every state lock except marks, in order.
func (s *Session) lockAll() {
	s.locMu.Lock()
	s.filterMu.Lock()
	s.listMu.Lock()
}

func (s *Session) unlockAll() {
	s.listMu.Unlock()
	s.filterMu.Unlock()
	s.locMu.Unlock()
}

// NavigateInto moves into the directory at index of the displayed listing.
// Files and out-of-range indices are ignored.
func (s *Session) NavigateInto(index int) {
	s.lockAll()
	defer s.unlockAll()

	e, ok := s.entryLocked(index)
	if !ok || !e.IsDir() {
		return
	}
	s.moveLocked(e.Path)
}

// NavigateIntoAt is NavigateInto against a specific listing generation. It
// reports whether a move happened.
func (s *Session) NavigateIntoAt(generation uint64, index int) (bool, error) {
	s.lockAll()
	defer s.unlockAll()

	e, err := s.checkedEntryLocked(generation, index)
	if err != nil {
		return false, err
	}
	if !e.IsDir() {
		return false, nil
	}
	return true, s.moveLocked(e.Path)
}

// NavigateParent moves to the parent of the current location. At a
// filesystem root it returns an AtRootError and changes nothing.
func (s *Session) NavigateParent() error {
	s.lockAll()
	defer s.unlockAll()

	parent := filepath.Dir(s.location)
	if parent == s.location {
		return errors.NewAtRootError(s.location)
	}
	return s.moveLocked(parent)
}

// NavigateTo moves to path, resolving relative paths against the current
// location. The path is not validated first: if it cannot be read the
// session sits there with an empty listing and the read error is returned.
func (s *Session) NavigateTo(path string) error {
	s.lockAll()
	defer s.unlockAll()

	return s.moveLocked(resolve(s.location, path))
}

// Refresh re-reads the current location, keeping the active filter.
func (s *Session) Refresh() error {
	s.locMu.RLock()
	defer s.locMu.RUnlock()
	s.filterMu.RLock()
	defer s.filterMu.RUnlock()
	s.listMu.Lock()
	defer s.listMu.Unlock()

	return s.reloadLocked()
}

// moveLocked sets the location, clears the filter and reloads. Requires all
// write locks.
func (s *Session) moveLocked(path string) error {
	from := s.location
	s.location = path
	s.filter = nil
	err := s.reloadLocked()
	s.logger.With(log.F("from", from), log.F("to", path)).Debug("navigated")
	return err
}

// reloadLocked re-lists the location and reapplies the filter. Requires the
// listing write lock and at least read locks on location and filter.
func (s *Session) reloadLocked() error {
	entries, err := s.lister.List(s.location)
	if err != nil {
		s.setListingLocked(nil)
		s.logger.WithError(err).Error("failed to list directory")
		return err
	}
	s.setListingLocked(entries)
	return nil
}

func (s *Session) setListingLocked(entries []types.FileEntry) {
	s.cached = entries
	s.displayed = applyFilter(s.filter, entries)
	s.gen++
}
