package session

import (
	"browsed/internal/errors"
	"browsed/pkg/types"
)

// PreviewAt previews the entry at index of the displayed listing. Out-of-range
// indices and unreadable files yield an empty preview.
func (s *Session) PreviewAt(index int) types.Preview {
	s.listMu.RLock()
	e, ok := s.entryLocked(index)
	s.listMu.RUnlock()
	if !ok {
		return types.NoPreview()
	}
	return s.render(e)
}

// PreviewAtGeneration is PreviewAt against a specific listing generation.
func (s *Session) PreviewAtGeneration(generation uint64, index int) (types.Preview, error) {
	s.listMu.RLock()
	e, err := s.checkedEntryLocked(generation, index)
	s.listMu.RUnlock()
	if err != nil {
		return types.NoPreview(), err
	}
	return s.render(e), nil
}

// PreviewMarkedAt previews the marked file at index of ListMarked.
// Out-of-range indices yield an empty preview.
func (s *Session) PreviewMarkedAt(index int) types.Preview {
	paths := s.marked.Paths()
	if index < 0 || index >= len(paths) {
		return types.NoPreview()
	}
	return s.render(types.NewFile(paths[index]))
}

// PreviewMarkedAtGeneration is PreviewMarkedAt against a specific marked
// listing generation.
func (s *Session) PreviewMarkedAtGeneration(generation uint64, index int) (types.Preview, error) {
	paths, gen := s.marked.Snapshot()
	if generation != gen {
		return types.NoPreview(), errors.NewStaleListingError(generation, gen)
	}
	if index < 0 || index >= len(paths) {
		return types.NoPreview(), errors.NewIndexError(index, len(paths))
	}
	return s.render(types.NewFile(paths[index])), nil
}

func (s *Session) render(e types.FileEntry) types.Preview {
	p, err := s.previews.Preview(e)
	if err != nil {
		s.logger.WithError(err).Error("preview failed")
		return types.NoPreview()
	}
	return p
}

// CopyMarkedTo copies every marked file into dest, resolved against the
// current location when relative. Each file gets its own result; marks are
// left in place.
func (s *Session) CopyMarkedTo(dest string) []types.CopyResult {
	s.locMu.RLock()
	dest = resolve(s.location, dest)
	s.locMu.RUnlock()

	return s.copier.CopyFiles(s.marked.Paths(), dest)
}
