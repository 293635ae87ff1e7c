package engine

import (
	"context"
	"fmt"

	"pulsestudy/internal/storage"
)

// SaveNote creates or updates a note. The first save of a note grants
// NoteCreatedXP; edits grant nothing.
func (s *Service) SaveNote(ctx context.Context, in NoteInput) (note Note, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return Note{}, false, err
	}

	note, created, ok := s.notes.Save(in, s.now())
	if !ok {
		return Note{}, false, nil
	}
	keys := []string{storage.KeyNotes}
	if created {
		s.progress.AddXP(NoteCreatedXP)
		keys = append(keys, storage.KeyXP)
	}
	if err := s.persist(ctx, keys...); err != nil {
		return Note{}, false, err
	}
	return note, created, nil
}

func (s *Service) DeleteNote(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return false, err
	}

	if !s.notes.Delete(id) {
		return false, nil
	}
	if err := s.persist(ctx, storage.KeyNotes); err != nil {
		return false, err
	}
	return true, nil
}

// AttachFile stores the edited attachment of a note.
func (s *Service) AttachFile(ctx context.Context, id string, f NoteFile) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return false, err
	}

	if !s.notes.AttachFile(id, f) {
		return false, nil
	}
	if err := s.persist(ctx, storage.KeyNotes); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Notes() []Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Notes()
}

func (s *Service) Note(id string) (Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes.Get(id)
}

func (s *Service) ResolveNote(ref string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.notes.Resolve(ref)
	if !ok {
		return "", fmt.Errorf("note %s not found", ref)
	}
	return id, nil
}
