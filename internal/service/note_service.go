package service

import (
	"context"
	"fmt"

	"voicenotes-server/internal/domain"
	"voicenotes-server/internal/repository"
	"voicenotes-server/internal/summary"
)

type NoteService struct {
	repo       repository.NoteRepository
	summarizer summary.Summarizer
}

func NewNoteService(repo repository.NoteRepository, summarizer summary.Summarizer) *NoteService {
	return &NoteService{
		repo:       repo,
		summarizer: summarizer,
	}
}

func (s *NoteService) Create(text string) (*domain.Note, error) {
	return s.repo.Create(text)
}

func (s *NoteService) List() ([]*domain.Note, error) {
	notes, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*domain.Note{}
	}
	return notes, nil
}

func (s *NoteService) Get(id string) (*domain.Note, error) {
	return s.repo.FindByID(id)
}

// Update replaces the note text and resets its summary, since a summary of
// the previous text would misdescribe the new one.
func (s *NoteService) Update(id, text string) (*domain.Note, error) {
	return s.repo.UpdateText(id, text)
}

// Summarize generates a summary for the note's current text and persists it.
// The note text itself is never modified.
func (s *NoteService) Summarize(ctx context.Context, id string) (*domain.Note, error) {
	note, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	generated, err := s.summarizer.Summarize(ctx, note.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	return s.repo.SetSummary(id, generated)
}

func (s *NoteService) Delete(id string) error {
	return s.repo.Delete(id)
}
