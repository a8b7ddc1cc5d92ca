// Package view holds the client-side note list state. The list is mutated
// only through the transitions below: prepend on commit, replace on
// update/summarize, remove on delete.
package view

import (
	"errors"
	"strings"

	"voicenotes-server/internal/domain"
)

var ErrSummarizeUnavailable = errors.New("note already has a summary or one is being generated")

// API is the subset of the notes client the view drives.
type API interface {
	List() ([]*domain.Note, error)
	Create(text string) (*domain.Note, error)
	Update(id, text string) (*domain.Note, error)
	Summarize(id string) (*domain.Note, error)
	Delete(id string) error
}

type View struct {
	api     API
	notes   []*domain.Note
	pending map[string]bool
}

func New(api API) *View {
	return &View{
		api:     api,
		pending: make(map[string]bool),
	}
}

// Load replaces the in-memory list with the server's (newest first).
func (v *View) Load() error {
	notes, err := v.api.List()
	if err != nil {
		return err
	}
	v.notes = notes
	return nil
}

func (v *View) Notes() []*domain.Note {
	return v.notes
}

func (v *View) Pending(id string) bool {
	return v.pending[id]
}

// Commit creates a note from a captured transcript and prepends it, keeping
// the list in most-recently-created-first order.
func (v *View) Commit(text string) (*domain.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	note, err := v.api.Create(text)
	if err != nil {
		return nil, err
	}

	v.notes = append([]*domain.Note{note}, v.notes...)
	return note, nil
}

// Edit replaces a note's text. Empty or unchanged text is a no-op.
func (v *View) Edit(id, newText string) (*domain.Note, error) {
	current := v.find(id)
	if current == nil {
		return nil, errors.New("unknown note id")
	}

	newText = strings.TrimSpace(newText)
	if newText == "" || newText == current.Text {
		return current, nil
	}

	note, err := v.api.Update(id, newText)
	if err != nil {
		return nil, err
	}

	v.replace(note)
	return note, nil
}

// Summarize requests a summary for a note. At most one summarization per
// note is in flight, and a note that already has a summary is not
// re-summarized.
func (v *View) Summarize(id string) (*domain.Note, error) {
	current := v.find(id)
	if current == nil {
		return nil, errors.New("unknown note id")
	}
	if current.Summary != nil || v.pending[id] {
		return nil, ErrSummarizeUnavailable
	}

	v.pending[id] = true
	defer delete(v.pending, id)

	note, err := v.api.Summarize(id)
	if err != nil {
		return nil, err
	}

	v.replace(note)
	return note, nil
}

func (v *View) Delete(id string) error {
	if err := v.api.Delete(id); err != nil {
		return err
	}

	notes := v.notes[:0]
	for _, n := range v.notes {
		if n.ID != id {
			notes = append(notes, n)
		}
	}
	v.notes = notes
	return nil
}

func (v *View) find(id string) *domain.Note {
	for _, n := range v.notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (v *View) replace(note *domain.Note) {
	for i, n := range v.notes {
		if n.ID == note.ID {
			v.notes[i] = note
			return
		}
	}
}
