package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"voicenotes-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no note matches the requested id.
var ErrNotFound = errors.New("note not found")

type NoteRepository interface {
	Create(text string) (*domain.Note, error)
	FindByID(id string) (*domain.Note, error)
	List() ([]*domain.Note, error)
	UpdateText(id, text string) (*domain.Note, error)
	SetSummary(id, summary string) (*domain.Note, error)
	Delete(id string) error
}

type noteRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		client: client,
		dbName: dbName,
	}
}

func (r *noteRepository) Create(text string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	note := &domain.Note{
		ID:        uuid.New().String(),
		Text:      text,
		Summary:   nil,
		CreatedAt: time.Now().UTC(),
	}

	docID := fmt.Sprintf("note:%s", note.ID)
	if _, err := db.Put(context.Background(), docID, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

func (r *noteRepository) FindByID(id string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", id)
	row := db.Get(context.Background(), docID)

	var note domain.Note
	if err := row.ScanDoc(&note); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return &note, nil
}

func (r *noteRepository) List() ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	query := map[string]interface{}{
		"selector": map[string]interface{}{
			"text": map[string]interface{}{"$exists": true},
		},
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		var note domain.Note
		if err := rows.ScanDoc(&note); err != nil {
			continue
		}
		notes = append(notes, &note)
	}

	// Mango sort needs a matching index; the note set is small enough to
	// order here instead.
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	return notes, nil
}

func (r *noteRepository) UpdateText(id, text string) (*domain.Note, error) {
	doc, err := r.fetchDoc(id)
	if err != nil {
		return nil, err
	}

	doc["text"] = text
	doc["summary"] = nil

	if err := r.putDoc(id, doc); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return r.FindByID(id)
}

// SetSummary persists a generated summary without touching the note text.
func (r *noteRepository) SetSummary(id, summary string) (*domain.Note, error) {
	doc, err := r.fetchDoc(id)
	if err != nil {
		return nil, err
	}

	doc["summary"] = summary

	if err := r.putDoc(id, doc); err != nil {
		return nil, fmt.Errorf("failed to save summary: %w", err)
	}

	return r.FindByID(id)
}

// Delete is lenient: removing an id that does not exist is not an error.
func (r *noteRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("note:%s", id)

	doc, err := r.fetchDoc(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	rev, _ := doc["_rev"].(string)
	if _, err := db.Delete(context.Background(), docID, rev); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

func (r *noteRepository) fetchDoc(id string) (map[string]interface{}, error) {
	db := r.client.DB(r.dbName)

	docID := fmt.Sprintf("note:%s", id)
	row := db.Get(context.Background(), docID)

	var doc map[string]interface{}
	if err := row.ScanDoc(&doc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch note: %w", err)
	}

	return doc, nil
}

func (r *noteRepository) putDoc(id string, doc map[string]interface{}) error {
	db := r.client.DB(r.dbName)
	docID := fmt.Sprintf("note:%s", id)

	_, err := db.Put(context.Background(), docID, doc)
	return err
}
