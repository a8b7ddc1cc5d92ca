package domain

import "time"

// Note is the sole persisted entity. Summary is derived from Text and is
// reset to null whenever Text changes.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Summary   *string   `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

type UpdateNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

type DeleteNoteResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}
