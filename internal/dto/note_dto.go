package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NoteResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	Type      string    `json:"type"`
	FilePath  *string   `json:"file_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateTextNoteRequest struct {
	Title   string  `json:"title" form:"title" validate:"required,max=255"`
	Content *string `json:"content" form:"content"`
}

type CreateAudioNoteRequest struct {
	Title string `json:"title" form:"title" validate:"required,max=255"`
}

type CreateImageNoteRequest struct {
	Title   string  `json:"title" form:"title" validate:"required,max=255"`
	Content *string `json:"content" form:"content"`
}

type ListNotesByTypeRequest struct {
	Type string `json:"type" validate:"required,oneof=text audio image"`
}

// UpdateNoteRequest leaves a field untouched when it is absent from the body.
// Content additionally distinguishes an explicit null, which clears it.
type UpdateNoteRequest struct {
	Id      uuid.UUID      `json:"-"`
	Title   *string        `json:"title" validate:"omitempty,max=255"`
	Content NullableString `json:"content"`
}

// NullableString tracks whether a JSON field was present, and whether it was null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

type DeleteNoteResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Notes  int64  `json:"notes"`
}
