package entity

import (
	"time"

	"github.com/google/uuid"
)

type NoteType string

const (
	NoteTypeText  NoteType = "text"
	NoteTypeAudio NoteType = "audio"
	NoteTypeImage NoteType = "image"
)

func (t NoteType) String() string {
	return string(t)
}

// HasMedia reports whether notes of this type carry an uploaded file.
func (t NoteType) HasMedia() bool {
	return t == NoteTypeAudio || t == NoteTypeImage
}

type Note struct {
	Id        uuid.UUID
	Title     string
	Content   *string
	Type      NoteType
	FilePath  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
