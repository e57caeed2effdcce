package noteclient

import (
	"io"
	"time"
)

type NoteType string

const (
	NoteTypeText  NoteType = "text"
	NoteTypeAudio NoteType = "audio"
	NoteTypeImage NoteType = "image"
)

func (t NoteType) Validate() error {
	switch t {
	case NoteTypeText, NoteTypeAudio, NoteTypeImage:
		return nil
	}
	return ErrInvalidNoteType
}

type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   *string   `json:"content" yaml:"content"`
	Type      NoteType  `json:"type" yaml:"type"`
	FilePath  *string   `json:"file_path" yaml:"file_path"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// File is a local file sent with an audio or image note.
type File struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// UpdateInput mirrors the partial update body. Nil fields are left out; ClearContent
// sends an explicit null.
type UpdateInput struct {
	Title        *string
	Content      *string
	ClearContent bool
}

type Health struct {
	Status string `json:"status"`
	Notes  int64  `json:"notes"`
}
