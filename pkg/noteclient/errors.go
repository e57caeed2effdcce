package noteclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidNoteType = errors.New("note type must be one of: text, audio, image")
	ErrEmptyTitle      = errors.New("title is required")
	ErrNoFile          = errors.New("file is required")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
