package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation        Kind = "validation"
	KindMissingAttachment Kind = "missing_attachment"
	KindNotFound          Kind = "not_found"
	KindUnsupportedMedia  Kind = "unsupported_media"
	KindPayloadTooLarge   Kind = "payload_too_large"
	KindStore             Kind = "store"
)

// AppError carries the failure kind the HTTP layer maps to a status code.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError of the same kind, so errors.Is(err, apperror.ErrNotFound) works.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation        = &AppError{Kind: KindValidation, Message: "validation failed"}
	ErrMissingAttachment = &AppError{Kind: KindMissingAttachment, Message: "attachment is required"}
	ErrNotFound          = &AppError{Kind: KindNotFound, Message: "not found"}
	ErrUnsupportedMedia  = &AppError{Kind: KindUnsupportedMedia, Message: "unsupported media type"}
	ErrPayloadTooLarge   = &AppError{Kind: KindPayloadTooLarge, Message: "payload too large"}
	ErrStore             = &AppError{Kind: KindStore, Message: "storage failure"}
)

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func MissingAttachment(message string) *AppError {
	return &AppError{Kind: KindMissingAttachment, Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

func UnsupportedMedia(message string, err error) *AppError {
	return &AppError{Kind: KindUnsupportedMedia, Message: message, Err: err}
}

func PayloadTooLarge(message string, err error) *AppError {
	return &AppError{Kind: KindPayloadTooLarge, Message: message, Err: err}
}

func Store(message string, err error) *AppError {
	return &AppError{Kind: KindStore, Message: message, Err: err}
}

// KindOf returns the kind of the first AppError in the chain, or "" if there is none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
