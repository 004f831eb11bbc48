package motion

import (
	"errors"
	"fmt"
)

// Kind classifies analysis failures so callers can decide whether to retry.
type Kind int

const (
	KindUnknown Kind = iota
	// KindStorage means the upload could not be written to a temporary file.
	KindStorage
	// KindOpen means the decoder could not open the video.
	KindOpen
	// KindEmpty means the video reports no frames.
	KindEmpty
	// KindDecode means decoding failed while reading frames.
	KindDecode
	// KindCanceled means the context was canceled or timed out.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindOpen:
		return "open"
	case KindEmpty:
		return "empty"
	case KindDecode:
		return "decode"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

var (
	ErrCannotOpen = &Error{Kind: KindOpen, Message: "Cannot open video file"}
	ErrEmptyVideo = &Error{Kind: KindEmpty, Message: "Video has no frames"}
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrEmptyVideo)
// works for every empty video failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Retryable is true for transient failures. The same bytes will fail the same
// way on open, empty and decode failures.
func (e *Error) Retryable() bool {
	return e.Kind == KindStorage || e.Kind == KindCanceled
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable()
}

func storageError(err error) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf("unable to store video: %v", err), Err: err}
}

func openError(err error) *Error {
	return &Error{Kind: KindOpen, Message: ErrCannotOpen.Message, Err: err}
}

func decodeError(err error) *Error {
	message := err.Error()
	if message == "" {
		message = "unable to decode video"
	}
	return &Error{Kind: KindDecode, Message: message, Err: err}
}

func canceledError(err error) *Error {
	return &Error{Kind: KindCanceled, Message: fmt.Sprintf("analysis canceled: %v", err), Err: err}
}
