package submission

import (
	"errors"
	"strings"
)

var (
	// ErrUnsupportedMedia rejects uploads that are not PDF.
	ErrUnsupportedMedia = errors.New("resume must be a PDF file")

	// ErrTooLarge rejects uploads over the configured size ceiling.
	ErrTooLarge = errors.New("resume file is too large")

	// ErrInvalidID reports a download id that is not a well-formed UUID.
	ErrInvalidID = errors.New("invalid resume id")

	// ErrNotFound reports a well-formed id with no stored resume behind it.
	ErrNotFound = errors.New("resume not found")
)

// ValidationError lists the required fields missing from a submission.
// It is returned before anything is written to storage.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}
