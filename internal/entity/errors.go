package entity

import "errors"

// Domain errors
var (
	// Indexing errors
	ErrNoContent = errors.New("no valid documents processed")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// File errors
	ErrFileTooLarge      = errors.New("file too large")
	ErrTooManyFiles      = errors.New("too many files")
	ErrTotalSizeTooLarge = errors.New("total file size too large")

	// Validation errors
	ErrMissingField = errors.New("required field is missing")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
