package domain

import "errors"

// Failure kinds surfaced by the member store. Callers match with errors.Is.
var (
	// ErrDataUnavailable: the backing source could not be read or parsed.
	ErrDataUnavailable = errors.New("member data unavailable")
	// ErrWriteFailed: the row could not be committed to the backing source.
	ErrWriteFailed = errors.New("member write failed")
	// ErrDuplicatePhone: a record with the same normalized phone already exists.
	ErrDuplicatePhone = errors.New("phone number already registered")
	// ErrColumnNotFound: an expected column is absent from the dataset.
	ErrColumnNotFound = errors.New("column not found")
	// ErrValidationFailed: a required field is missing from the submission.
	ErrValidationFailed = errors.New("validation failed")
)
