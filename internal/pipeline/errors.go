package pipeline

import (
	"errors"
	"fmt"
)

// UploadError indicates that uploading a dataset failed. The
// previously uploaded dataset, if any, remains valid.
type UploadError struct {
	// Message is the human readable failure reason.
	Message string

	// Err is the OPTIONAL underlying error.
	Err error
}

// Error implements error.
func (err *UploadError) Error() string {
	return "pipeline: upload: " + err.Message
}

// Unwrap returns the underlying error.
func (err *UploadError) Unwrap() error {
	return err.Err
}

// ProcessingError indicates that a clean, report, or export
// call failed.
type ProcessingError struct {
	// Operation is the failed operation (e.g., "clean").
	Operation string

	// Message is the human readable failure reason.
	Message string

	// Err is the OPTIONAL underlying error.
	Err error
}

// Error implements error.
func (err *ProcessingError) Error() string {
	return fmt.Sprintf("pipeline: %s: %s", err.Operation, err.Message)
}

// Unwrap returns the underlying error.
func (err *ProcessingError) Unwrap() error {
	return err.Err
}

// MessageOf returns the human readable message of err: the Message
// of an [*UploadError] or [*ProcessingError], or err.Error().
func MessageOf(err error) string {
	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		return uploadErr.Message
	}
	var processingErr *ProcessingError
	if errors.As(err, &processingErr) {
		return processingErr.Message
	}
	return err.Error()
}

// httpStatusMessage returns the fallback message for a failed status code.
func httpStatusMessage(status int) string {
	return fmt.Sprintf("HTTP %d", status)
}
