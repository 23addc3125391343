package entity

import "errors"

// Domain errors
var (
	// Pipeline errors
	ErrSourceUnavailable = errors.New("faq source unavailable")
	ErrEmbeddingService  = errors.New("embedding service failed")
	ErrCompletionService = errors.New("completion service failed")

	// Validation errors
	ErrMissingField = errors.New("required field is missing")
	ErrInvalidRole  = errors.New("invalid message role")
)
