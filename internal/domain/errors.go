package domain

import "errors"

// Domain errors
var (
	ErrDocumentsDirNotFound = errors.New("documents directory not found")
	ErrTaskNotFound         = errors.New("task file not found")
	ErrNoDocuments          = errors.New("no documents could be processed")
	ErrNoSections           = errors.New("no sections with headings found")
	ErrEmbedderUnavailable  = errors.New("embedding collaborator unavailable")
	ErrPersistenceDisabled  = errors.New("run persistence is not configured")
	ErrRunNotFound          = errors.New("analysis run not found")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
