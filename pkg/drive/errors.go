package drive

// StoreError represents a domain error from drive operations.
//
// These are business logic errors (folder not found, wrong owner, etc.)
// as opposed to infrastructure errors (disk failure, network error).
// The HTTP layer translates ErrorCode values to status codes.
type StoreError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Path is the folder path or record name related to the error (if any)
	Path string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Path != "" {
		return e.Message + ": " + e.Path
	}
	return e.Message
}

// ErrorCode represents the category of a drive error.
type ErrorCode int

const (
	// ErrNotFound indicates the referenced folder, file or parent doesn't exist
	ErrNotFound ErrorCode = iota

	// ErrForbidden indicates the record exists but belongs to a different owner
	ErrForbidden

	// ErrUnauthenticated indicates no owner identity could be resolved
	ErrUnauthenticated

	// ErrInvalidArgument indicates missing or malformed required input.
	// Detected before any mutation; the operation has no side effects.
	ErrInvalidArgument

	// ErrAlreadyExists indicates a sibling with the same name already exists.
	// Only returned when server-side name uniqueness is enabled.
	ErrAlreadyExists

	// ErrIOError indicates the underlying persistence operation failed
	ErrIOError

	// ErrExternalService indicates the object storage collaborator failed.
	// For deletions the local record is already gone when this is returned;
	// callers should re-fetch state rather than trust the error alone.
	ErrExternalService
)

// CodeOf extracts the ErrorCode from an error, returning ErrIOError for
// non-domain errors.
func CodeOf(err error) ErrorCode {
	if se, ok := err.(*StoreError); ok {
		return se.Code
	}
	return ErrIOError
}
