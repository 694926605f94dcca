package errs

import (
	"errors"
	"fmt"
)

// Result discipline shared by every data-fetch operation.
// Callers match with errors.Is.
var (
	// ErrNotFound is a legitimate empty state: unknown id, 404, empty snapshot.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput marks a caller or configuration error.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransport covers network failures, unexpected status codes and malformed bodies.
	ErrTransport = errors.New("transport failure")

	// ErrInvalidRegion is returned for region codes outside the known tables.
	ErrInvalidRegion = fmt.Errorf("%w: unsupported region", ErrInvalidInput)

	// ErrFirstPageNotLoaded is returned when a next page is requested before the first one.
	ErrFirstPageNotLoaded = fmt.Errorf("%w: first page not loaded", ErrInvalidInput)
)
