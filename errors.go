package palate

import (
	"errors"
	"fmt"
)

// Common errors returned by the Palate engine.
var (
	// ErrInvalidLimit is returned when a non-positive result limit is requested.
	ErrInvalidLimit = errors.New("limit must be a positive integer")

	// ErrMalformedContext is returned when a context bag value has the wrong type.
	ErrMalformedContext = errors.New("malformed context")

	// ErrEmptyUserID is returned when a request omits the user identifier.
	ErrEmptyUserID = errors.New("user id cannot be empty")

	// ErrEmptyItemID is returned when a catalog item omits its identifier.
	ErrEmptyItemID = errors.New("item id cannot be empty")

	// ErrItemNotFound is returned when a catalog item is not found.
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrStoreClosed is returned when operating on a closed model store.
	ErrStoreClosed = errors.New("model store is closed")

	// ErrEngineClosed is returned when operating on a closed engine.
	ErrEngineClosed = errors.New("engine is closed")
)

// ValidationError is returned when configuration or input validation fails.
// Extractable via errors.As().
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// PipelineError wraps a fault recovered inside the scoring pipeline.
// It is logged and replaced by the fallback result, never surfaced to the
// caller of Recommend. Extractable via errors.As(). Supports Unwrap().
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline: %s failed: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
