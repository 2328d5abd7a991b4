package catalog

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrDuplicateCategory is wrapped by the ValidationError returned when a
// category name is already taken.
var ErrDuplicateCategory = errors.New("category already exists")

// ValidationError reports a local check that failed before any network call.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NotFoundError reports an operation targeting an id absent from the snapshot.
type NotFoundError struct {
	Kind string // "item" or "category"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// UpstreamError reports a failed or rejected backend call.
type UpstreamError struct {
	Op     string
	Status int // zero for transport failures
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsNotFound reports whether the backend answered 404.
func (e *UpstreamError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
