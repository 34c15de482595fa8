package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the record does not exist for this owner
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateTag indicates a tag with the same name (case-insensitively)
	// already exists for this owner
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrNotSaved indicates a mark-applied call on a record that is not in
	// the saved state
	ErrNotSaved = errors.New("application is not in saved state")

	// ErrStoreUnavailable indicates the backing relation is missing or not
	// provisioned; callers redirect to the setup flow instead of retrying
	ErrStoreUnavailable = errors.New("backing store is not provisioned")
)

// ValidationError reports a missing or malformed field, rejected before any
// gateway call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// CascadeError reports a tag deletion cascade that stopped partway. Updated
// lists the records already stripped of the tag; Remaining counts the records
// still referencing it. The Tag row itself is left intact so the operation
// can be retried.
type CascadeError struct {
	Tag       string
	Updated   []uint
	Remaining int
	Err       error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("tag %q: cascade stopped with %d record(s) still referencing it: %v",
		e.Tag, e.Remaining, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}
