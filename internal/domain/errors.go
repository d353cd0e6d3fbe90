package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDatabaseURLMissing = errors.New("Database URL not defined.")
	ErrListingNotFound    = errors.New("Listing not found.")
)

// GenericFailureMessage is the only detail callers get for execution failures.
const GenericFailureMessage = "Something went wrong."

// ExecutionError wraps a datastore failure. Op names the failing step for logs.
type ExecutionError struct {
	Op  string
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Execution wraps err as an ExecutionError; nil stays nil.
func Execution(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ExecutionError{Op: op, Err: err}
}
