// Package runtime provides the shared error taxonomy for ormkit.
package runtime

import (
	"errors"
	"fmt"
)

// Error types for runtime operations.
var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidArgument is returned when an operation is given an
	// unusable argument, such as an empty insert payload.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyValues is returned when an insert or update is attempted
	// with no column values.
	ErrEmptyValues = fmt.Errorf("%w: empty column values", ErrInvalidArgument)

	// ErrEmptyInList is returned when an IN predicate is given no values.
	ErrEmptyInList = fmt.Errorf("%w: IN predicate with no values", ErrInvalidArgument)

	// ErrInvalidDirection is returned for an ORDER BY direction other
	// than ASC or DESC.
	ErrInvalidDirection = fmt.Errorf("%w: order direction must be ASC or DESC", ErrInvalidArgument)

	// ErrMissingPrimaryKey is returned when an instance operation needs a
	// primary key value that is not set.
	ErrMissingPrimaryKey = errors.New("primary key attribute not set")

	// ErrConnectionFailed is returned when the database connection fails.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrTransactionFailed is returned when a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")
)

// QueryError represents a query execution error with context.
type QueryError struct {
	Operation string
	Table     string
	Cause     error
	Query     string
	Args      []interface{}
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s on %s: %v", e.Operation, e.Table, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *QueryError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewQueryError creates a new QueryError.
func NewQueryError(op, table string, cause error) *QueryError {
	return &QueryError{
		Operation: op,
		Table:     table,
		Cause:     cause,
	}
}

// NotFoundError is returned when a record looked up by id is not found.
type NotFoundError struct {
	Table string
	ID    interface{}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("no record in %s with id %v", e.Table, e.ID)
	}
	return fmt.Sprintf("no record found in %s", e.Table)
}

// Is checks if the error is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidArgument checks if an error is an invalid argument error.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
