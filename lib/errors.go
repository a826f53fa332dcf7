package employeedb

import "errors"

// ErrMissingQuery is returned when the query text is empty.
// The store is never touched in this case.
var ErrMissingQuery = errors.New("no query provided")

// InitError is returned when the store could not be created or seeded.
type InitError struct {
	Parent error
}

// QueryError is returned when a query fails to open, execute or commit.
type QueryError struct {
	Parent error
}

func NewInitError(err error) error {
	return InitError{Parent: err}
}

func NewQueryError(err error) error {
	return QueryError{Parent: err}
}

func (e InitError) Error() string {
	return "initialize store: " + e.Parent.Error()
}

func (e InitError) Unwrap() error {
	return e.Parent
}

func (e QueryError) Error() string {
	return "query error: " + e.Parent.Error()
}

func (e QueryError) Unwrap() error {
	return e.Parent
}
