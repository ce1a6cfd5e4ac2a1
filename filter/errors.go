package filter

import (
	"errors"

	"hermannm.dev/wrap"
)

var ErrUnknownDateFilter = errors.New("unknown date filter")

// Error is returned when a filter could not be evaluated against a table.
type Error struct {
	Column string
	Err    error
}

func (err *Error) Error() string {
	return wrap.Errorf(err.Err, "error with filter on column '%s'", err.Column).Error()
}

func (err *Error) Unwrap() error {
	return err.Err
}
