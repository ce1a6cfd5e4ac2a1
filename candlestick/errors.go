package candlestick

import (
	"hermannm.dev/wrap"
)

// AggregationError is returned when rows cannot be grouped by the category column.
type AggregationError struct {
	Column string
	Err    error
}

func (err *AggregationError) Error() string {
	return wrap.Errorf(err.Err, "cannot perform group-by for column '%s'", err.Column).Error()
}

func (err *AggregationError) Unwrap() error {
	return err.Err
}
