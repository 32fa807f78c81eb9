package series

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch indicates x and y arrays of different length.
var ErrLengthMismatch = errors.New("x and y lengths differ")

// ErrUnknownSeries indicates a series that was never added to the chart.
var ErrUnknownSeries = errors.New("unknown series")

// ErrUnknownKind indicates a series kind name that does not exist.
var ErrUnknownKind = errors.New("unknown series kind")

// ErrMixedOrientation indicates bar and column kinds in one chart.
var ErrMixedOrientation = errors.New("bar and column series cannot share a chart")

// DataError reports malformed input for one series.
type DataError struct {
	Series string
	Field  string // "x", "y", "z"
	Err    error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("series %q (%s): %v", e.Series, e.Field, e.Err)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(series, field string, err error) *DataError {
	return &DataError{Series: series, Field: field, Err: err}
}
