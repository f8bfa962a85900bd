package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInvalidParameter is returned when k or the confidence level is outside its domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrMalformedInput is returned for empty grids, ragged rows and unparsable values.
	ErrMalformedInput = errors.New("malformed input")
	ErrEmptyInput     = fmt.Errorf("%w: no rows", ErrMalformedInput)

	// ErrInvalidDesign is returned when the grid is not a 2^k x r design.
	ErrInvalidDesign = errors.New("invalid design")
	ErrNotPowerOfTwo = fmt.Errorf("%w: row count is not a power of two", ErrInvalidDesign)
	ErrNoReplicates  = fmt.Errorf("%w: no replicates", ErrInvalidDesign)
	ErrNoFactors     = fmt.Errorf("%w: no factors", ErrInvalidDesign)
)

// Error constructors with context
func NewInvalidParameterError(name string, value interface{}, reason string) error {
	return fmt.Errorf("%w: %s = %v: %s", ErrInvalidParameter, name, value, reason)
}

func NewRaggedRowError(row, got, want int) error {
	return fmt.Errorf("%w: row %d has %d values, expected %d", ErrMalformedInput, row+1, got, want)
}

func NewBadValueError(row, col int, reason string) error {
	return fmt.Errorf("%w: row %d, column %d: %s", ErrMalformedInput, row+1, col+1, reason)
}

func NewRowCountError(rows int) error {
	return fmt.Errorf("%w: got %d rows", ErrNotPowerOfTwo, rows)
}

// Error checking helpers
func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

func IsInvalidDesign(err error) bool {
	return errors.Is(err, ErrInvalidDesign)
}
