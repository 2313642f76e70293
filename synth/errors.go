package synth

import (
	"errors"
	"strconv"
)

var (
	ErrUnsupportedType = errors.New("synth: unsupported type")
	ErrRecursionLimit  = errors.New("synth: recursion limit exceeded")
)

// UnsupportedTypeError is returned when no rule can produce a value of Type.
type UnsupportedTypeError struct {
	// Type is the identity of the offending type.
	Type string
	// Path locates the value within the root type.
	Path string
}

// Error implements the error interface.
func (e UnsupportedTypeError) Error() string {
	// Example: synth: unsupported type "io.Reader" at Order.Source
	return ErrUnsupportedType.Error() + " " + strconv.Quote(e.Type) + " at " + e.Path
}

// Unwrap makes errors.Is(err, ErrUnsupportedType) hold.
func (e UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// RecursionLimitError is returned when Config.MaxDepth is exceeded.
type RecursionLimitError struct {
	Limit int
	Path  string
}

// Error implements the error interface.
func (e RecursionLimitError) Error() string {
	return ErrRecursionLimit.Error() + " (" + strconv.Itoa(e.Limit) + ") at " + e.Path
}

// Unwrap makes errors.Is(err, ErrRecursionLimit) hold.
func (e RecursionLimitError) Unwrap() error { return ErrRecursionLimit }
