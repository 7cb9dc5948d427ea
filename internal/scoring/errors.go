package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every tender or capacity validation failure.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
