package simulation

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the sentinel wrapped by every lever validation failure.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError names the offending lever.
type ValidationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("lever %s=%d: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
