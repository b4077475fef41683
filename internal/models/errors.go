package models

import (
	"errors"
	"fmt"
)

// ErrNoRoutes is returned when route analysis is asked to rank an empty
// candidate list. Distinct from a valid analysis that found zero incidents.
var ErrNoRoutes = errors.New("no route candidates to analyze")

// LoadError indicates the source dataset could not be loaded. Fatal at
// startup; a reload with a corrected path recovers from it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError indicates malformed query parameters. The request is
// rejected outright; no partial results are produced.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
