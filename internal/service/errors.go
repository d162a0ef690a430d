package service

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrPositionNotFound no position matches the given id (and user, for user-scoped lookups)
	ErrPositionNotFound = errors.New("position not found")
	// ErrPositionClosed close attempted on a position that is not open
	ErrPositionClosed = errors.New("position already closed")
)

// ValidationError required request fields missing/falsy, or an invalid field value
type ValidationError struct {
	Missing []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Missing) == 0 {
		return "missing required fields"
	}
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}
