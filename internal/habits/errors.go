package habits

import (
	"errors"
	"fmt"
)

// ErrNotLoaded is returned by mutations attempted before Load.
var ErrNotLoaded = errors.New("habits not loaded yet")

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bad habit %s: %s", e.Field, e.Message)
}

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("habit %q not found", e.ID)
}
