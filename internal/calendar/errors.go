package calendar

import (
	"errors"
	"fmt"
)

// ErrNotOwner is returned when someone other than the named employee tries
// to delete a request.
var ErrNotOwner = errors.New("only the employee who added a request can delete it")

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bad leave %s: %s", e.Field, e.Message)
}

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("leave request %q not found", e.ID)
}
