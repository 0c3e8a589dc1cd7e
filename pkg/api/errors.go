package api

import (
	"fmt"

	"github.com/pkg/errors"
)

// MissingFieldError is returned when a required configuration field is absent.
// It is always fatal to the whole synthesis run.
type MissingFieldError struct {
	// Task is the identifier of the faulty task, empty for root-level fields.
	Task  string
	Field string
}

func (e MissingFieldError) Error() string {
	if e.Task != "" {
		return fmt.Sprintf("task %s: missing required field %s", e.Task, e.Field)
	}
	return fmt.Sprintf("missing required field %s", e.Field)
}

// IsMissingField returns true if the cause of the given error is a MissingFieldError.
func IsMissingField(err error) bool {
	_, ok := errors.Cause(err).(MissingFieldError)
	return ok
}
