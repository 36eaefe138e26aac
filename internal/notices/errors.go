package notices

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a notice id does not exist.
var ErrNotFound = errors.New("notice not found")

// ValidationError rejects a create/update before it reaches the store.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}
