package repositories

import "fmt"

// ErrDuplicateLabel occurs when a create collides with an existing label id
// or an existing active label name.
type ErrDuplicateLabel struct {
	Field string
	Value string
}

func (e ErrDuplicateLabel) Error() string {
	return fmt.Sprintf("duplicate label %s: %q already exists", e.Field, e.Value)
}
