// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrTenantNotFound is returned by lookups when no tenant matches the given key.
var ErrTenantNotFound = errors.New("tenant not found")

// ErrInvalidRepoFormat is returned when a repository string is not in 'owner/name' format.
type ErrInvalidRepoFormat struct {
	Repo string
}

func (e *ErrInvalidRepoFormat) Error() string {
	return fmt.Sprintf("invalid repository format: %q, expected 'owner/name'", e.Repo)
}
