package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrNoManifest marks a starter without registry.json. Not fatal.
	ErrNoManifest = errors.New("no registry.json found")

	// ErrSourceMissing marks a file reference that does not resolve.
	ErrSourceMissing = errors.New("source file not found")

	// ErrPathEscape marks a file reference that points outside src/.
	ErrPathEscape = errors.New("path escapes the starter source root")

	// ErrNoFiles marks a non-style item without files.
	ErrNoFiles = errors.New("item has no files")
)

// ItemError reports a failure while building one manifest item.
type ItemError struct {
	Starter string
	Item    string
	Err     error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("building %s/%s: %v", e.Starter, e.Item, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
