package project

import "fmt"

// ResolveError reports that the project root could not be determined.
type ResolveError struct {
	Path    string
	Wrapped error
}

func (e *ResolveError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot resolve project root: %v", e.Wrapped)
	}
	return fmt.Sprintf("cannot resolve project root from %s: %v", e.Path, e.Wrapped)
}

func (e *ResolveError) Unwrap() error {
	return e.Wrapped
}
