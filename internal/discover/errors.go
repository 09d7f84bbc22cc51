package discover

import "fmt"

// PatternError reports a pattern that could not be expanded.
type PatternError struct {
	Pattern Pattern
	Wrapped error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("cannot expand pattern %q: %v", e.Pattern, e.Wrapped)
}

func (e *PatternError) Unwrap() error {
	return e.Wrapped
}
