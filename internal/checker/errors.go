package checker

import "fmt"

// StartError reports that the checker could not be spawned.
type StartError struct {
	Tool    string
	Wrapped error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("cannot run %s: %v", e.Tool, e.Wrapped)
}

func (e *StartError) Unwrap() error {
	return e.Wrapped
}

// ExitCodeError carries a non-zero checker exit code back to the process
// entry point. The checker has already written its own diagnostics.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("checker exited with status %d", e.Code)
}
