package style

import (
	"fmt"
	"strings"
)

// MissingStyleFileError reports that no style file exists in the project root.
type MissingStyleFileError struct {
	Root string
}

func (e *MissingStyleFileError) Error() string {
	return fmt.Sprintf("no .clang-format or _clang-format in: %s", e.Root)
}

// InvalidYAMLError reports a style file that is not valid YAML.
type InvalidYAMLError struct {
	Path    string
	Wrapped error
}

func (e *InvalidYAMLError) Error() string {
	return fmt.Sprintf("%s is not a valid yaml document: %v", e.Path, e.Wrapped)
}

func (e *InvalidYAMLError) Unwrap() error {
	return e.Wrapped
}

// InvalidStyleError reports a style document that fails schema validation.
type InvalidStyleError struct {
	Path    string
	Index   int
	Wrapped error
}

func (e *InvalidStyleError) Error() string {
	// jsonschema errors span several lines; keep the first for the summary.
	msg, _, _ := strings.Cut(e.Wrapped.Error(), "\n")
	return fmt.Sprintf("%s document %d has invalid style options: %s", e.Path, e.Index, msg)
}

func (e *InvalidStyleError) Unwrap() error {
	return e.Wrapped
}
