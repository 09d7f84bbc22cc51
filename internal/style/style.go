// Package style inspects the project-local clang-format style file that
// "-style=file" makes the checker use.
package style

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/andyballingall/fmtcheck/internal/config"
	"github.com/andyballingall/fmtcheck/internal/validator"
)

// SchemaID identifies the embedded style schema.
const SchemaID = "https://fmtcheck.dev/schemas/clang-format.schema.json"

//go:embed clang-format.schema.json
var schemaJSON []byte

// Document is one YAML document of a style file. Multi-document files hold
// one section per language.
type Document struct {
	Index int
	Value any
}

// Field returns the string value of a top-level key, or "" if absent.
func (d Document) Field(key string) string {
	m, ok := d.Value.(map[string]any)
	if !ok {
		return ""
	}
	if v, ok := m[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// File is a parsed style file.
type File struct {
	Path      string
	Documents []Document
}

// Locate returns the path of the style file in root. ".clang-format" wins
// over "_clang-format" when both exist.
func Locate(root string) (string, error) {
	for _, name := range config.StyleFileNames {
		p := filepath.Join(root, name)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", &MissingStyleFileError{Root: root}
}

// Load parses every YAML document in the style file at path. Empty documents
// are skipped.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f := &File{Path: path}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for i := 0; ; i++ {
		var v any
		if dErr := dec.Decode(&v); dErr != nil {
			if errors.Is(dErr, io.EOF) {
				break
			}
			return nil, &InvalidYAMLError{Path: path, Wrapped: dErr}
		}
		if v == nil {
			continue
		}
		f.Documents = append(f.Documents, Document{Index: i, Value: v})
	}
	return f, nil
}

// Checker validates style files against the embedded schema.
type Checker struct {
	v validator.Validator
}

// NewChecker compiles the embedded schema with c.
func NewChecker(c validator.Compiler) (*Checker, error) {
	doc, err := validator.Decode(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("embedded style schema: %w", err)
	}
	if err = c.AddSchema(SchemaID, doc); err != nil {
		return nil, fmt.Errorf("embedded style schema: %w", err)
	}
	v, err := c.Compile(SchemaID)
	if err != nil {
		return nil, fmt.Errorf("embedded style schema: %w", err)
	}
	return &Checker{v: v}, nil
}

// Validate checks each document of f, stopping at the first failure.
func (c *Checker) Validate(f *File) error {
	for _, d := range f.Documents {
		doc, err := validator.FromValue(d.Value)
		if err != nil {
			return &InvalidStyleError{Path: f.Path, Index: d.Index, Wrapped: err}
		}
		if err = c.v.Validate(doc); err != nil {
			return &InvalidStyleError{Path: f.Path, Index: d.Index, Wrapped: err}
		}
	}
	return nil
}

// Inspect locates, loads and validates the style file in root.
func (c *Checker) Inspect(root string) (*File, error) {
	p, err := Locate(root)
	if err != nil {
		return nil, err
	}
	f, err := Load(p)
	if err != nil {
		return nil, err
	}
	if err = c.Validate(f); err != nil {
		return f, err
	}
	return f, nil
}
