package report

import (
	"encoding/json"
	"io"
)

// JSONReporter implements Reporter for JSON output.
type JSONReporter struct{}

type jsonPattern struct {
	Pattern string   `json:"pattern"`
	Files   []string `json:"files"`
}

type jsonOutput struct {
	Root     string        `json:"root"`
	Patterns []jsonPattern `json:"patterns"`
	Total    int           `json:"total"`
}

func (jr *JSONReporter) Write(w io.Writer, l *Listing) error {
	out := jsonOutput{
		Root:     l.Root,
		Patterns: make([]jsonPattern, 0, len(l.Expansions)),
		Total:    l.Total(),
	}

	for _, e := range l.Expansions {
		files := e.Files
		if files == nil {
			files = []string{}
		}
		out.Patterns = append(out.Patterns, jsonPattern{
			Pattern: e.Pattern.String(),
			Files:   files,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
