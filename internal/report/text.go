package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/andyballingall/fmtcheck/internal/style"
)

// TextReporter implements Reporter for plain text output.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

const (
	colReset     = "\033[0m"
	colRed       = "\033[31m"
	colGreen     = "\033[32m"
	colGrey      = "\033[90m"
	colWhite     = "\033[37m"
	colBoldWhite = "\033[1;37m"
)

// cs returns a string which will render with the given colour
// if colourisation is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

// Write prints one path per line, exactly as they are passed to the checker.
// In verbose mode paths are grouped by pattern and shown relative to the root.
func (tr *TextReporter) Write(w io.Writer, l *Listing) error {
	if !tr.Verbose {
		for _, e := range l.Expansions {
			for _, f := range e.Files {
				fmt.Fprintln(w, f)
			}
		}
		return nil
	}

	divider := strings.Repeat("-", 40)
	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Root:"), tr.cs(colWhite, l.Root))
	fmt.Fprintf(w, "%s\n", divider)

	for _, e := range l.Expansions {
		fmt.Fprintf(w, "%s %s\n", tr.cs(colBoldWhite, e.Pattern.String()), tr.cs(colGrey, fmt.Sprintf("(%d)", len(e.Files))))
		for _, f := range e.Files {
			fmt.Fprintf(w, "  %s\n", l.rel(f))
		}
	}

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprintf(w, "%s%d\n", tr.cs(colBoldWhite, "Files: "), l.Total())
	fmt.Fprintf(w, "%s\n", divider)
	return nil
}

// WriteStyle prints a summary of an inspected style file. A nil err means
// the file passed validation.
func (tr *TextReporter) WriteStyle(w io.Writer, f *style.File, err error) error {
	if f == nil {
		fmt.Fprintf(w, "%s %v\n", tr.cs(colRed, "✗"), err)
		return nil
	}

	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Style file:"), tr.cs(colWhite, f.Path))
	for _, d := range f.Documents {
		lang := d.Field("Language")
		if lang == "" {
			lang = "(all)"
		}
		base := d.Field("BasedOnStyle")
		if base == "" {
			base = "-"
		}
		fmt.Fprintf(w, "  [%d] language: %s, based on: %s\n", d.Index, lang, base)
	}

	if err != nil {
		fmt.Fprintf(w, "%s %v\n", tr.cs(colRed, "✗"), err)
		return nil
	}
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGreen, "✓"), "style options are valid")
	return nil
}
