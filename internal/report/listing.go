// Package report writes fmtcheck's human and machine readable output.
package report

import (
	"io"
	"path/filepath"

	"github.com/andyballingall/fmtcheck/internal/discover"
)

// Listing is the discovery result for a project root.
type Listing struct {
	Root       string
	Expansions []discover.Expansion
}

// Total returns the number of discovered files, counting duplicates.
func (l *Listing) Total() int {
	n := 0
	for _, e := range l.Expansions {
		n += len(e.Files)
	}
	return n
}

// rel returns p relative to the listing root when possible.
func (l *Listing) rel(p string) string {
	r, err := filepath.Rel(l.Root, p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(r)
}

// Reporter writes a Listing.
type Reporter interface {
	Write(w io.Writer, l *Listing) error
}
