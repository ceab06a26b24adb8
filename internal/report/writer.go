package report

import (
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/seoscan/seoscan/internal/model"
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously, for example to a
// terminal and a file in one run.
//
// Design decision: We implement this as a separate type rather than using
// io.MultiWriter because our Writer interface is different from io.Writer -
// we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers. Returns the total
// bytes written; stops on the first error encountered.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// categoryCaser title-cases category names for display ("meta" -> "Meta").
var categoryCaser = cases.Title(language.English)

// categoryTitle renders a category tag as a display heading.
func categoryTitle(category model.Category) string {
	return categoryCaser.String(string(category))
}

// statusSymbol maps a status to its terminal marker.
func statusSymbol(status model.Status) string {
	switch status {
	case model.StatusPass:
		return "✓"
	case model.StatusNeutral:
		return "•"
	case model.StatusWarning:
		return "!"
	case model.StatusError:
		return "✗"
	default:
		return "?"
	}
}
