package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/seoscan/seoscan/internal/model"
)

// JSONWriter outputs reports in JSON format for machine consumption.
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report as indented JSON followed by a trailing newline.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal report: %w", err)
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
