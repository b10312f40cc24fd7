// Package output - JSON formatter
package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter renders indented JSON
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the report
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	return encode(w, report)
}

// RenderFields writes the catalog
func (f *JSONFormatter) RenderFields(w io.Writer, fields []FieldSummary) error {
	return encode(w, map[string]interface{}{"fields": fields})
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
