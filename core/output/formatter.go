// Package output provides output formatting interfaces.
// This package renders field interactions for humans and machines.
package output

import (
	"io"

	"quantity-editor/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the interactions of one field session
	Render(w io.Writer, report *Report) error

	// RenderFields writes the field catalog
	RenderFields(w io.Writer, fields []FieldSummary) error
}

// Report is a sequence of interactions against one field
type Report struct {
	// Field is the field name
	Field string `json:"field"`

	// Entries are the interactions in order
	Entries []Entry `json:"entries"`
}

// Status of one interaction
type Status string

const (
	StatusOK       Status = "ok"
	StatusEmpty    Status = "empty"
	StatusPartial  Status = "partial"
	StatusInvalid  Status = "invalid"
	StatusRejected Status = "rejected"
)

// Entry is one interaction and its outcome
type Entry struct {
	// Operation is text, increment, decrement or unit
	Operation string `json:"operation"`

	// Input is the text or quantity the operation started from
	Input string `json:"input"`

	// Status summarizes the outcome
	Status Status `json:"status"`

	// Result is the canonical text after the operation
	Result string `json:"result,omitempty"`

	// Base is the result in base units, e.g. "1048576 B"
	Base string `json:"base,omitempty"`

	// Reason names the rejection kind
	Reason string `json:"reason,omitempty"`

	// Message is the readable rejection text
	Message string `json:"message,omitempty"`
}

// FieldSummary describes one configured field
type FieldSummary struct {
	Name          string   `json:"name"`
	Scale         string   `json:"scale"`
	Units         []string `json:"units"`
	DefaultUnit   string   `json:"default_unit"`
	Min           string   `json:"min"`
	Max           string   `json:"max"`
	BaseUnit      string   `json:"base_unit"`
	MultipleUnits bool     `json:"multiple_units"`
}

// Get returns the formatter for a format
func Get(format Format, noColor bool) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return NewCLIFormatter(noColor), nil
	case FormatJSON:
		return NewJSONFormatter(), nil
	}
	return nil, errors.NotSupported("output format " + string(format))
}
