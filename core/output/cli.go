// Package output - CLI table formatter
package output

import (
	"fmt"
	"io"
	"strings"

	"quantity-editor/core/ui"
)

// CLIFormatter renders tables through the terminal writer
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes one row per entry
func (f *CLIFormatter) Render(w io.Writer, report *Report) error {
	uw := ui.NewWriter(w, f.noColor)
	uw.Header("Field " + report.Field)

	table := uw.NewTable("OPERATION", "INPUT", "STATUS", "RESULT", "BASE", "REASON")
	for _, e := range report.Entries {
		table.AddRow(e.Operation, quote(e.Input), string(e.Status), e.Result, e.Base, e.Message)
	}
	table.Render()
	return nil
}

// RenderFields writes the field catalog
func (f *CLIFormatter) RenderFields(w io.Writer, fields []FieldSummary) error {
	uw := ui.NewWriter(w, f.noColor)
	uw.Header("Fields")

	table := uw.NewTable("NAME", "SCALE", "UNITS", "DEFAULT", "MIN", "MAX", "CARRY")
	for _, s := range fields {
		carry := "no"
		if s.MultipleUnits {
			carry = "yes"
		}
		table.AddRow(s.Name, s.Scale, strings.Join(s.Units, ", "), s.DefaultUnit,
			s.Min+" "+s.BaseUnit, s.Max+" "+s.BaseUnit, carry)
	}
	table.Render()
	return nil
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
