// Package format renders quantities back to canonical field text.
package format

import (
	"quantity-editor/core/types"
	"quantity-editor/core/units"
)

// Format renders "<value> <symbol>" with the shortest exact decimal and the
// registered symbol casing. The output always parses back to the same value
// and unit. A quantity without a valid unit renders as the bare number.
func Format(q types.Quantity, cfg *units.UnitConfig) string {
	value := q.Value.String()
	if !cfg.Valid(q.UnitIndex) {
		return value
	}
	return value + " " + cfg.Unit(q.UnitIndex).Symbol
}

// WithText returns q with RawText set to its canonical text
func WithText(q types.Quantity, cfg *units.UnitConfig) types.Quantity {
	q.RawText = Format(q, cfg)
	return q
}
