// Package output - Building entries from field results
package output

import (
	"quantity-editor/core/field"
	"quantity-editor/core/types"
	"quantity-editor/core/validation"
)

// Operation names
const (
	OpText      = "text"
	OpIncrement = "increment"
	OpDecrement = "decrement"
	OpUnit      = "unit"
)

// TextEntry records a text change
func TextEntry(f *field.Field, input string, res field.TextResult) Entry {
	e := Entry{
		Operation: OpText,
		Input:     input,
		Result:    res.FormattedValue,
	}

	switch res.State {
	case types.StateEmpty:
		e.Status = StatusEmpty
	case types.StatePartial:
		e.Status = StatusPartial
	case types.StateComplete:
		e.Status = StatusOK
	default:
		e.Status = StatusInvalid
	}

	if res.Quantity != nil {
		e.Base = baseText(f, *res.Quantity)
	}
	setReason(&e, res.Reason)
	return e
}

// StepEntry records an increment or decrement
func StepEntry(f *field.Field, dir types.Direction, from types.Quantity, res types.StepResult) Entry {
	e := Entry{
		Operation: OpIncrement,
		Input:     from.RawText,
		Status:    StatusOK,
		Result:    res.Quantity.RawText,
		Base:      baseText(f, res.Quantity),
	}
	if dir == types.Decrement {
		e.Operation = OpDecrement
	}
	if res.Rejected() {
		e.Status = StatusRejected
		setReason(&e, res.Message)
	}
	return e
}

// UnitEntry records a unit switch
func UnitEntry(f *field.Field, from, to types.Quantity, err error) Entry {
	e := Entry{
		Operation: OpUnit,
		Input:     from.RawText,
		Status:    StatusOK,
		Result:    to.RawText,
		Base:      baseText(f, to),
	}
	if err != nil {
		e.Status = StatusRejected
		if kind, ok := types.KindOf(err); ok {
			setReason(&e, kind)
		} else {
			e.Message = err.Error()
		}
	}
	return e
}

// Summarize describes a field for the catalog
func Summarize(f *field.Field) FieldSummary {
	cfg := f.Units()
	rules := f.Rules()
	return FieldSummary{
		Name:          f.Name(),
		Scale:         cfg.Name(),
		Units:         cfg.Symbols(),
		DefaultUnit:   cfg.Unit(f.DefaultUnitIndex()).Symbol,
		Min:           rules.Min.String(),
		Max:           rules.Max.String(),
		BaseUnit:      cfg.Unit(cfg.BaseIndex()).Symbol,
		MultipleUnits: f.AllowMultipleUnits(),
	}
}

func baseText(f *field.Field, q types.Quantity) string {
	cfg := f.Units()
	if !cfg.Valid(q.UnitIndex) {
		return ""
	}
	return validation.ToBase(q, cfg).String() + " " + cfg.Unit(cfg.BaseIndex()).Symbol
}

func setReason(e *Entry, kind types.ErrorKind) {
	if kind == types.KindNone {
		return
	}
	e.Reason = kind.String()
	e.Message = kind.Error()
}
