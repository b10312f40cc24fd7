// Package field is the quantity editor consumed by presentation code.
//
// A Field is configured once (units, bounds, stepping mode, default unit)
// and then answers the four interactions of an input widget: text changed,
// increment, decrement and unit switch. It keeps no current value; the caller
// owns the text shown and passes the current quantity back in.
package field

import (
	"go.uber.org/zap"

	"quantity-editor/core/convert"
	"quantity-editor/core/format"
	"quantity-editor/core/parser"
	"quantity-editor/core/stepper"
	"quantity-editor/core/types"
	"quantity-editor/core/units"
	"quantity-editor/core/validation"
	"quantity-editor/internal/errors"
	"quantity-editor/internal/logging"
)

// Options configures one field instance
type Options struct {
	// Name identifies the field in registries and logs
	Name string

	// Units is the scale the field works in
	Units *units.UnitConfig

	// Rules bounds the field in base units
	Rules types.ValidationRules

	// AllowMultipleUnits enables carry and borrow on stepping
	AllowMultipleUnits bool

	// DefaultUnitIndex is the unit assumed for bare numbers
	DefaultUnitIndex int
}

// Field is an immutable, concurrency-safe quantity editor
type Field struct {
	opts Options
}

// TextResult is the outcome of a text change
type TextResult struct {
	State  types.ParseState `json:"state"`
	Reason types.ErrorKind  `json:"reason,omitempty"`

	// FormattedValue is the canonical text of the quantity, when there is one
	FormattedValue string `json:"formatted_value,omitempty"`

	// Quantity is set for complete text, including text that is out of
	// range so the caller can step it back
	Quantity *types.Quantity `json:"quantity,omitempty"`
}

// New validates the options
func New(opts Options) (*Field, error) {
	if opts.Name == "" {
		return nil, errors.Config("field name is empty")
	}
	if opts.Units == nil {
		return nil, errors.Configf("field %s has no units", opts.Name)
	}
	if !opts.Units.Valid(opts.DefaultUnitIndex) {
		return nil, errors.Configf("field %s: default unit %d outside scale %s",
			opts.Name, opts.DefaultUnitIndex, opts.Units.Name())
	}
	if _, err := types.NewValidationRules(opts.Rules.Min, opts.Rules.Max); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "field %s", opts.Name)
	}
	return &Field{opts: opts}, nil
}

// Name returns the field name
func (f *Field) Name() string { return f.opts.Name }

// Units returns the field scale
func (f *Field) Units() *units.UnitConfig { return f.opts.Units }

// Rules returns the base-unit bounds
func (f *Field) Rules() types.ValidationRules { return f.opts.Rules }

// AllowMultipleUnits reports whether stepping carries across units
func (f *Field) AllowMultipleUnits() bool { return f.opts.AllowMultipleUnits }

// DefaultUnitIndex returns the unit assumed for bare numbers
func (f *Field) DefaultUnitIndex() int { return f.opts.DefaultUnitIndex }

// UnitIndex resolves a unit symbol or alias of this field
func (f *Field) UnitIndex(symbol string) (int, error) {
	idx, ok := f.opts.Units.Lookup(symbol)
	if !ok {
		return types.NoUnit, errors.Wrapf(errors.TypeNotFound, types.UnitNotRecognized,
			"field %s has no unit %q", f.opts.Name, symbol)
	}
	return idx, nil
}

// OnTextChanged classifies text typed into the field. Bare numbers take the
// default unit.
func (f *Field) OnTextChanged(text string) TextResult {
	return f.OnTextChangedIn(text, f.opts.DefaultUnitIndex)
}

// OnTextChangedIn is OnTextChanged for a widget whose unit selector shows
// currentUnit; bare numbers take that unit.
func (f *Field) OnTextChangedIn(text string, currentUnit int) TextResult {
	if !f.opts.Units.Valid(currentUnit) {
		currentUnit = f.opts.DefaultUnitIndex
	}

	parsed := parser.Parse(text, f.opts.Units).Resolve(currentUnit)
	switch parsed.State {
	case types.StateEmpty, types.StatePartial:
		return TextResult{State: parsed.State}
	case types.StateInvalid:
		f.logger().Debug("text rejected",
			zap.String("text", text),
			zap.Stringer("reason", parsed.Reason))
		return TextResult{State: types.StateInvalid, Reason: parsed.Reason}
	}

	q := parsed.Quantity
	result := TextResult{
		State:          types.StateComplete,
		FormattedValue: format.Format(q, f.opts.Units),
		Quantity:       &q,
	}

	if v := validation.Validate(q, f.opts.Rules, f.opts.Units); !v.Valid {
		f.logger().Debug("value out of range",
			zap.String("text", text),
			zap.Stringer("reason", v.Reason))
		result.State = types.StateInvalid
		result.Reason = v.Reason
	}
	return result
}

// OnIncrement steps q up
func (f *Field) OnIncrement(q types.Quantity) types.StepResult {
	return f.step(q, types.Increment)
}

// OnDecrement steps q down
func (f *Field) OnDecrement(q types.Quantity) types.StepResult {
	return f.step(q, types.Decrement)
}

func (f *Field) step(q types.Quantity, dir types.Direction) types.StepResult {
	res := stepper.Step(q, dir, f.opts.Units, f.opts.Rules, stepper.Options{
		AllowMultipleUnits: f.opts.AllowMultipleUnits,
	})
	if res.Rejected() {
		f.logger().Debug("step rejected",
			zap.Stringer("direction", dir),
			zap.String("value", q.RawText),
			zap.Stringer("reason", res.Message))
	}
	return res
}

// OnUnitSwitch re-expresses q in newUnit. On error q comes back unchanged
// and the error wraps types.UnsupportedUnitConversion.
func (f *Field) OnUnitSwitch(q types.Quantity, newUnit int) (types.Quantity, error) {
	out, err := convert.Convert(q, newUnit, f.opts.Units)
	if err != nil {
		f.logger().Debug("unit switch rejected",
			zap.String("value", q.RawText),
			zap.Int("unit", newUnit),
			zap.Error(err))
		return q, err
	}
	return out, nil
}

func (f *Field) logger() *zap.Logger {
	return logging.Component("field").With(zap.String("field", f.opts.Name))
}
