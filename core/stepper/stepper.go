// Package stepper increments and decrements a quantity by its unit's step.
//
// With multiple units allowed, a step that would push the value past the
// unit's chunk size carries: the current magnitude is re-expressed in the next
// larger unit and later steps accumulate there. A decrement that would go
// below zero borrows the same way into the next smaller unit. Without multiple
// units the value stays in its unit and is clamped to [0, chunk]; a config
// with a single unit is bounded by zero and the rules alone.
//
// A step that would violate the rules is refused: the input quantity comes
// back unchanged with MinValReached or MaxValReached.
package stepper

import (
	"quantity-editor/core/convert"
	"quantity-editor/core/format"
	"quantity-editor/core/types"
	"quantity-editor/core/units"
	"quantity-editor/core/validation"
)

// Options tunes stepping for one field
type Options struct {
	// AllowMultipleUnits enables carry and borrow across units
	AllowMultipleUnits bool
}

// Step moves q one step in dir. Increments are only refused at the upper
// bound and decrements at the lower bound, so a value typed outside the
// rules can always be stepped back toward them.
func Step(q types.Quantity, dir types.Direction, cfg *units.UnitConfig, rules types.ValidationRules, opts Options) types.StepResult {
	if !cfg.Valid(q.UnitIndex) {
		return reject(q, types.UnitNotRecognized)
	}

	var (
		next types.Quantity
		ok   bool
	)
	if dir == types.Increment {
		next, ok = increment(q, cfg, opts)
		if ok {
			ok = validation.Check(validation.ToBase(next, cfg), rules) != types.TooHigh
		}
		if !ok {
			return reject(q, types.MaxValReached)
		}
	} else {
		next, ok = decrement(q, cfg, opts)
		if ok {
			ok = validation.Check(validation.ToBase(next, cfg), rules) != types.TooLow
		}
		if !ok {
			return reject(q, types.MinValReached)
		}
	}

	return types.StepResult{
		Quantity:    format.WithText(next, cfg),
		UnitChanged: next.UnitIndex != q.UnitIndex,
	}
}

// Increment is Step with types.Increment
func Increment(q types.Quantity, cfg *units.UnitConfig, rules types.ValidationRules, opts Options) types.StepResult {
	return Step(q, types.Increment, cfg, rules, opts)
}

// Decrement is Step with types.Decrement
func Decrement(q types.Quantity, cfg *units.UnitConfig, rules types.ValidationRules, opts Options) types.StepResult {
	return Step(q, types.Decrement, cfg, rules, opts)
}

// increment reports false when the value would leave its unit's range
func increment(q types.Quantity, cfg *units.UnitConfig, opts Options) (types.Quantity, bool) {
	unit := cfg.Unit(q.UnitIndex)
	candidate := q.Value.Add(unit.StepSize)
	stay := types.Quantity{Value: candidate, UnitIndex: q.UnitIndex}

	if !candidate.GreaterThan(unit.ChunkSize) {
		return stay, true
	}
	if canCarry(q.UnitIndex, cfg, opts) {
		if carried, err := convert.Convert(q, q.UnitIndex+1, cfg); err == nil {
			return carried, true
		}
		return stay, true
	}
	if !opts.AllowMultipleUnits && cfg.Len() > 1 {
		return q, false
	}
	return stay, true
}

// decrement reports false when the value cannot go lower in any unit
func decrement(q types.Quantity, cfg *units.UnitConfig, opts Options) (types.Quantity, bool) {
	unit := cfg.Unit(q.UnitIndex)
	candidate := q.Value.Sub(unit.StepSize)

	if !candidate.IsNegative() {
		return types.Quantity{Value: candidate, UnitIndex: q.UnitIndex}, true
	}
	if !canBorrow(q.UnitIndex, opts) || !q.Value.IsPositive() {
		return q, false
	}

	borrowed, err := convert.Convert(q, q.UnitIndex-1, cfg)
	if err != nil {
		return q, false
	}
	return borrowed, true
}

func canCarry(idx int, cfg *units.UnitConfig, opts Options) bool {
	return opts.AllowMultipleUnits && idx+1 < cfg.Len()
}

func canBorrow(idx int, opts Options) bool {
	return opts.AllowMultipleUnits && idx > 0
}

func reject(q types.Quantity, kind types.ErrorKind) types.StepResult {
	return types.StepResult{Quantity: q, Message: kind}
}
