// Package validation checks a parsed quantity against a field's base-unit
// bounds.
package validation

import (
	"github.com/shopspring/decimal"

	"quantity-editor/core/types"
	"quantity-editor/core/units"
)

// RelativeEpsilon is the tolerance used when a compared amount is fractional.
// Integral amounts (byte counts, millicores) are compared exactly.
var RelativeEpsilon = decimal.New(1, -9)

// ToBase converts a quantity into base units. Multiplication by the unit
// factor is exact in decimal arithmetic, so 1 MiB is exactly 1048576 B.
func ToBase(q types.Quantity, cfg *units.UnitConfig) decimal.Decimal {
	return q.Value.Mul(cfg.Unit(q.UnitIndex).Factor)
}

// CompareBase compares two base amounts. When both are integers the
// comparison is exact; otherwise amounts within RelativeEpsilon of the larger
// magnitude are equal.
func CompareBase(a, b decimal.Decimal) int {
	if a.IsInteger() && b.IsInteger() {
		return a.Cmp(b)
	}
	scale := decimal.Max(a.Abs(), b.Abs())
	if a.Sub(b).Abs().LessThanOrEqual(scale.Mul(RelativeEpsilon)) {
		return 0
	}
	return a.Cmp(b)
}

// Validate converts q to base units and checks it against rules. A quantity
// whose unit is not part of cfg is reported as UnitNotRecognized.
func Validate(q types.Quantity, rules types.ValidationRules, cfg *units.UnitConfig) types.ValidationResult {
	if !cfg.Valid(q.UnitIndex) {
		return types.ValidationResult{Reason: types.UnitNotRecognized}
	}

	if kind := Check(ToBase(q, cfg), rules); kind != types.KindNone {
		return types.ValidationResult{Reason: kind}
	}

	value := q
	return types.ValidationResult{Valid: true, Value: &value}
}

// Check classifies a base amount against rules
func Check(base decimal.Decimal, rules types.ValidationRules) types.ErrorKind {
	switch {
	case CompareBase(base, rules.Min) < 0:
		return types.TooLow
	case CompareBase(base, rules.Max) > 0:
		return types.TooHigh
	}
	return types.KindNone
}
