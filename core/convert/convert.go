// Package convert re-expresses a quantity in another unit of its scale.
//
// Conversion goes through base units: multiplying by the source factor is
// exact, and dividing by the target factor is exact whenever the quotient
// terminates, which holds for every power-of-1024 and power-of-1000 scale.
// Non-terminating quotients, which only custom factors such as 3 produce, keep
// DivisionPrecision fractional digits and are logged at warn level; nothing is
// rounded for display here.
package convert

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"quantity-editor/core/format"
	"quantity-editor/core/types"
	"quantity-editor/core/units"
	"quantity-editor/core/validation"
	"quantity-editor/internal/errors"
	"quantity-editor/internal/logging"
)

// DivisionPrecision is the number of fractional digits kept by FromBase.
// 2^-40 (one byte in TiB) needs 40.
const DivisionPrecision = 48

// Convert returns q expressed in the target unit. An index outside cfg
// yields UnsupportedUnitConversion and the unchanged quantity.
func Convert(q types.Quantity, target int, cfg *units.UnitConfig) (types.Quantity, error) {
	if !cfg.Valid(q.UnitIndex) || !cfg.Valid(target) {
		return q, errors.Wrapf(errors.TypeConversion, types.UnsupportedUnitConversion,
			"convert unit %d to unit %d of scale %s", q.UnitIndex, target, cfg.Name()).
			WithContext("scale", cfg.Name())
	}
	if target == q.UnitIndex {
		return format.WithText(q, cfg), nil
	}

	value, exact := FromBase(validation.ToBase(q, cfg), target, cfg)
	if !exact {
		logging.Component("convert").Warn("conversion rounded",
			zap.String("scale", cfg.Name()),
			zap.String("from", cfg.Unit(q.UnitIndex).Symbol),
			zap.String("to", cfg.Unit(target).Symbol),
			zap.String("value", q.Value.String()),
			zap.Int("digits", DivisionPrecision))
	}
	return format.WithText(types.Quantity{Value: value, UnitIndex: target}, cfg), nil
}

// FromBase divides a base amount by the factor of unit idx. exact reports
// whether the quotient needed no rounding.
func FromBase(base decimal.Decimal, idx int, cfg *units.UnitConfig) (value decimal.Decimal, exact bool) {
	factor := cfg.Unit(idx).Factor
	if factor.Equal(decimal.NewFromInt(1)) {
		return base, true
	}

	value = base.DivRound(factor, DivisionPrecision)
	return trim(value), value.Mul(factor).Equal(base)
}

// trim drops trailing zeros of a division result so it stays small
func trim(d decimal.Decimal) decimal.Decimal {
	out, err := decimal.NewFromString(d.String())
	if err != nil {
		return d
	}
	return out
}
