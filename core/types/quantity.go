// Package types defines the quantity data model shared by the parser,
// validator, converter, stepper and formatter.
package types

import (
	"github.com/shopspring/decimal"

	"quantity-editor/internal/errors"
)

// NoUnit marks a parsed quantity whose text carried no unit token
const NoUnit = -1

// Quantity is a non-negative decimal paired with a unit selection
type Quantity struct {
	// Value is the magnitude in the selected unit
	Value decimal.Decimal `json:"value"`

	// UnitIndex indexes the owning UnitConfig, or NoUnit
	UnitIndex int `json:"unit_index"`

	// RawText is the text the quantity was parsed from or formatted to
	RawText string `json:"raw_text"`
}

// Equal compares magnitude and unit; RawText is presentation only
func (q Quantity) Equal(other Quantity) bool {
	return q.UnitIndex == other.UnitIndex && q.Value.Equal(other.Value)
}

// HasUnit reports whether a unit has been selected
func (q Quantity) HasUnit() bool {
	return q.UnitIndex != NoUnit
}

// String returns the raw text
func (q Quantity) String() string {
	return q.RawText
}

// ValidationRules bounds a field in base-unit terms
type ValidationRules struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// NewValidationRules builds rules and enforces min <= max and min >= 0
func NewValidationRules(min, max decimal.Decimal) (ValidationRules, error) {
	if min.IsNegative() {
		return ValidationRules{}, errors.Configf("minimum %s is negative", min)
	}
	if min.GreaterThan(max) {
		return ValidationRules{}, errors.Configf("minimum %s exceeds maximum %s", min, max)
	}
	return ValidationRules{Min: min, Max: max}, nil
}

// MustValidationRules is NewValidationRules for static tables; it panics on
// bad input and must not be fed user data.
func MustValidationRules(min, max int64) ValidationRules {
	rules, err := NewValidationRules(decimal.NewFromInt(min), decimal.NewFromInt(max))
	if err != nil {
		panic(err)
	}
	return rules
}

// ValidationResult is the outcome of a range check
type ValidationResult struct {
	Valid  bool      `json:"valid"`
	Reason ErrorKind `json:"reason,omitempty"`
	Value  *Quantity `json:"value,omitempty"`
}
