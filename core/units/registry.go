// Package units provides the ordered unit scales a quantity field works in.
// A UnitConfig is validated once at construction and is read-only afterwards;
// every quantity operation takes it by pointer and never mutates it.
package units

import (
	"strings"

	"github.com/shopspring/decimal"

	"quantity-editor/internal/errors"
)

// UnitDefinition is one step of a scale
type UnitDefinition struct {
	// Symbol is the canonical spelling used when formatting
	Symbol string `json:"symbol"`

	// Aliases are extra tokens accepted when parsing
	Aliases []string `json:"aliases,omitempty"`

	// StepSize is the increment applied by one step in this unit
	StepSize decimal.Decimal `json:"step_size"`

	// ChunkSize is the magnitude in this unit past which stepping carries
	// into the next larger unit
	ChunkSize decimal.Decimal `json:"chunk_size"`

	// Factor converts one of this unit into base units
	Factor decimal.Decimal `json:"conversion_factor_to_base"`
}

// UnitConfig is an ordered scale, smallest unit first
type UnitConfig struct {
	name  string
	units []UnitDefinition
	base  int
	index map[string]int
}

// NewUnitConfig validates the definitions and builds the lookup table.
// Factors must be strictly increasing, exactly one unit must have factor 1,
// steps and chunks must be positive, and symbols and aliases must be unique
// ignoring case.
func NewUnitConfig(name string, defs ...UnitDefinition) (*UnitConfig, error) {
	if len(defs) == 0 {
		return nil, errors.Configf("scale %q has no units", name)
	}

	cfg := &UnitConfig{
		name:  name,
		units: make([]UnitDefinition, len(defs)),
		base:  -1,
		index: make(map[string]int),
	}

	for i, def := range defs {
		if !isUnitToken(def.Symbol) {
			return nil, errors.Configf("scale %q: unit symbol %q must be letters only", name, def.Symbol)
		}
		if !def.StepSize.IsPositive() {
			return nil, errors.Configf("scale %q: unit %s has non-positive step %s", name, def.Symbol, def.StepSize)
		}
		if !def.ChunkSize.IsPositive() {
			return nil, errors.Configf("scale %q: unit %s has non-positive chunk %s", name, def.Symbol, def.ChunkSize)
		}
		if !def.Factor.IsPositive() {
			return nil, errors.Configf("scale %q: unit %s has non-positive factor %s", name, def.Symbol, def.Factor)
		}
		if i > 0 && !def.Factor.GreaterThan(defs[i-1].Factor) {
			return nil, errors.Configf("scale %q: factor of %s (%s) must exceed factor of %s (%s)",
				name, def.Symbol, def.Factor, defs[i-1].Symbol, defs[i-1].Factor)
		}
		if def.Factor.Equal(decimal.NewFromInt(1)) {
			cfg.base = i
		}

		tokens := append([]string{def.Symbol}, def.Aliases...)
		for _, token := range tokens {
			if !isUnitToken(token) {
				return nil, errors.Configf("scale %q: alias %q of %s must be letters only", name, token, def.Symbol)
			}
			key := strings.ToLower(token)
			if prev, dup := cfg.index[key]; dup {
				return nil, errors.Configf("scale %q: token %q of %s collides with %s",
					name, token, def.Symbol, defs[prev].Symbol)
			}
			cfg.index[key] = i
		}

		def.Aliases = append([]string(nil), def.Aliases...)
		cfg.units[i] = def
	}

	if cfg.base < 0 {
		return nil, errors.Configf("scale %q has no base unit with factor 1", name)
	}
	return cfg, nil
}

// Name returns the scale name
func (c *UnitConfig) Name() string {
	return c.name
}

// Len returns the number of units
func (c *UnitConfig) Len() int {
	return len(c.units)
}

// BaseIndex returns the index of the unit whose factor is 1
func (c *UnitConfig) BaseIndex() int {
	return c.base
}

// Valid reports whether idx addresses a unit of this scale
func (c *UnitConfig) Valid(idx int) bool {
	return idx >= 0 && idx < len(c.units)
}

// Unit returns the definition at idx. Callers check Valid first.
func (c *UnitConfig) Unit(idx int) UnitDefinition {
	return c.units[idx]
}

// Lookup resolves a symbol or alias, ignoring case
func (c *UnitConfig) Lookup(token string) (int, bool) {
	idx, ok := c.index[strings.ToLower(token)]
	return idx, ok
}

// Symbols returns the canonical symbols in scale order
func (c *UnitConfig) Symbols() []string {
	out := make([]string, len(c.units))
	for i, u := range c.units {
		out[i] = u.Symbol
	}
	return out
}

func isUnitToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isLetter(r) {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
