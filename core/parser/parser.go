// Package parser turns field text such as "128 MiB" or "1.5 vCPU" into a
// quantity.
//
// The grammar is a decimal literal with at least one digit, an optional run
// of whitespace and an optional unit token made of letters, with optional
// surrounding whitespace. Text is first split by a small tokenizer and the
// token sequence is then classified, so trailing garbage is always rejected
// with a definite reason.
package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"quantity-editor/core/types"
	"quantity-editor/core/units"
)

// MaxInputLength bounds the work done per keystroke
const MaxInputLength = 256

// Parse reads text against the units of cfg. The empty text and a lone "-"
// are in-progress states, not errors.
func Parse(text string, cfg *units.UnitConfig) types.ParseResult {
	if len(text) > MaxInputLength {
		return invalid(types.MalformedFormat)
	}

	tokens, kind := tokenize(text)
	if kind != types.KindNone {
		return invalid(kind)
	}

	switch {
	case len(tokens) == 0:
		return types.ParseResult{State: types.StateEmpty}
	case len(tokens) == 1 && tokens[0].kind == tokenDash:
		return types.ParseResult{State: types.StatePartial}
	}

	if tokens[0].kind != tokenNumber {
		return invalid(types.NotANumber)
	}
	value, ok := parseNumber(tokens[0].text)
	if !ok {
		return invalid(types.NotANumber)
	}

	q := types.Quantity{Value: value, UnitIndex: types.NoUnit, RawText: text}

	switch {
	case len(tokens) == 1:
		return types.ParseResult{State: types.StateComplete, Quantity: q}
	case len(tokens) == 2 && tokens[1].kind == tokenWord:
		idx, found := cfg.Lookup(tokens[1].text)
		if !found {
			return invalid(types.UnitNotRecognized)
		}
		q.UnitIndex = idx
		return types.ParseResult{State: types.StateComplete, Quantity: q, UnitGiven: true}
	default:
		return invalid(types.MalformedFormat)
	}
}

func invalid(kind types.ErrorKind) types.ParseResult {
	return types.ParseResult{State: types.StateInvalid, Reason: kind}
}

// parseNumber accepts digits with at most one dot and at least one digit
func parseNumber(lit string) (decimal.Decimal, bool) {
	intPart, fracPart, hasDot := strings.Cut(lit, ".")
	if hasDot && strings.Contains(fracPart, ".") {
		return decimal.Decimal{}, false
	}
	if intPart == "" && fracPart == "" {
		return decimal.Decimal{}, false
	}

	if intPart == "" {
		intPart = "0"
	}
	canonical := intPart
	if fracPart != "" {
		canonical += "." + fracPart
	}

	value, err := decimal.NewFromString(canonical)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}
