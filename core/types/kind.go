// Package types - Quantity error kinds
package types

import "errors"

// ErrorKind classifies why a text, a value, a step or a conversion was
// rejected. Kinds are returned as values inside results; they also implement
// error so adapters can wrap them.
type ErrorKind string

const (
	// KindNone is the zero kind: nothing was rejected
	KindNone ErrorKind = ""

	// InvalidCharacter: the text contains a character outside [0-9a-zA-Z.\s-]
	InvalidCharacter ErrorKind = "INVALID_CHARACTER"

	// NotANumber: the leading token is not a non-negative decimal
	NotANumber ErrorKind = "NOT_A_NUMBER"

	// UnitNotRecognized: the trailing token is not a unit of the field
	UnitNotRecognized ErrorKind = "UNIT_NOT_RECOGNIZED"

	// MalformedFormat: the text is not exactly [number][optional unit]
	MalformedFormat ErrorKind = "MALFORMED_FORMAT"

	// TooLow: the value is below the field minimum
	TooLow ErrorKind = "TOO_LOW"

	// TooHigh: the value is above the field maximum
	TooHigh ErrorKind = "TOO_HIGH"

	// MinValReached: a decrement was refused at the lower boundary
	MinValReached ErrorKind = "MIN_VAL_REACHED"

	// MaxValReached: an increment was refused at the upper boundary
	MaxValReached ErrorKind = "MAX_VAL_REACHED"

	// UnsupportedUnitConversion: the target unit is not part of the config
	UnsupportedUnitConversion ErrorKind = "UNSUPPORTED_UNIT_CONVERSION"
)

var kindMessages = map[ErrorKind]string{
	InvalidCharacter:          "contains an invalid character",
	NotANumber:                "is not a number",
	UnitNotRecognized:         "unit not recognized",
	MalformedFormat:           "expected a number optionally followed by a unit",
	TooLow:                    "value is below the minimum",
	TooHigh:                   "value is above the maximum",
	MinValReached:             "minimum value reached",
	MaxValReached:             "maximum value reached",
	UnsupportedUnitConversion: "unsupported unit conversion",
}

// String returns the kind identifier
func (k ErrorKind) String() string {
	return string(k)
}

// Error implements the error interface with a readable message
func (k ErrorKind) Error() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return string(k)
}

// IsParseKind reports whether the kind is produced by the parser
func (k ErrorKind) IsParseKind() bool {
	switch k {
	case InvalidCharacter, NotANumber, UnitNotRecognized, MalformedFormat:
		return true
	}
	return false
}

// IsRangeKind reports whether the kind is produced by the validator
func (k ErrorKind) IsRangeKind() bool {
	return k == TooLow || k == TooHigh
}

// IsBoundaryKind reports whether the kind is produced by the stepper
func (k ErrorKind) IsBoundaryKind() bool {
	return k == MinValReached || k == MaxValReached
}

// KindOf extracts the ErrorKind from an error chain
func KindOf(err error) (ErrorKind, bool) {
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind, true
	}
	return KindNone, false
}
