// Package types - Parse and step results
package types

import (
	"fmt"
	"strings"
)

// ParseState is the tri-state (plus invalid) outcome of reading field text
type ParseState int

const (
	// StateEmpty: nothing but whitespace was typed
	StateEmpty ParseState = iota

	// StatePartial: a lone "-" is being typed
	StatePartial

	// StateComplete: the text is a well-formed quantity
	StateComplete

	// StateInvalid: the text was rejected, see the reason
	StateInvalid
)

var stateNames = [...]string{"empty", "partial", "complete", "invalid"}

// String returns the state name
func (s ParseState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("ParseState(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText encodes the state by name
func (s ParseState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name
func (s *ParseState) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range stateNames {
		if n == name {
			*s = ParseState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown parse state %q", text)
}

// ParseResult is what the parser returns for one text
type ParseResult struct {
	State ParseState `json:"state"`

	// Quantity is set when State is StateComplete
	Quantity Quantity `json:"quantity"`

	// UnitGiven is false when the text had no unit token
	UnitGiven bool `json:"unit_given"`

	// Reason is set when State is StateInvalid
	Reason ErrorKind `json:"reason,omitempty"`
}

// Complete reports whether the text produced a quantity
func (r ParseResult) Complete() bool {
	return r.State == StateComplete
}

// Resolve fills in the unit of a complete result that carried none
func (r ParseResult) Resolve(defaultUnit int) ParseResult {
	if r.State == StateComplete && !r.UnitGiven {
		r.Quantity.UnitIndex = defaultUnit
	}
	return r
}

// Direction selects increment or decrement
type Direction int

const (
	Increment Direction = iota
	Decrement
)

// String returns the direction name
func (d Direction) String() string {
	if d == Decrement {
		return "decrement"
	}
	return "increment"
}

// StepResult is the outcome of one step. On rejection Quantity is the
// unchanged input and Message names the boundary.
type StepResult struct {
	Quantity Quantity  `json:"quantity"`
	Message  ErrorKind `json:"message,omitempty"`

	// UnitChanged is set when the step carried or borrowed into another unit
	UnitChanged bool `json:"unit_changed,omitempty"`
}

// Rejected reports whether the step was refused
func (r StepResult) Rejected() bool {
	return r.Message != KindNone
}
