// Package api - Request and response types
package api

import (
	"quantity-editor/core/field"
	"quantity-editor/core/output"
)

// QuantityPayload carries a quantity across the wire. Value is an exact
// decimal string; Unit is a symbol or alias of the field.
type QuantityPayload struct {
	Value string `json:"value"`
	Unit  string `json:"unit"`

	// Text is the canonical display text (responses only)
	Text string `json:"text,omitempty"`

	// Base is the value in base units, e.g. "1048576 B" (responses only)
	Base string `json:"base,omitempty"`
}

// TextRequest is the body of POST /fields/{name}/text
type TextRequest struct {
	Text string `json:"text"`

	// Unit is the unit shown next to the input; bare numbers take it.
	// Empty means the field default.
	Unit string `json:"unit,omitempty"`
}

// TextResponse reports the text classification
type TextResponse struct {
	State          string           `json:"state"`
	Reason         string           `json:"reason,omitempty"`
	Message        string           `json:"message,omitempty"`
	FormattedValue string           `json:"formatted_value,omitempty"`
	Quantity       *QuantityPayload `json:"quantity,omitempty"`
}

// StepRequest is the body of POST /fields/{name}/increment and /decrement
type StepRequest struct {
	Quantity QuantityPayload `json:"quantity"`
}

// StepResponse reports the stepped quantity. On rejection Quantity is the
// input unchanged.
type StepResponse struct {
	Quantity    QuantityPayload `json:"quantity"`
	Rejected    bool            `json:"rejected"`
	Reason      string          `json:"reason,omitempty"`
	Message     string          `json:"message,omitempty"`
	UnitChanged bool            `json:"unit_changed,omitempty"`
}

// UnitRequest is the body of POST /fields/{name}/unit
type UnitRequest struct {
	Quantity QuantityPayload `json:"quantity"`
	Unit     string          `json:"unit"`
}

// UnitResponse reports the converted quantity
type UnitResponse struct {
	Quantity QuantityPayload `json:"quantity"`
	Rejected bool            `json:"rejected"`
	Reason   string          `json:"reason,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// FieldsResponse lists the configured fields
type FieldsResponse struct {
	Fields []output.FieldSummary `json:"fields"`
}

// ErrorResponse is returned for malformed requests and unknown fields
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes the failure
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stats are request counters since start
type Stats struct {
	Requests     int64 `json:"requests"`
	Errors       int64 `json:"errors"`
	AvgLatencyUs int64 `json:"avg_latency_us"`
}

func summaries(fields []*field.Field) []output.FieldSummary {
	out := make([]output.FieldSummary, 0, len(fields))
	for _, f := range fields {
		out = append(out, output.Summarize(f))
	}
	return out
}
