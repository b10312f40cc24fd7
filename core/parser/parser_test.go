package parser

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quantity-editor/core/types"
	"quantity-editor/core/units"
)

func TestParseComplete(t *testing.T) {
	mem := units.Memory()
	cpu := units.CPU()

	tests := []struct {
		name      string
		text      string
		cfg       *units.UnitConfig
		value     string
		unit      int
		unitGiven bool
	}{
		{name: "number and unit", text: "128 MiB", cfg: mem, value: "128", unit: 0, unitGiven: true},
		{name: "no space", text: "128MiB", cfg: mem, value: "128", unit: 0, unitGiven: true},
		{name: "lower case unit", text: "2 gib", cfg: mem, value: "2", unit: 1, unitGiven: true},
		{name: "alias", text: "1 T", cfg: mem, value: "1", unit: 2, unitGiven: true},
		{name: "surrounding whitespace", text: "  0.5\tGiB \n", cfg: mem, value: "0.5", unit: 1, unitGiven: true},
		{name: "several spaces before unit", text: "3    TiB", cfg: mem, value: "3", unit: 2, unitGiven: true},
		{name: "fraction cpu", text: "1.5 vCPU", cfg: cpu, value: "1.5", unit: 1, unitGiven: true},
		{name: "millicores", text: "250m", cfg: cpu, value: "250", unit: 0, unitGiven: true},
		{name: "bare number", text: "42", cfg: mem, value: "42", unit: types.NoUnit},
		{name: "leading dot", text: ".25 GiB", cfg: mem, value: "0.25", unit: 1, unitGiven: true},
		{name: "trailing dot", text: "5.", cfg: mem, value: "5", unit: types.NoUnit},
		{name: "leading zeros", text: "007", cfg: mem, value: "7", unit: types.NoUnit},
		{name: "zero", text: "0 MiB", cfg: mem, value: "0", unit: 0, unitGiven: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.text, tt.cfg)
			require.Equal(t, types.StateComplete, res.State, "reason %s", res.Reason)
			assert.True(t, decimal.RequireFromString(tt.value).Equal(res.Quantity.Value),
				"value %s", res.Quantity.Value)
			assert.Equal(t, tt.unit, res.Quantity.UnitIndex)
			assert.Equal(t, tt.unitGiven, res.UnitGiven)
			assert.Equal(t, tt.text, res.Quantity.RawText)
			assert.Equal(t, types.KindNone, res.Reason)
		})
	}
}

func TestParseInvalid(t *testing.T) {
	mem := units.Memory()

	tests := []struct {
		text string
		want types.ErrorKind
	}{
		{text: "abc", want: types.NotANumber},
		{text: "MiB", want: types.NotANumber},
		{text: ".", want: types.NotANumber},
		{text: "1.2.3", want: types.NotANumber},
		{text: "-5", want: types.NotANumber},
		{text: "--", want: types.NotANumber},
		{text: "5 xyz", want: types.UnitNotRecognized},
		{text: "5PiB", want: types.UnitNotRecognized},
		{text: "5 5 MiB", want: types.MalformedFormat},
		{text: "5 5", want: types.MalformedFormat},
		{text: "5 MiB GiB", want: types.MalformedFormat},
		{text: "5MiB5", want: types.MalformedFormat},
		{text: "5-", want: types.MalformedFormat},
		{text: "1 000 MiB", want: types.MalformedFormat},
		{text: "5$MiB", want: types.InvalidCharacter},
		{text: "5,5", want: types.InvalidCharacter},
		{text: "5 µs", want: types.InvalidCharacter},
		{text: "+5", want: types.InvalidCharacter},
		{text: "abc$", want: types.InvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := Parse(tt.text, mem)
			assert.Equal(t, types.StateInvalid, res.State)
			assert.Equal(t, tt.want, res.Reason)
		})
	}
}

func TestParseInProgress(t *testing.T) {
	mem := units.Memory()

	for _, text := range []string{"", "   ", "\t"} {
		res := Parse(text, mem)
		assert.Equal(t, types.StateEmpty, res.State, "text %q", text)
		assert.Equal(t, types.KindNone, res.Reason)
	}

	for _, text := range []string{"-", " - "} {
		res := Parse(text, mem)
		assert.Equal(t, types.StatePartial, res.State, "text %q", text)
		assert.Equal(t, types.KindNone, res.Reason)
	}
}

func TestParseTooLong(t *testing.T) {
	res := Parse(strings.Repeat("1", MaxInputLength+1), units.Memory())
	assert.Equal(t, types.StateInvalid, res.State)
	assert.Equal(t, types.MalformedFormat, res.Reason)
}

func TestParseIsIdempotent(t *testing.T) {
	cfg := units.MemoryBytes()
	for _, text := range []string{"1 MiB", "0.125 GiB", "17", "abc", "", "-", "5 5"} {
		assert.Equal(t, Parse(text, cfg), Parse(text, cfg), "text %q", text)
	}
}

func TestResolveFillsMissingUnit(t *testing.T) {
	cfg := units.Memory()

	res := Parse("4", cfg).Resolve(1)
	assert.Equal(t, 1, res.Quantity.UnitIndex)
	assert.False(t, res.UnitGiven)

	res = Parse("4 TiB", cfg).Resolve(1)
	assert.Equal(t, 2, res.Quantity.UnitIndex)

	res = Parse("x", cfg).Resolve(1)
	assert.Equal(t, types.StateInvalid, res.State)
}

func TestTokenize(t *testing.T) {
	tokens, kind := tokenize(" 12.5GiB -")
	require.Equal(t, types.KindNone, kind)
	assert.Equal(t, []token{
		{kind: tokenNumber, text: "12.5"},
		{kind: tokenWord, text: "GiB"},
		{kind: tokenDash, text: "-"},
	}, tokens)
}
