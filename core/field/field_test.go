package field

import (
	stderrors "errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"quantity-editor/core/types"
	"quantity-editor/core/units"
	"quantity-editor/internal/errors"
	"quantity-editor/internal/logging"
)

func memoryField(t *testing.T) *Field {
	t.Helper()
	f, err := NewBuiltinRegistry().Get(NameMemory)
	require.NoError(t, err)
	return f
}

func TestOnTextChanged(t *testing.T) {
	f := memoryField(t)

	tests := []struct {
		name      string
		text      string
		state     types.ParseState
		reason    types.ErrorKind
		formatted string
	}{
		{name: "empty", text: "", state: types.StateEmpty},
		{name: "dash", text: "-", state: types.StatePartial},
		{name: "complete", text: "512mib", state: types.StateComplete, formatted: "512 MiB"},
		{name: "bare number takes default unit", text: "2", state: types.StateComplete, formatted: "2 GiB"},
		{name: "not a number", text: "abc", state: types.StateInvalid, reason: types.NotANumber},
		{name: "unknown unit", text: "5 xyz", state: types.StateInvalid, reason: types.UnitNotRecognized},
		{name: "malformed", text: "5 5 MiB", state: types.StateInvalid, reason: types.MalformedFormat},
		{name: "bad character", text: "5$MiB", state: types.StateInvalid, reason: types.InvalidCharacter},
		{name: "too high", text: "2 TiB", state: types.StateInvalid, reason: types.TooHigh, formatted: "2 TiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.OnTextChanged(tt.text)
			assert.Equal(t, tt.state, res.State)
			assert.Equal(t, tt.reason, res.Reason)
			assert.Equal(t, tt.formatted, res.FormattedValue)
			if tt.formatted != "" {
				require.NotNil(t, res.Quantity)
				assert.Equal(t, tt.text, res.Quantity.RawText)
			} else {
				assert.Nil(t, res.Quantity)
			}
		})
	}
}

func TestOnTextChangedTooLow(t *testing.T) {
	f, err := New(Options{
		Name:             "pod-memory",
		Units:            units.Memory(),
		Rules:            types.MustValidationRules(128, 4096),
		DefaultUnitIndex: 0,
	})
	require.NoError(t, err)

	res := f.OnTextChanged("0.1 GiB")
	assert.Equal(t, types.StateInvalid, res.State)
	assert.Equal(t, types.TooLow, res.Reason)
	require.NotNil(t, res.Quantity)

	// stepping up from below the minimum is allowed
	step := f.OnIncrement(*res.Quantity)
	assert.False(t, step.Rejected())
}

func TestOnTextChangedInCurrentUnit(t *testing.T) {
	f := memoryField(t)

	res := f.OnTextChangedIn("3", 0)
	assert.Equal(t, "3 MiB", res.FormattedValue)

	res = f.OnTextChangedIn("3", 42)
	assert.Equal(t, "3 GiB", res.FormattedValue)
}

func TestOnIncrementDecrement(t *testing.T) {
	f := memoryField(t)

	res := f.OnTextChanged("1 GiB")
	require.Equal(t, types.StateComplete, res.State)

	up := f.OnIncrement(*res.Quantity)
	require.False(t, up.Rejected())
	assert.Equal(t, "1.25 GiB", up.Quantity.RawText)

	down := f.OnDecrement(up.Quantity)
	require.False(t, down.Rejected())
	assert.True(t, res.Quantity.Equal(down.Quantity))
}

func TestOnIncrementAtMax(t *testing.T) {
	f := memoryField(t)
	res := f.OnTextChanged("1 TiB")
	require.Equal(t, types.StateComplete, res.State)

	step := f.OnIncrement(*res.Quantity)
	assert.Equal(t, types.MaxValReached, step.Message)
	assert.Equal(t, *res.Quantity, step.Quantity)
}

func TestOnUnitSwitch(t *testing.T) {
	f := memoryField(t)
	res := f.OnTextChanged("1536 MiB")
	require.NotNil(t, res.Quantity)

	gib, err := f.UnitIndex("gib")
	require.NoError(t, err)

	out, err := f.OnUnitSwitch(*res.Quantity, gib)
	require.NoError(t, err)
	assert.Equal(t, "1.5 GiB", out.RawText)

	same, err := f.OnUnitSwitch(*res.Quantity, 9)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, types.UnsupportedUnitConversion))
	assert.Equal(t, *res.Quantity, same)
}

func TestUnitIndexUnknown(t *testing.T) {
	_, err := memoryField(t).UnitIndex("PiB")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
	assert.True(t, stderrors.Is(err, types.UnitNotRecognized))
}

func TestRejectionsAreLogged(t *testing.T) {
	prev := logging.Logger
	t.Cleanup(func() { logging.Replace(prev) })
	core, logs := observer.New(zapcore.DebugLevel)
	logging.Replace(zap.New(core))

	f := memoryField(t)
	f.OnTextChanged("5$")
	f.OnDecrement(types.Quantity{Value: decimal.Zero, UnitIndex: 0, RawText: "0 MiB"})

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "text rejected", entries[0].Message)
	assert.Equal(t, "step rejected", entries[1].Message)
	assert.Equal(t, NameMemory, entries[1].ContextMap()["field"])
	assert.Equal(t, string(types.MinValReached), entries[1].ContextMap()["reason"])
}

func TestNewRejectsBadOptions(t *testing.T) {
	good := Options{Name: "x", Units: units.CPU(), Rules: types.MustValidationRules(0, 10)}

	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{name: "no name", mutate: func(o *Options) { o.Name = "" }},
		{name: "no units", mutate: func(o *Options) { o.Units = nil }},
		{name: "default unit out of range", mutate: func(o *Options) { o.DefaultUnitIndex = 5 }},
		{name: "min above max", mutate: func(o *Options) {
			o.Rules = types.ValidationRules{Min: decimal.NewFromInt(5), Max: decimal.NewFromInt(1)}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := good
			tt.mutate(&opts)
			_, err := New(opts)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeConfig), "got %v", err)
		})
	}

	_, err := New(good)
	assert.NoError(t, err)
}

func TestRegistry(t *testing.T) {
	r := NewBuiltinRegistry()
	assert.Equal(t, []string{NameMemory, NameMemoryBytes, NameCPU}, r.Names())

	_, err := r.Get("disk")
	assert.True(t, errors.IsType(err, errors.TypeNotFound))

	dup := mustField(Options{Name: NameCPU, Units: units.CPU(), Rules: types.MustValidationRules(0, 1)})
	err = r.Register(dup)
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	r.Replace(dup)
	got, err := r.Get(NameCPU)
	require.NoError(t, err)
	assert.Same(t, dup, got)
	assert.Len(t, r.All(), 3)
}
