package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	err := Configf("unit %q has step %s", "MiB", "0")
	assert.Equal(t, `[CONFIG_ERROR] unit "MiB" has step 0`, err.Error())

	wrapped := Parsing("decode presets.hcl", fmt.Errorf("unexpected token"))
	assert.Equal(t, "[PARSING_ERROR] decode presets.hcl: unexpected token", wrapped.Error())

	assert.Equal(t, "[NOT_SUPPORTED] not supported: preset format ini", NotSupported("preset format ini").Error())
}

func TestIsTypeFollowsWrapChain(t *testing.T) {
	inner := NotFound("field", "disk")
	outer := fmt.Errorf("resolve: %w", Wrap(TypeConfig, "presets.yaml", inner))

	assert.True(t, IsType(outer, TypeNotFound))
	assert.True(t, IsType(outer, TypeConfig))
	assert.False(t, IsType(outer, TypeParsing))
	assert.False(t, IsType(nil, TypeNotFound))
	assert.False(t, IsType(stderrors.New("plain"), TypeInput))
}

func TestTypeIsASentinel(t *testing.T) {
	err := Input("empty text")
	assert.ErrorIs(t, err, TypeInput)
	assert.NotErrorIs(t, err, TypeConfig)

	joined := stderrors.Join(stderrors.New("first"), Config("second"))
	assert.True(t, IsType(joined, TypeConfig))
}

func TestUnwrapReachesCause(t *testing.T) {
	sentinel := stderrors.New("boom")
	err := Wrapf(TypeConversion, sentinel, "convert to %s", "TiB")

	require.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, TypeConversion)

	var target *Error
	require.ErrorAs(t, fmt.Errorf("step: %w", err), &target)
	assert.Equal(t, "convert to TiB", target.Message)
}

func TestWithContext(t *testing.T) {
	err := Input("empty text").WithContext("field", "memory")
	assert.Equal(t, "memory", err.Context["field"])
}
