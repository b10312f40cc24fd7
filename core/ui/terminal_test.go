package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	table := w.NewTable("OP", "RESULT")
	table.AddRow("increment", "0.125 GiB")
	table.AddRow("text", "µ", "ignored")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"OP        │ RESULT",
		"──────────┼──────────",
		"increment │ 0.125 GiB",
		"text      │ µ",
	}, lines)
}

func TestColorDisabled(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Success("stepped to %s", "2 GiB")
	w.Error("rejected")
	assert.Equal(t, "✓ stepped to 2 GiB\n✗ rejected\n", buf.String())
}

func TestColorEnabled(t *testing.T) {
	w := NewWriter(&bytes.Buffer{}, false)
	assert.Equal(t, Red+"x"+Reset, w.Color(Red, "x"))
}

func TestVerbosity(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Debug("hidden")
	w.SetVerbosity(0)
	w.Info("hidden")
	assert.Empty(t, buf.String())

	w.SetVerbosity(2)
	w.Debug("shown")
	assert.Equal(t, "  shown\n", buf.String())
}
