package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTerminal_Buffer(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminal(&buf))
	assert.Equal(t, defaultWidth, Width(&buf))
}

func TestNewRenderer_NoTTY(t *testing.T) {
	var buf bytes.Buffer
	render, err := NewRenderer(&buf)
	require.NoError(t, err)

	out, err := render("# Passport\n\nValid passport with at least 6 months validity remaining\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Passport")
	assert.Contains(t, out, "6 months validity")
}

func TestPlain(t *testing.T) {
	out, err := Plain("**bold**")
	require.NoError(t, err)
	assert.Equal(t, "**bold**", out)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.3.0")

	out := buf.String()
	assert.Contains(t, out, "v0.3.0")
	assert.Contains(t, out, "|___/")
	// A bytes.Buffer is not a TTY, so no colour sequences are emitted.
	assert.NotContains(t, out, "\x1b[")
}
