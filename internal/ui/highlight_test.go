package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlight_Plain(t *testing.T) {
	t.Setenv("CI", "true")

	var buf bytes.Buffer
	src := "include <BOSL2/std.scad>\ncuboid([10, 20, 5], anchor=BOTTOM);\n"
	require.NoError(t, Highlight(&buf, src))
	assert.Equal(t, src, buf.String())
}

func TestHighlight_Terminal(t *testing.T) {
	t.Setenv("CI", "")

	var buf bytes.Buffer
	require.NoError(t, Highlight(&buf, "cyl(h=5, r=2);\n"))
	assert.Contains(t, buf.String(), "cyl")
	assert.Contains(t, buf.String(), "\x1b[")
}
