package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Convert(t *testing.T) {
	cli := &CLI{}
	parser, err := newParser(cli)
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"convert", "bracket.yaml", "-o", "out.scad", "--policy", "max", "--print"})
	require.NoError(t, err)

	assert.Equal(t, "convert <design>", ctx.Command())
	assert.Equal(t, "bracket.yaml", cli.Convert.Design)
	assert.Equal(t, "out.scad", cli.Convert.Output)
	assert.Equal(t, "max", cli.Convert.Policy)
	assert.True(t, cli.Convert.Print)
	assert.False(t, cli.Convert.Open)
}

func TestParser_MissingDesign(t *testing.T) {
	parser, err := newParser(&CLI{})
	require.NoError(t, err)

	_, err = parser.Parse([]string{"convert"})
	assert.Error(t, err)
}

func TestConvertSettings_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modifier_policy: max\nprecision: 2\n"), 0644))

	c := &ConvertCmd{Config: path, Layout: "cumulative", Debug: "debug.json"}
	settings, err := c.settings()
	require.NoError(t, err)

	assert.Equal(t, "max", settings.ModifierPolicy)
	assert.Equal(t, "cumulative", settings.Layout)
	assert.Equal(t, "debug.json", settings.DebugOutput)
	assert.Equal(t, 2, settings.Precision)

	c = &ConvertCmd{Policy: "overwrite"}
	settings, err = c.settings()
	require.NoError(t, err)
	assert.Equal(t, "overwrite", settings.ModifierPolicy)
}

func TestConvertSettings_InvalidFlag(t *testing.T) {
	c := &ConvertCmd{Policy: "sum"}
	_, err := c.settings()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modifier_policy")
}

func TestConvert_Run(t *testing.T) {
	t.Setenv("CI", "true")

	out := filepath.Join(t.TempDir(), "bracket.scad")
	c := &ConvertCmd{Design: "../../example/bracket.yaml", Output: out}
	require.NoError(t, c.Run())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "include <BOSL2/std.scad>")
	assert.Contains(t, string(data), "// Mount Hole")
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			c := &CompletionCmd{Shell: shell, out: &buf}
			require.NoError(t, c.Run())
			assert.Contains(t, buf.String(), "fusion2scad")
			assert.Contains(t, buf.String(), "convert")
		})
	}

	err := (&CompletionCmd{Shell: "powershell"}).Run()
	assert.Error(t, err)
}

func TestVersion_Run(t *testing.T) {
	assert.NoError(t, (&VersionCmd{}).Run())
}
