package buildplan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/fusion2scad/internal/config"
	"github.com/philipparndt/fusion2scad/internal/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plate = `
name: Plate
parameters:
  - {name: Thickness, value: 0.5, unit: mm, expression: 5 mm}
sketches:
  - name: Base
    profiles:
      - loops:
          - outer: true
            segments:
              - {kind: line, start: {x: 0, y: 0}, end: {x: 4, y: 0}}
              - {kind: line, start: {x: 4, y: 0}, end: {x: 4, y: 2}}
              - {kind: line, start: {x: 4, y: 2}, end: {x: 0, y: 2}}
              - {kind: line, start: {x: 0, y: 2}, end: {x: 0, y: 0}}
timeline:
  - name: Base
    kind: sketch
  - name: Plate
    kind: extrude
    sketch: Base
    distance: {value: 0.5, expression: Thickness}
    bodies: [{token: b1, name: Body1}]
`

func writeDesign(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "designs/plate.scad", DefaultOutput("designs/plate.yaml"))
	assert.Equal(t, "plate.scad", DefaultOutput("plate.json"))
	assert.Equal(t, "plate.scad", DefaultOutput("plate"))
}

func TestCreatePlan_Steps(t *testing.T) {
	settings := config.Default()
	settings.DebugOutput = "debug.json"

	plan, err := NewPlanner().CreatePlan(Request{
		DesignFile: "plate.yaml",
		RenderFile: "plate.stl",
		Settings:   settings,
	})
	require.NoError(t, err)

	var names []string
	for _, s := range plan.Steps {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{
		"Check preconditions",
		"Validate files",
		"Load design",
		"Build parameters",
		"Compile timeline",
		"Write script",
		"Write diagnostics",
		"Render SCAD file",
	}, names)
	assert.Equal(t, "plate.scad", plan.OutputFile)
}

func TestCreatePlan_Errors(t *testing.T) {
	_, err := NewPlanner().CreatePlan(Request{})
	assert.Error(t, err)

	settings := config.Default()
	settings.Layout = "nested"
	_, err = NewPlanner().CreatePlan(Request{DesignFile: "plate.yaml", Settings: settings})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout")
}

func TestExecute_WritesScriptAndDiagnostics(t *testing.T) {
	t.Setenv("CI", "true")

	design := writeDesign(t, plate)
	dir := filepath.Dir(design)
	settings := config.Default()
	settings.DebugOutput = filepath.Join(dir, "debug.json")

	plan, err := NewPlanner().CreatePlan(Request{DesignFile: design, Settings: settings})
	require.NoError(t, err)
	require.NoError(t, plan.Execute())

	script, err := os.ReadFile(filepath.Join(dir, "plate.scad"))
	require.NoError(t, err)
	assert.Contains(t, string(script), `// Generated by fusion2scad from "Plate"`)
	assert.Contains(t, string(script), "thickness = 5;")
	assert.Contains(t, string(script), "translate([20, 10, 0]) cuboid([40, 20, thickness], anchor=BOTTOM);")

	data, err := os.ReadFile(settings.DebugOutput)
	require.NoError(t, err)
	var dump map[string]any
	require.NoError(t, json.Unmarshal(data, &dump))
	assert.Equal(t, "Plate", dump["design"])
	assert.Contains(t, dump["features"], "Plate")
	assert.NotContains(t, dump, "error")

	assert.Len(t, plan.Result().Records, 1)
}

func TestExecute_FailureFlushesDiagnostics(t *testing.T) {
	t.Setenv("CI", "true")

	design := writeDesign(t, plate+`
  - name: Broken
    kind: extrude
    sketch: Missing
    distance: 1
`)
	dir := filepath.Dir(design)
	settings := config.Default()
	settings.DebugOutput = filepath.Join(dir, "debug.json")

	plan, err := NewPlanner().CreatePlan(Request{DesignFile: design, Settings: settings})
	require.NoError(t, err)

	err = plan.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, host.ErrStaleReference)

	data, err := os.ReadFile(settings.DebugOutput)
	require.NoError(t, err)
	var dump map[string]any
	require.NoError(t, json.Unmarshal(data, &dump))
	assert.Contains(t, dump["error"], "Missing")
	assert.Contains(t, dump["features"], "Plate")

	_, err = os.Stat(filepath.Join(dir, "plate.scad"))
	assert.True(t, os.IsNotExist(err), "no script is written for an aborted run")
}
