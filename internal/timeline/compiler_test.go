package timeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/philipparndt/fusion2scad/internal/feature"
	"github.com/philipparndt/fusion2scad/internal/geometry"
	"github.com/philipparndt/fusion2scad/internal/profile"
	"github.com/philipparndt/fusion2scad/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const box = "cuboid([10, 10, 5], anchor=BOTTOM);"

func extrude(name string, op feature.Operation, body string) *feature.Record {
	return &feature.Record{
		Name:         name,
		Kind:         feature.KindExtrude,
		Profiles:     []profile.Shape{profile.Rectangle{Width: 10, Height: 10}},
		Transform:    geometry.Identity(),
		Operation:    op,
		Params:       feature.ExtrudeParams{Height: units.Literal(5)},
		ResultBodies: []string{body},
	}
}

func fillet(name string, radius float64, bodies ...string) *feature.Record {
	return &feature.Record{
		Name:           name,
		Kind:           feature.KindFillet,
		Transform:      geometry.Identity(),
		Params:         feature.ModifierParams{Modifiers: feature.Modifiers{Rounding: units.Literal(radius)}},
		AffectedBodies: bodies,
	}
}

func chamfer(name string, distance float64, bodies ...string) *feature.Record {
	return &feature.Record{
		Name:           name,
		Kind:           feature.KindChamfer,
		Transform:      geometry.Identity(),
		Params:         feature.ModifierParams{Modifiers: feature.Modifiers{Chamfer: units.Literal(distance)}},
		AffectedBodies: bodies,
	}
}

func compile(opts Options, records ...*feature.Record) Result {
	return NewCompiler(opts).Compile(records)
}

func TestCompile_FoldsFilletIntoPrimitive(t *testing.T) {
	res := compile(DefaultOptions(),
		extrude("A", feature.Union, "a"),
		fillet("Fillet1", 2, "a"),
	)

	assert.Equal(t, []string{
		"// A",
		"cuboid([10, 10, 5], rounding=2, anchor=BOTTOM);",
	}, res.Lines)
	assert.Empty(t, res.Warnings)
	for _, l := range res.Lines {
		assert.NotContains(t, l, "Fillet1")
	}
}

func TestCompile_HoleKeepsFilletOfItsTargetBody(t *testing.T) {
	hole := &feature.Record{
		Name:         "Bore",
		Kind:         feature.KindHole,
		Operation:    feature.Difference,
		Transform:    geometry.Identity(),
		Profiles:     []profile.Shape{profile.Circle{Radius: 2.5}},
		Params:       feature.HoleParams{Diameter: units.Literal(5), Depth: units.Literal(10)},
		ResultBodies: []string{"t1"},
	}

	res := compile(DefaultOptions(),
		extrude("A", feature.NewBody, "t1"),
		fillet("Fillet1", 2, "t1"),
		hole,
	)

	script := strings.Join(res.Lines, "\n")
	assert.Contains(t, script, "cuboid([10, 10, 5], rounding=2, anchor=BOTTOM);")
	assert.Contains(t, script, "cyl(d=5, h=10, anchor=TOP);")
	assert.Equal(t, 1, strings.Count(script, "rounding"))
	assert.Empty(t, res.Warnings)
}

func TestCompile_ModifierDoesNotBreakGroup(t *testing.T) {
	res := compile(DefaultOptions(),
		extrude("A", feature.Union, "a"),
		extrude("B", feature.Union, "b"),
		fillet("Fillet1", 1, "a"),
		extrude("C", feature.Difference, "c"),
	)

	assert.Equal(t, []string{
		"union() {",
		"    // A",
		"    cuboid([10, 10, 5], rounding=1, anchor=BOTTOM);",
		"    // B",
		"    " + box,
		"}",
		"difference() {",
		"    // C",
		"    " + box,
		"}",
	}, res.Lines)
	assert.Equal(t, 1, strings.Count(strings.Join(res.Lines, "\n"), "union()"))
}

func TestCompile_CumulativeLayout(t *testing.T) {
	opts := DefaultOptions()
	opts.Layout = LayoutCumulative

	res := compile(opts,
		extrude("A", feature.NewBody, "a"),
		extrude("C", feature.Difference, "a"),
		extrude("D", feature.Intersection, "a"),
	)

	assert.Equal(t, []string{
		"intersection() {",
		"    union() {",
		"        difference() {",
		"            union() {",
		"                // A",
		"                " + box,
		"            }",
		"            // C",
		"            " + box,
		"        }",
		"    }",
		"    // D",
		"    " + box,
		"}",
	}, res.Lines)
}

func TestCompile_CumulativeLayoutWithNothingBefore(t *testing.T) {
	opts := DefaultOptions()
	opts.Layout = LayoutCumulative

	res := compile(opts, extrude("C", feature.Difference, "c"))

	assert.Equal(t, []string{"difference() {", "    // C", "    " + box, "}"}, res.Lines)
}

func TestCompile_GroupEmission(t *testing.T) {
	t.Run("new bodies are never wrapped", func(t *testing.T) {
		res := compile(DefaultOptions(),
			extrude("A", feature.NewBody, "a"),
			extrude("B", feature.NewBody, "b"),
		)
		assert.Equal(t, []string{"// A", box, "// B", box}, res.Lines)
	})

	t.Run("single union is not wrapped", func(t *testing.T) {
		res := compile(DefaultOptions(),
			extrude("A", feature.NewBody, "a"),
			extrude("B", feature.Union, "a"),
		)
		assert.Equal(t, []string{"// A", box, "// B", box}, res.Lines)
	})

	t.Run("single intersection is wrapped", func(t *testing.T) {
		res := compile(DefaultOptions(), extrude("A", feature.Intersection, "a"))
		assert.Equal(t, []string{"intersection() {", "    // A", "    " + box, "}"}, res.Lines)
	})

	t.Run("groups are flat", func(t *testing.T) {
		res := compile(DefaultOptions(),
			extrude("A", feature.Difference, "a"),
			extrude("B", feature.Union, "a"),
			extrude("C", feature.Difference, "a"),
		)
		assert.Equal(t, []string{
			"difference() {", "    // A", "    " + box, "}",
			"// B", box,
			"difference() {", "    // C", "    " + box, "}",
		}, res.Lines)
	})

	t.Run("empty timeline", func(t *testing.T) {
		res := compile(DefaultOptions())
		assert.Empty(t, res.Lines)
		assert.Empty(t, res.Warnings)
	})
}

func TestCompile_UnknownBodyToken(t *testing.T) {
	res := compile(DefaultOptions(),
		fillet("Early", 2, "a"),
		extrude("A", feature.NewBody, "a"),
		fillet("Stray", 3, "ghost"),
	)

	assert.Equal(t, []string{"// A", box}, res.Lines)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, "Early", res.Warnings[0].Feature)
	assert.Equal(t, "Stray", res.Warnings[1].Feature)
	for _, w := range res.Warnings {
		assert.True(t, errors.Is(w, ErrMissingBodyToken))
	}
	assert.Contains(t, res.Warnings[1].Error(), `"ghost"`)
}

func TestCompile_ModifierPolicy(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		mods   []*feature.Record
		want   []string
	}{
		{
			name:   "overwrite keeps the last chamfer",
			policy: PolicyOverwrite,
			mods:   []*feature.Record{fillet("F", 2, "a"), chamfer("C", 1, "a")},
			want:   []string{"cuboid([10, 10, 5], chamfer=1, anchor=BOTTOM);"},
		},
		{
			name:   "overwrite keeps the last fillet",
			policy: PolicyOverwrite,
			mods:   []*feature.Record{fillet("F1", 2, "a"), fillet("F2", 1, "a")},
			want:   []string{"cuboid([10, 10, 5], rounding=1, anchor=BOTTOM);"},
		},
		{
			name:   "max keeps both, rounding wins",
			policy: PolicyMax,
			mods:   []*feature.Record{fillet("F", 2, "a"), chamfer("C", 1, "a")},
			want: []string{
				"// chamfer 1 ignored, rounding takes precedence",
				"cuboid([10, 10, 5], rounding=2, anchor=BOTTOM);",
			},
		},
		{
			name:   "max keeps the larger fillet",
			policy: PolicyMax,
			mods:   []*feature.Record{fillet("F1", 2, "a"), fillet("F2", 1, "a")},
			want:   []string{"cuboid([10, 10, 5], rounding=2, anchor=BOTTOM);"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Policy = tt.policy

			records := append([]*feature.Record{extrude("A", feature.NewBody, "a")}, tt.mods...)
			res := compile(opts, records...)

			assert.Equal(t, append([]string{"// A"}, tt.want...), res.Lines)
		})
	}
}

func TestCompile_ModifierAfterLaterShape(t *testing.T) {
	// The fillet comes after B but still folds into A
	res := compile(DefaultOptions(),
		extrude("A", feature.NewBody, "a"),
		extrude("B", feature.NewBody, "b"),
		fillet("F", 1.5, "a"),
	)

	assert.Equal(t, []string{
		"// A", "cuboid([10, 10, 5], rounding=1.5, anchor=BOTTOM);",
		"// B", box,
	}, res.Lines)
}

func TestCompile_KeepsRecordsUnchanged(t *testing.T) {
	a := extrude("A", feature.NewBody, "a")
	f := fillet("F", 2, "a")

	res := compile(DefaultOptions(), a, f)

	assert.True(t, a.Modifiers.IsZero())
	assert.Equal(t, []*feature.Record{a, f}, res.Records)
}

func TestCompile_PreservesOrder(t *testing.T) {
	ops := []feature.Operation{feature.NewBody, feature.Union, feature.Union, feature.Difference, feature.Intersection, feature.Union, feature.NewBody, feature.Difference}
	names := []string{"S0", "S1", "S2", "S3", "S4", "S5", "S6", "S7"}

	var records []*feature.Record
	for i, op := range ops {
		records = append(records, extrude(names[i], op, "a"))
		if i%3 == 0 {
			records = append(records, fillet("F"+names[i], 1, "a"))
		}
	}

	res := compile(DefaultOptions(), records...)

	var seen []string
	for _, l := range res.Lines {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "// S") {
			seen = append(seen, strings.TrimPrefix(l, "// "))
		}
	}
	assert.Equal(t, names, seen)
}
