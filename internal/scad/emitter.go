// Package scad renders feature records as OpenSCAD statements built on the
// BOSL2 library.
package scad

import (
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/fusion2scad/internal/feature"
	"github.com/philipparndt/fusion2scad/internal/geometry"
	"github.com/philipparndt/fusion2scad/internal/units"
)

const indent = "    "

// DefaultSegments is the default value of $fn.
const DefaultSegments = 64

// DefaultInclude is the library include emitted at the top of every script.
const DefaultInclude = "BOSL2/std.scad"

// Options controls the generated text.
type Options struct {
	Precision        int
	Segments         int
	Include          string
	AnnotateWarnings bool
}

// DefaultOptions returns the emitter defaults.
func DefaultOptions() Options {
	return Options{
		Precision:        units.DefaultPrecision,
		Segments:         DefaultSegments,
		Include:          DefaultInclude,
		AnnotateWarnings: true,
	}
}

// Emitter turns records into script lines.
type Emitter struct {
	opts Options
}

// NewEmitter creates an emitter.
func NewEmitter(opts Options) *Emitter {
	return &Emitter{opts: opts}
}

type emitFunc func(e *Emitter, r *feature.Record) []string

var emitters = map[feature.Kind]emitFunc{
	feature.KindExtrude: (*Emitter).extrude,
	feature.KindRevolve: (*Emitter).revolve,
	feature.KindHole:    (*Emitter).hole,
}

// Record renders a shape record, preceded by a comment naming the feature.
func (e *Emitter) Record(r *feature.Record) []string {
	lines := []string{"// " + r.Name}
	fn, ok := emitters[r.Kind]
	if !ok {
		return append(lines, fmt.Sprintf("// %s features produce no geometry", r.Kind))
	}
	return append(lines, fn(e, r)...)
}

// Block wraps children in the boolean block of op.
func (e *Emitter) Block(op feature.Operation, children ...[]string) []string {
	name := op.String()
	if op == feature.NewBody {
		name = feature.Union.String()
	}

	lines := []string{name + "() {"}
	for _, child := range children {
		for _, l := range child {
			lines = append(lines, indent+l)
		}
	}
	return append(lines, "}")
}

func (e *Emitter) num(v float64) string {
	return units.Format(v, e.opts.Precision)
}

func (e *Emitter) dim(d units.Dim) string {
	return d.Render(e.opts.Precision)
}

func (e *Emitter) vec2(v geometry.Vec2) string {
	return fmt.Sprintf("[%s, %s]", e.num(v.X), e.num(v.Y))
}

func (e *Emitter) points(pts []geometry.Vec2) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = e.vec2(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// place prefixes stmt with the record transform and, inside it, the
// translation to the profile center.
func (e *Emitter) place(t geometry.Transform, center geometry.Vec2, stmt string) string {
	var b strings.Builder
	if ins := t.Instruction(e.opts.Precision); ins != "" {
		b.WriteString(ins)
		b.WriteString(" ")
	}
	if math.Abs(center.X) > 1e-9 || math.Abs(center.Y) > 1e-9 {
		fmt.Fprintf(&b, "translate([%s, %s, 0]) ", e.num(center.X), e.num(center.Y))
	}
	b.WriteString(stmt)
	return b.String()
}

// treatment picks the edge argument a primitive carries. Rounding wins over
// chamfer; the dropped chamfer is returned as a note.
func (e *Emitter) treatment(m feature.Modifiers) (string, []string) {
	switch {
	case m.Rounding.Value > 0:
		var notes []string
		if m.Chamfer.Value > 0 {
			notes = append(notes, fmt.Sprintf("chamfer %s ignored, rounding takes precedence", e.dim(m.Chamfer)))
		}
		return "rounding=" + e.dim(m.Rounding), notes
	case m.Chamfer.Value > 0:
		return "chamfer=" + e.dim(m.Chamfer), nil
	default:
		return "", nil
	}
}

// unapplied describes modifiers that a statement cannot carry.
func (e *Emitter) unapplied(m feature.Modifiers, target string) []string {
	var notes []string
	if m.Rounding.Value > 0 {
		notes = append(notes, fmt.Sprintf("rounding %s not applied to %s", e.dim(m.Rounding), target))
	}
	if m.Chamfer.Value > 0 {
		notes = append(notes, fmt.Sprintf("chamfer %s not applied to %s", e.dim(m.Chamfer), target))
	}
	return notes
}

func comments(notes []string) []string {
	lines := make([]string, len(notes))
	for i, n := range notes {
		lines[i] = "// " + n
	}
	return lines
}

func call(name string, args ...string) string {
	var kept []string
	for _, a := range args {
		if a != "" {
			kept = append(kept, a)
		}
	}
	return name + "(" + strings.Join(kept, ", ") + ")"
}
