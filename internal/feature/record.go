// Package feature normalizes host timeline entries into records the timeline
// compiler can reason about.
package feature

import (
	"fmt"

	"github.com/philipparndt/fusion2scad/internal/geometry"
	"github.com/philipparndt/fusion2scad/internal/profile"
	"github.com/philipparndt/fusion2scad/internal/units"
)

// Kind is the type of a timeline entry.
type Kind string

const (
	KindSketch  Kind = "sketch"
	KindExtrude Kind = "extrude"
	KindRevolve Kind = "revolve"
	KindHole    Kind = "hole"
	KindFillet  Kind = "fillet"
	KindChamfer Kind = "chamfer"
)

// IsModifier reports whether the kind alters existing bodies instead of
// producing geometry.
func (k Kind) IsModifier() bool {
	return k == KindFillet || k == KindChamfer
}

// Operation is the boolean combine mode of a shape feature.
type Operation int

const (
	NewBody Operation = iota
	Union
	Difference
	Intersection
)

func (o Operation) String() string {
	switch o {
	case Union:
		return "union"
	case Difference:
		return "difference"
	case Intersection:
		return "intersection"
	default:
		return "new_body"
	}
}

// ParseOperation maps the host's combine setting to an Operation.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "", "new_body", "new_component":
		return NewBody, nil
	case "join":
		return Union, nil
	case "cut":
		return Difference, nil
	case "intersect":
		return Intersection, nil
	default:
		return NewBody, fmt.Errorf("unknown operation %q", s)
	}
}

// Modifiers is the edge treatment folded into a primitive. Zero dimensions
// mean no treatment.
type Modifiers struct {
	Rounding units.Dim
	Chamfer  units.Dim
}

// IsZero reports whether neither rounding nor chamfer is set.
func (m Modifiers) IsZero() bool {
	return m.Rounding.Value == 0 && m.Chamfer.Value == 0
}

// Params holds the kind specific values of a record.
type Params interface {
	isParams()
}

// ExtrudeParams describes a linear extrusion. Reversed is set when the host
// extrudes against the sketch normal; Height is always positive.
type ExtrudeParams struct {
	Height     units.Dim
	TaperAngle float64
	TwoSided   bool
	Reversed   bool
}

// RevolveParams describes a revolution around Axis by Angle degrees.
type RevolveParams struct {
	Angle float64
	Axis  geometry.Vec3
}

// HoleParams describes a drilled hole.
type HoleParams struct {
	Diameter   units.Dim
	Depth      units.Dim
	ThroughAll bool
}

// ModifierParams carries the magnitude of a fillet or chamfer.
type ModifierParams struct {
	Modifiers
}

func (ExtrudeParams) isParams()  {}
func (RevolveParams) isParams()  {}
func (HoleParams) isParams()     {}
func (ModifierParams) isParams() {}

// Record is the normalized form of one timeline entry. Records are never
// changed after analysis.
type Record struct {
	Index     int
	Name      string
	Kind      Kind
	Profiles  []profile.Shape
	Transform geometry.Transform
	Operation Operation
	Params    Params

	// AffectedBodies is set for modifier kinds, ResultBodies for shape kinds.
	AffectedBodies []string
	ResultBodies   []string

	Modifiers Modifiers
}

// WithModifiers returns a copy of the record carrying m.
func (r *Record) WithModifiers(m Modifiers) *Record {
	c := *r
	c.Modifiers = m
	return &c
}
