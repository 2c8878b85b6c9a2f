// Package host models the CAD application's object model as consumed by the
// exporter. The exporter only reads from it. Lengths are in the host's
// internal unit (cm), angles in degrees.
package host

import (
	"errors"

	"github.com/philipparndt/fusion2scad/internal/geometry"
)

// ErrStaleReference is returned when a timeline entry points at host data
// that no longer exists. It aborts the export.
var ErrStaleReference = errors.New("stale host reference")

// Design is the read-only view of a host design.
type Design interface {
	Name() string
	Parameters() ([]Parameter, error)
	TimelineCount() int
	// Item resolves the timeline entry at index i, including its sketch
	// plane and profiles.
	Item(i int) (Entity, error)
}

// Parameter is a user-defined named parameter.
type Parameter struct {
	Name       string  `yaml:"name" json:"name"`
	Value      float64 `yaml:"value" json:"value"`
	Unit       string  `yaml:"unit" json:"unit"`
	Expression string  `yaml:"expression" json:"expression"`
	Comment    string  `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// SegmentKind is the type of a sketch curve.
type SegmentKind string

const (
	SegmentLine    SegmentKind = "line"
	SegmentArc     SegmentKind = "arc"
	SegmentCircle  SegmentKind = "circle"
	SegmentEllipse SegmentKind = "ellipse"
	SegmentSpline  SegmentKind = "spline"
)

// Segment is one curve of a profile loop. Which fields are meaningful
// depends on Kind.
type Segment struct {
	Kind        SegmentKind     `yaml:"kind" json:"kind"`
	Start       geometry.Vec2   `yaml:"start,omitempty" json:"start"`
	End         geometry.Vec2   `yaml:"end,omitempty" json:"end"`
	Center      geometry.Vec2   `yaml:"center,omitempty" json:"center"`
	Radius      float64         `yaml:"radius,omitempty" json:"radius,omitempty"`
	StartAngle  float64         `yaml:"start_angle,omitempty" json:"start_angle,omitempty"`
	EndAngle    float64         `yaml:"end_angle,omitempty" json:"end_angle,omitempty"`
	MajorRadius float64         `yaml:"major_radius,omitempty" json:"major_radius,omitempty"`
	MinorRadius float64         `yaml:"minor_radius,omitempty" json:"minor_radius,omitempty"`
	Rotation    float64         `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Points      []geometry.Vec2 `yaml:"points,omitempty" json:"points,omitempty"`
}

// Loop is a closed sequence of segments.
type Loop struct {
	Outer    bool      `yaml:"outer" json:"outer"`
	Segments []Segment `yaml:"segments" json:"segments"`
}

// Profile is a closed region of a sketch made of one outer loop and
// optional inner loops.
type Profile struct {
	Loops []Loop `yaml:"loops" json:"loops"`
}

// Plane is the placement of a sketch.
type Plane struct {
	Origin geometry.Vec3 `yaml:"origin" json:"origin"`
	XAxis  geometry.Vec3 `yaml:"x_axis" json:"x_axis"`
	YAxis  geometry.Vec3 `yaml:"y_axis" json:"y_axis"`
}

// Sketch holds a plane and the profiles drawn on it.
type Sketch struct {
	Name     string    `yaml:"name" json:"name"`
	Plane    *Plane    `yaml:"plane,omitempty" json:"plane,omitempty"`
	Profiles []Profile `yaml:"profiles" json:"profiles"`
}

// Body identifies a solid body.
type Body struct {
	Token string `yaml:"token" json:"token"`
	Name  string `yaml:"name" json:"name"`
}

// Selection is an edge or face picked by a modifier feature.
type Selection struct {
	Body Body `yaml:"body" json:"body"`
}

// Entity is one timeline entry. Kind selects which fields are meaningful.
type Entity struct {
	Index     int    `yaml:"-" json:"index"`
	Name      string `yaml:"name" json:"name"`
	Kind      string `yaml:"kind" json:"kind"`
	Operation string `yaml:"operation,omitempty" json:"operation,omitempty"`

	SketchName  string `yaml:"sketch,omitempty" json:"sketch,omitempty"`
	ProfileRefs []int  `yaml:"profiles,omitempty" json:"profile_refs,omitempty"`

	// Extrude
	Distance   *Value `yaml:"distance,omitempty" json:"distance,omitempty"`
	TwoSided   bool   `yaml:"two_sided,omitempty" json:"two_sided,omitempty"`
	TaperAngle *Value `yaml:"taper_angle,omitempty" json:"taper_angle,omitempty"`

	// Revolve
	Angle *Value         `yaml:"angle,omitempty" json:"angle,omitempty"`
	Axis  *geometry.Vec3 `yaml:"axis,omitempty" json:"axis,omitempty"`

	// Hole
	Diameter   *Value         `yaml:"diameter,omitempty" json:"diameter,omitempty"`
	Depth      *Value         `yaml:"depth,omitempty" json:"depth,omitempty"`
	ThroughAll bool           `yaml:"through_all,omitempty" json:"through_all,omitempty"`
	Position   *geometry.Vec3 `yaml:"position,omitempty" json:"position,omitempty"`

	// Fillet (Radius) and chamfer (Distance)
	Radius *Value      `yaml:"radius,omitempty" json:"radius,omitempty"`
	Edges  []Selection `yaml:"edges,omitempty" json:"edges,omitempty"`
	Faces  []Selection `yaml:"faces,omitempty" json:"faces,omitempty"`

	// Bodies created by a shape feature, or bodies selected by a modifier.
	Bodies []Body `yaml:"bodies,omitempty" json:"bodies,omitempty"`

	// Resolved from SketchName and ProfileRefs by the Design.
	Plane    *Plane    `yaml:"-" json:"plane,omitempty"`
	Profiles []Profile `yaml:"-" json:"resolved_profiles,omitempty"`
}
