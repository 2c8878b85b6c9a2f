// Package profile classifies closed sketch profiles into the primitive shapes
// the script generator knows how to emit.
package profile

import "github.com/philipparndt/fusion2scad/internal/geometry"

// ShapeKind identifies the variant of a Shape.
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	ShapeRectangle
	ShapeRoundedRectangle
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	case ShapeRoundedRectangle:
		return "rounded_rectangle"
	case ShapePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is a classified profile. The set of implementations is closed.
type Shape interface {
	Kind() ShapeKind
	isShape()
}

// Circle is a full circle.
type Circle struct {
	Center geometry.Vec2
	Radius float64
}

// Rectangle is an axis-aligned rectangle.
type Rectangle struct {
	Center        geometry.Vec2
	Width, Height float64
}

// RoundedRectangle is an axis-aligned rectangle with four equal corner arcs.
type RoundedRectangle struct {
	Center        geometry.Vec2
	Width, Height float64
	CornerRadius  float64
}

// Polygon is the fallback for any other profile. Vertices is the outer
// boundary, Holes are the inner loops.
type Polygon struct {
	Vertices []geometry.Vec2
	Holes    [][]geometry.Vec2
}

func (Circle) Kind() ShapeKind           { return ShapeCircle }
func (Rectangle) Kind() ShapeKind        { return ShapeRectangle }
func (RoundedRectangle) Kind() ShapeKind { return ShapeRoundedRectangle }
func (Polygon) Kind() ShapeKind          { return ShapePolygon }

func (Circle) isShape()           {}
func (Rectangle) isShape()        {}
func (RoundedRectangle) isShape() {}
func (Polygon) isShape()          {}
