package geometry

import (
	"math"

	"github.com/philipparndt/fusion2scad/internal/units"
)

// Vec2 is a point or direction in a sketch plane.
type Vec2 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Vec3 is a point or direction in model space.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

func (v Vec2) Add(o Vec2) Vec2               { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2               { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2          { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64            { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Length() float64               { return math.Hypot(v.X, v.Y) }
func (v Vec2) Distance(o Vec2) float64       { return v.Sub(o).Length() }
func (v Vec2) ToMM() Vec2                    { return v.Scale(units.CMToMM) }
func (v Vec3) Add(o Vec3) Vec3               { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3               { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3          { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64            { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Length() float64               { return math.Sqrt(v.Dot(v)) }
func (v Vec3) ToMM() Vec3                    { return v.Scale(units.CMToMM) }
func (v Vec3) IsZero(tol float64) bool       { return v.Length() <= tol }
func (v Vec3) Near(o Vec3, tol float64) bool { return v.Sub(o).Length() <= tol }

// Cross returns v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns the unit vector along v and false when v has no length.
func (v Vec3) Normalize() (Vec3, bool) {
	l := v.Length()
	if l < 1e-12 {
		return Vec3{}, false
	}
	return v.Scale(1 / l), true
}
