package geometry

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/fusion2scad/internal/units"
)

// ErrMalformedTransform is returned when a sketch placement has degenerate or
// non-orthogonal axes. The accompanying transform is always the identity.
var ErrMalformedTransform = errors.New("malformed transform")

const (
	orthogonalityTolerance = 1e-3
	identityTolerance      = 1e-6
)

var (
	worldX = Vec3{X: 1}
	worldY = Vec3{Y: 1}
	worldZ = Vec3{Z: 1}
)

// Transform places sketch geometry in model space. Rotation columns are the
// sketch X axis, Y axis and normal; Translation is in millimeters.
type Transform struct {
	Translation Vec3
	Rotation    [3][3]float64
}

// Identity returns the identity placement.
func Identity() Transform {
	return Transform{Rotation: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// IsIdentity reports whether the transform leaves geometry unchanged.
func (t Transform) IsIdentity() bool {
	return t.Translation.IsZero(identityTolerance) && t.hasIdentityRotation()
}

func (t Transform) hasIdentityRotation() bool {
	for i, axis := range [3]Vec3{worldX, worldY, worldZ} {
		if !t.column(i).Near(axis, identityTolerance) {
			return false
		}
	}
	return true
}

// column returns rotation column i as a vector.
func (t Transform) column(i int) Vec3 {
	return Vec3{X: t.Rotation[0][i], Y: t.Rotation[1][i], Z: t.Rotation[2][i]}
}

// FromPlane builds the placement of a sketch plane from its origin (host
// units) and two in-plane axes. Degenerate or non-orthogonal axes yield the
// identity together with ErrMalformedTransform.
func FromPlane(origin, xAxis, yAxis Vec3) (Transform, error) {
	x, okX := xAxis.Normalize()
	y, okY := yAxis.Normalize()
	if !okX || !okY {
		return Identity(), fmt.Errorf("%w: zero-length sketch axis", ErrMalformedTransform)
	}
	if dot := math.Abs(x.Dot(y)); dot > orthogonalityTolerance {
		return Identity(), fmt.Errorf("%w: sketch axes not orthogonal (|x·y| = %.4f)", ErrMalformedTransform, dot)
	}

	translation := origin.ToMM()
	if translation.IsZero(identityTolerance) && x.Near(worldX, identityTolerance) && y.Near(worldY, identityTolerance) {
		return Identity(), nil
	}

	z := x.Cross(y)
	return fromColumns(x, y, z, translation), nil
}

// FromAxis builds a placement at origin (host units) whose Z axis points
// along axis. The in-plane axes are chosen from whichever world axis is
// least parallel to the given one.
func FromAxis(origin, axis Vec3) (Transform, error) {
	z, ok := axis.Normalize()
	if !ok {
		return Identity(), fmt.Errorf("%w: zero-length axis", ErrMalformedTransform)
	}

	translation := origin.ToMM()
	if z.Near(Vec3{Z: 1}, identityTolerance) {
		return Transform{Translation: translation, Rotation: Identity().Rotation}, nil
	}

	ref := worldX
	if math.Abs(z.X) >= 0.9 {
		ref = worldY
	}
	x, _ := ref.Cross(z).Normalize()
	y, _ := z.Cross(x).Normalize()

	return fromColumns(x, y, z, translation), nil
}

func fromColumns(x, y, z, translation Vec3) Transform {
	return Transform{
		Translation: translation,
		Rotation: [3][3]float64{
			{x.X, y.X, z.X},
			{x.Y, y.Y, z.Y},
			{x.Z, y.Z, z.Z},
		},
	}
}

// Instruction renders the transform as a single OpenSCAD statement prefix.
// The identity renders as an empty string, a pure translation as translate()
// and everything else as multmatrix().
func (t Transform) Instruction(precision int) string {
	if t.IsIdentity() {
		return ""
	}

	f := func(v float64) string { return units.Format(v, precision) }
	tr := t.Translation

	if t.hasIdentityRotation() {
		return fmt.Sprintf("translate([%s, %s, %s])", f(tr.X), f(tr.Y), f(tr.Z))
	}

	rows := make([]string, 0, 4)
	offsets := [3]float64{tr.X, tr.Y, tr.Z}
	for i := 0; i < 3; i++ {
		r := t.Rotation[i]
		rows = append(rows, fmt.Sprintf("[%s, %s, %s, %s]", f(r[0]), f(r[1]), f(r[2]), f(offsets[i])))
	}
	rows = append(rows, "[0, 0, 0, 1]")
	return "multmatrix([" + strings.Join(rows, ", ") + "])"
}
