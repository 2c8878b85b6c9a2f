package geometry

import (
	"errors"
	"math"
	"testing"
)

func TestFromPlane_WorldXYIsIdentity(t *testing.T) {
	tr, err := FromPlane(Vec3{}, Vec3{X: 1}, Vec3{Y: 1})
	if err != nil {
		t.Fatalf("FromPlane() error = %v", err)
	}
	if !tr.IsIdentity() {
		t.Errorf("expected identity, got %+v", tr)
	}
	if got := tr.Instruction(4); got != "" {
		t.Errorf("Instruction() = %q, want empty", got)
	}
}

func TestFromPlane_UnnormalizedAxesAreIdentity(t *testing.T) {
	tr, err := FromPlane(Vec3{}, Vec3{X: 3}, Vec3{Y: 0.5})
	if err != nil {
		t.Fatalf("FromPlane() error = %v", err)
	}
	if !tr.IsIdentity() {
		t.Errorf("expected identity, got %+v", tr)
	}
}

func TestFromPlane_TranslationOnly(t *testing.T) {
	tr, err := FromPlane(Vec3{X: 1, Y: 2, Z: 0.5}, Vec3{X: 1}, Vec3{Y: 1})
	if err != nil {
		t.Fatalf("FromPlane() error = %v", err)
	}

	expected := "translate([10, 20, 5])"
	if got := tr.Instruction(4); got != expected {
		t.Errorf("Instruction() = %v, want %v", got, expected)
	}
}

func TestFromPlane_XZPlane(t *testing.T) {
	// Sketch on the XZ plane: sketch Y points along world Z
	tr, err := FromPlane(Vec3{}, Vec3{X: 1}, Vec3{Z: 1})
	if err != nil {
		t.Fatalf("FromPlane() error = %v", err)
	}
	if tr.IsIdentity() {
		t.Fatal("expected non-identity transform")
	}

	normal := tr.column(2)
	if !normal.Near(Vec3{Y: -1}, 1e-9) {
		t.Errorf("normal = %+v, want (0, -1, 0)", normal)
	}

	expected := "multmatrix([[1, 0, 0, 0], [0, 0, -1, 0], [0, 1, 0, 0], [0, 0, 0, 1]])"
	if got := tr.Instruction(4); got != expected {
		t.Errorf("Instruction() = %v, want %v", got, expected)
	}
}

func TestFromPlane_RotationIsOrthonormal(t *testing.T) {
	s := math.Sqrt(0.5)
	tr, err := FromPlane(Vec3{X: 1}, Vec3{X: s, Y: s}, Vec3{X: -s, Y: s})
	if err != nil {
		t.Fatalf("FromPlane() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		col := tr.column(i)
		if math.Abs(col.Length()-1) > 1e-9 {
			t.Errorf("column %d length = %v, want 1", i, col.Length())
		}
		for j := i + 1; j < 3; j++ {
			if d := col.Dot(tr.column(j)); math.Abs(d) > 1e-9 {
				t.Errorf("columns %d and %d not orthogonal: dot = %v", i, j, d)
			}
		}
	}
}

func TestFromPlane_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		xAxis Vec3
		yAxis Vec3
	}{
		{"zero x axis", Vec3{}, Vec3{Y: 1}},
		{"zero y axis", Vec3{X: 1}, Vec3{}},
		{"parallel axes", Vec3{X: 1}, Vec3{X: 1, Y: 0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := FromPlane(Vec3{X: 5}, tt.xAxis, tt.yAxis)
			if !errors.Is(err, ErrMalformedTransform) {
				t.Fatalf("error = %v, want ErrMalformedTransform", err)
			}
			if !tr.IsIdentity() {
				t.Errorf("expected identity fallback, got %+v", tr)
			}
		})
	}
}

func TestFromAxis(t *testing.T) {
	tr, err := FromAxis(Vec3{X: 1, Y: 1}, Vec3{Z: 2})
	if err != nil {
		t.Fatalf("FromAxis() error = %v", err)
	}
	if got := tr.Instruction(4); got != "translate([10, 10, 0])" {
		t.Errorf("Instruction() = %v", got)
	}

	tr, err = FromAxis(Vec3{}, Vec3{X: 1})
	if err != nil {
		t.Fatalf("FromAxis() error = %v", err)
	}
	if !tr.column(2).Near(Vec3{X: 1}, 1e-9) {
		t.Errorf("Z column = %+v, want (1, 0, 0)", tr.column(2))
	}

	if _, err := FromAxis(Vec3{}, Vec3{}); !errors.Is(err, ErrMalformedTransform) {
		t.Errorf("zero axis error = %v, want ErrMalformedTransform", err)
	}
}

func TestCalculateBoundingBox(t *testing.T) {
	bbox, err := CalculateBoundingBox([]Vec2{{1, 2}, {-3, 4}, {5, -6}})
	if err != nil {
		t.Fatalf("CalculateBoundingBox() error = %v", err)
	}
	if bbox.Width() != 8 || bbox.Height() != 10 {
		t.Errorf("size = %vx%v, want 8x10", bbox.Width(), bbox.Height())
	}
	if c := bbox.Center(); c != (Vec2{1, -1}) {
		t.Errorf("center = %+v, want (1, -1)", c)
	}

	if _, err := CalculateBoundingBox(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestVectorToMM(t *testing.T) {
	if got := (Vec3{X: 1.5, Y: -2, Z: 0.1}).ToMM(); !got.Near(Vec3{X: 15, Y: -20, Z: 1}, 1e-9) {
		t.Errorf("Vec3.ToMM() = %v", got)
	}
	if got := (Vec2{X: 0.25, Y: 4}).ToMM(); got != (Vec2{X: 2.5, Y: 40}) {
		t.Errorf("Vec2.ToMM() = %v", got)
	}
}
