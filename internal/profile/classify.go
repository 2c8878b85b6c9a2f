package profile

import (
	"math"

	"github.com/philipparndt/fusion2scad/internal/geometry"
	"github.com/philipparndt/fusion2scad/internal/host"
	"github.com/philipparndt/fusion2scad/internal/units"
)

const (
	// DefaultArcStep is the tessellation step for curved segments in degrees.
	DefaultArcStep = 5.0

	lengthTolerance = 1e-3
	radiusTolerance = 0.01
)

// Classifier maps profiles to shapes. Classification is total: anything
// without a closed-form primitive becomes a Polygon.
type Classifier struct {
	ArcStep float64
}

// NewClassifier creates a classifier that tessellates curves at arcStep
// degrees. Non-positive values fall back to DefaultArcStep.
func NewClassifier(arcStep float64) *Classifier {
	if arcStep <= 0 {
		arcStep = DefaultArcStep
	}
	return &Classifier{ArcStep: arcStep}
}

// ScaleToMM converts a host profile to millimeters. Angles are kept.
func ScaleToMM(p host.Profile) host.Profile {
	out := host.Profile{Loops: make([]host.Loop, len(p.Loops))}
	for i, loop := range p.Loops {
		segs := make([]host.Segment, len(loop.Segments))
		for j, s := range loop.Segments {
			s.Start = s.Start.ToMM()
			s.End = s.End.ToMM()
			s.Center = s.Center.ToMM()
			s.Radius = units.ToMM(s.Radius)
			s.MajorRadius = units.ToMM(s.MajorRadius)
			s.MinorRadius = units.ToMM(s.MinorRadius)
			if len(s.Points) > 0 {
				pts := make([]geometry.Vec2, len(s.Points))
				for k, pt := range s.Points {
					pts[k] = pt.ToMM()
				}
				s.Points = pts
			}
			segs[j] = s
		}
		out.Loops[i] = host.Loop{Outer: loop.Outer, Segments: segs}
	}
	return out
}

// Classify returns the shape of a profile given in millimeters.
func (c *Classifier) Classify(p host.Profile) Shape {
	if len(p.Loops) == 1 {
		segs := p.Loops[0].Segments
		if s, ok := asCircle(segs); ok {
			return s
		}
		if s, ok := asRectangle(segs); ok {
			return s
		}
		if s, ok := asRoundedRectangle(segs); ok {
			return s
		}
	}
	return c.polygon(p)
}

func asCircle(segs []host.Segment) (Circle, bool) {
	if len(segs) != 1 {
		return Circle{}, false
	}
	s := segs[0]
	switch s.Kind {
	case host.SegmentCircle:
	case host.SegmentArc:
		if math.Abs(s.EndAngle-s.StartAngle) < 360-1e-6 {
			return Circle{}, false
		}
	default:
		return Circle{}, false
	}
	if s.Radius <= 0 {
		return Circle{}, false
	}
	return Circle{Center: s.Center, Radius: s.Radius}, true
}

func asRectangle(segs []host.Segment) (Rectangle, bool) {
	if len(segs) != 4 || !connected(segs) {
		return Rectangle{}, false
	}

	var points []geometry.Vec2
	for i, s := range segs {
		if s.Kind != host.SegmentLine || !axisAligned(s) {
			return Rectangle{}, false
		}
		next := segs[(i+1)%4]
		if math.Abs(direction(s).Dot(direction(next))) > lengthTolerance {
			return Rectangle{}, false
		}
		points = append(points, s.Start, s.End)
	}

	// Opposite sides must match or the loop is not closed
	if math.Abs(lineLength(segs[0])-lineLength(segs[2])) > lengthTolerance ||
		math.Abs(lineLength(segs[1])-lineLength(segs[3])) > lengthTolerance {
		return Rectangle{}, false
	}

	bbox, _ := geometry.CalculateBoundingBox(points)
	return Rectangle{Center: bbox.Center(), Width: bbox.Width(), Height: bbox.Height()}, true
}

func asRoundedRectangle(segs []host.Segment) (RoundedRectangle, bool) {
	if len(segs) != 8 || !connected(segs) {
		return RoundedRectangle{}, false
	}

	var lines, arcs []host.Segment
	for i, s := range segs {
		if s.Kind == segs[(i+1)%8].Kind {
			return RoundedRectangle{}, false
		}
		switch s.Kind {
		case host.SegmentLine:
			if !axisAligned(s) {
				return RoundedRectangle{}, false
			}
			lines = append(lines, s)
		case host.SegmentArc:
			arcs = append(arcs, s)
		default:
			return RoundedRectangle{}, false
		}
	}
	if len(lines) != 4 || len(arcs) != 4 {
		return RoundedRectangle{}, false
	}

	r := arcs[0].Radius
	for _, a := range arcs[1:] {
		if math.Abs(a.Radius-r) > radiusTolerance {
			return RoundedRectangle{}, false
		}
	}
	if r <= 0 {
		return RoundedRectangle{}, false
	}

	var points []geometry.Vec2
	var horizontal, vertical []float64
	for _, l := range lines {
		points = append(points, l.Start, l.End)
		if math.Abs(l.End.Y-l.Start.Y) <= lengthTolerance {
			horizontal = append(horizontal, lineLength(l))
		} else {
			vertical = append(vertical, lineLength(l))
		}
	}
	if len(horizontal) != 2 || len(vertical) != 2 ||
		math.Abs(horizontal[0]-horizontal[1]) > lengthTolerance ||
		math.Abs(vertical[0]-vertical[1]) > lengthTolerance {
		return RoundedRectangle{}, false
	}
	bbox, _ := geometry.CalculateBoundingBox(points)

	// Each arc must sit in its own corner, r inside the bounding box
	used := [4]bool{}
	for _, a := range arcs {
		matched := false
		for ci, corner := range bbox.Corners() {
			inward := geometry.Vec2{X: r, Y: r}
			if ci == 1 || ci == 2 {
				inward.X = -r
			}
			if ci >= 2 {
				inward.Y = -r
			}
			if !used[ci] && a.Center.Distance(corner.Add(inward)) <= radiusTolerance {
				used[ci] = true
				matched = true
				break
			}
		}
		if !matched {
			return RoundedRectangle{}, false
		}
	}

	return RoundedRectangle{
		Center:       bbox.Center(),
		Width:        horizontal[0] + 2*r,
		Height:       vertical[0] + 2*r,
		CornerRadius: r,
	}, true
}

func axisAligned(s host.Segment) bool {
	d := s.End.Sub(s.Start)
	if d.Length() <= lengthTolerance {
		return false
	}
	return math.Abs(d.X) <= lengthTolerance || math.Abs(d.Y) <= lengthTolerance
}

func direction(s host.Segment) geometry.Vec2 {
	d := s.End.Sub(s.Start)
	l := d.Length()
	if l == 0 {
		return geometry.Vec2{}
	}
	return d.Scale(1 / l)
}

func lineLength(s host.Segment) float64 {
	return s.End.Distance(s.Start)
}

// connected reports whether every segment shares an endpoint with the
// next one. Either segment may run in the opposite direction.
func connected(segs []host.Segment) bool {
	for i, s := range segs {
		a0, a1 := endpoints(s)
		b0, b1 := endpoints(segs[(i+1)%len(segs)])
		if a0.Distance(b0) > lengthTolerance && a0.Distance(b1) > lengthTolerance &&
			a1.Distance(b0) > lengthTolerance && a1.Distance(b1) > lengthTolerance {
			return false
		}
	}
	return true
}

func endpoints(s host.Segment) (geometry.Vec2, geometry.Vec2) {
	if s.Kind == host.SegmentArc {
		return pointOnCircle(s.Center, s.Radius, s.StartAngle), pointOnCircle(s.Center, s.Radius, s.EndAngle)
	}
	return s.Start, s.End
}
