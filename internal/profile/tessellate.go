package profile

import (
	"math"

	"github.com/philipparndt/fusion2scad/internal/geometry"
	"github.com/philipparndt/fusion2scad/internal/host"
)

// polygon builds the fallback shape from every loop of the profile.
func (c *Classifier) polygon(p host.Profile) Polygon {
	outer := -1
	for i, loop := range p.Loops {
		if loop.Outer {
			outer = i
			break
		}
	}
	if outer < 0 && len(p.Loops) > 0 {
		outer = 0
	}

	var poly Polygon
	for i, loop := range p.Loops {
		pts := c.loopPoints(loop.Segments)
		if i == outer {
			poly.Vertices = pts
		} else if len(pts) > 0 {
			poly.Holes = append(poly.Holes, pts)
		}
	}
	return poly
}

// loopPoints chains the segments of a loop into one vertex ring. Segments
// listed against the loop direction are reversed.
func (c *Classifier) loopPoints(segs []host.Segment) []geometry.Vec2 {
	var ring []geometry.Vec2

	for i, s := range segs {
		pts := c.segmentPoints(s)
		if len(pts) == 0 {
			continue
		}

		if !closedSegment(s) && len(pts) > 1 {
			first, last := pts[0], pts[len(pts)-1]
			if len(ring) > 0 {
				prev := ring[len(ring)-1]
				if prev.Distance(last) < prev.Distance(first) {
					reverse(pts)
				}
			} else if i+1 < len(segs) {
				next := c.segmentPoints(segs[i+1])
				if len(next) > 0 && !closedSegment(segs[i+1]) {
					if nearest(first, next) < nearest(last, next) {
						reverse(pts)
					}
				}
			}
		}

		ring = append(ring, pts...)
	}

	return dedupe(ring)
}

// segmentPoints returns the vertices of a segment in its natural direction.
func (c *Classifier) segmentPoints(s host.Segment) []geometry.Vec2 {
	switch s.Kind {
	case host.SegmentLine:
		return []geometry.Vec2{s.Start, s.End}
	case host.SegmentArc:
		span := s.EndAngle - s.StartAngle
		if math.Abs(span) < 360 {
			span = math.Mod(span+360, 360)
		}
		return c.sweep(s.StartAngle, span, false, func(a float64) geometry.Vec2 {
			return pointOnCircle(s.Center, s.Radius, a)
		})
	case host.SegmentCircle:
		return c.sweep(0, 360, true, func(a float64) geometry.Vec2 {
			return pointOnCircle(s.Center, s.Radius, a)
		})
	case host.SegmentEllipse:
		rot := s.Rotation * math.Pi / 180
		cosR, sinR := math.Cos(rot), math.Sin(rot)
		return c.sweep(0, 360, true, func(a float64) geometry.Vec2 {
			t := a * math.Pi / 180
			px := s.MajorRadius * math.Cos(t)
			py := s.MinorRadius * math.Sin(t)
			return geometry.Vec2{
				X: s.Center.X + px*cosR - py*sinR,
				Y: s.Center.Y + px*sinR + py*cosR,
			}
		})
	case host.SegmentSpline:
		pts := make([]geometry.Vec2, len(s.Points))
		copy(pts, s.Points)
		return pts
	default:
		return nil
	}
}

// sweep samples fn from start over span degrees at the classifier's step.
// Closed sweeps omit the final point since it repeats the first.
func (c *Classifier) sweep(start, span float64, closed bool, fn func(deg float64) geometry.Vec2) []geometry.Vec2 {
	n := int(math.Ceil(math.Abs(span) / c.ArcStep))
	if n < 1 {
		n = 1
	}
	count := n + 1
	if closed {
		count = n
	}

	pts := make([]geometry.Vec2, 0, count)
	for i := 0; i < count; i++ {
		pts = append(pts, fn(start+span*float64(i)/float64(n)))
	}
	return pts
}

func pointOnCircle(center geometry.Vec2, r, deg float64) geometry.Vec2 {
	rad := deg * math.Pi / 180
	return geometry.Vec2{X: center.X + r*math.Cos(rad), Y: center.Y + r*math.Sin(rad)}
}

func closedSegment(s host.Segment) bool {
	return s.Kind == host.SegmentCircle || s.Kind == host.SegmentEllipse
}

func nearest(p geometry.Vec2, pts []geometry.Vec2) float64 {
	return math.Min(p.Distance(pts[0]), p.Distance(pts[len(pts)-1]))
}

func reverse(pts []geometry.Vec2) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// dedupe removes consecutive duplicate vertices and a closing vertex that
// repeats the first one.
func dedupe(pts []geometry.Vec2) []geometry.Vec2 {
	if len(pts) == 0 {
		return pts
	}

	out := []geometry.Vec2{pts[0]}
	for _, p := range pts[1:] {
		if p.Distance(out[len(out)-1]) > lengthTolerance {
			out = append(out, p)
		}
	}
	if len(out) > 1 && out[len(out)-1].Distance(out[0]) <= lengthTolerance {
		out = out[:len(out)-1]
	}
	return out
}
