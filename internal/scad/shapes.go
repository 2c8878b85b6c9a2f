package scad

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/philipparndt/fusion2scad/internal/feature"
	"github.com/philipparndt/fusion2scad/internal/geometry"
	"github.com/philipparndt/fusion2scad/internal/profile"
)

func (e *Emitter) extrude(r *feature.Record) []string {
	p, ok := r.Params.(feature.ExtrudeParams)
	if !ok {
		return nil
	}

	var lines []string
	for _, shape := range r.Profiles {
		var (
			stmt   string
			notes  []string
			center geometry.Vec2
		)
		switch s := shape.(type) {
		case profile.Circle:
			stmt, notes = e.extrudeCircle(s, p, r.Modifiers)
			center = s.Center
		case profile.Rectangle:
			stmt, notes = e.extrudeRectangle(s, p, r.Modifiers)
			center = s.Center
		case profile.RoundedRectangle:
			stmt, notes = e.extrudeRoundedRectangle(s, p, r.Modifiers)
			center = s.Center
		case profile.Polygon:
			stmt, notes = e.extrudePolygon(s, p, r.Modifiers)
		}

		lines = append(lines, comments(notes)...)
		if stmt != "" {
			lines = append(lines, e.place(r.Transform, center, stmt+";"))
		}
	}
	return lines
}

func anchor(p feature.ExtrudeParams) string {
	switch {
	case p.TwoSided:
		return "anchor=CENTER"
	case p.Reversed:
		return "anchor=TOP"
	default:
		return "anchor=BOTTOM"
	}
}

func (e *Emitter) extrudeCircle(s profile.Circle, p feature.ExtrudeParams, m feature.Modifiers) (string, []string) {
	edge, notes := e.treatment(m)

	radius := "r=" + e.num(s.Radius)
	if p.TaperAngle != 0 {
		top := s.Radius - p.Height.Value*math.Tan(p.TaperAngle*math.Pi/180)
		if top < 0 {
			notes = append(notes, fmt.Sprintf("taper %s deg clamped to a cone", e.num(p.TaperAngle)))
			top = 0
		}
		radius = fmt.Sprintf("r1=%s, r2=%s", e.num(s.Radius), e.num(top))
	}

	return call("cyl", "h="+e.dim(p.Height), radius, edge, anchor(p)), notes
}

func (e *Emitter) extrudeRectangle(s profile.Rectangle, p feature.ExtrudeParams, m feature.Modifiers) (string, []string) {
	if p.TaperAngle != 0 {
		stmt, notes := e.prismoid(s.Width, s.Height, p, "")
		return stmt, append(e.unapplied(m, "tapered extrusion"), notes...)
	}

	edge, notes := e.treatment(m)
	return call("cuboid", e.size3(s.Width, s.Height, p), edge, anchor(p)), notes
}

func (e *Emitter) extrudeRoundedRectangle(s profile.RoundedRectangle, p feature.ExtrudeParams, m feature.Modifiers) (string, []string) {
	corner := "rounding=" + e.num(s.CornerRadius)
	if p.TaperAngle != 0 {
		stmt, notes := e.prismoid(s.Width, s.Height, p, corner)
		return stmt, append(e.unapplied(m, "tapered extrusion"), notes...)
	}

	size := e.size3(s.Width, s.Height, p)
	switch {
	case m.Rounding.Value > 0:
		edge, notes := e.treatment(m)
		if math.Abs(m.Rounding.Value-s.CornerRadius) > 1e-9 {
			notes = append(notes, fmt.Sprintf("corner radius %s replaced by rounding %s", e.num(s.CornerRadius), e.dim(m.Rounding)))
		}
		return call("cuboid", size, edge, anchor(p)), notes
	case m.Chamfer.Value > 0:
		notes := []string{fmt.Sprintf("corner radius %s dropped for chamfer %s", e.num(s.CornerRadius), e.dim(m.Chamfer))}
		return call("cuboid", size, "chamfer="+e.dim(m.Chamfer), anchor(p)), notes
	default:
		return call("cuboid", size, corner, `edges="Z"`, anchor(p)), nil
	}
}

func (e *Emitter) extrudePolygon(s profile.Polygon, p feature.ExtrudeParams, m feature.Modifiers) (string, []string) {
	if len(s.Vertices) < 3 {
		return "", []string{"degenerate profile skipped"}
	}

	notes := e.unapplied(m, "polygon extrusion")
	if p.TaperAngle != 0 {
		notes = append(notes, fmt.Sprintf("taper %s deg not applied to polygon extrusion", e.num(p.TaperAngle)))
	}

	center := ""
	if p.TwoSided {
		center = "center=true"
	}
	stmt := call("linear_extrude", "height="+e.dim(p.Height), center) + " " + e.polygon(s)
	if p.Reversed && !p.TwoSided {
		stmt = "mirror([0, 0, 1]) " + stmt
	}
	return stmt, notes
}

func (e *Emitter) size3(width, depth float64, p feature.ExtrudeParams) string {
	return fmt.Sprintf("[%s, %s, %s]", e.num(width), e.num(depth), e.dim(p.Height))
}

// prismoid renders a tapered box. A top side that would shrink below zero
// is clamped to zero.
func (e *Emitter) prismoid(width, depth float64, p feature.ExtrudeParams, rounding string) (string, []string) {
	h := p.Height.Value
	top := geometry.Vec2{
		X: feature.TaperedSize(width, h, p.TaperAngle),
		Y: feature.TaperedSize(depth, h, p.TaperAngle),
	}
	var notes []string
	if top.X < 0 || top.Y < 0 {
		notes = append(notes, fmt.Sprintf("taper %s deg clamped to an edge", e.num(p.TaperAngle)))
		top.X = math.Max(top.X, 0)
		top.Y = math.Max(top.Y, 0)
	}
	return call("prismoid",
		"size1="+e.vec2(geometry.Vec2{X: width, Y: depth}),
		"size2="+e.vec2(top),
		"h="+e.dim(p.Height),
		rounding,
		anchor(p),
	), notes
}

// polygon renders a polygon() call. Holes are appended to the point list and
// addressed through paths.
func (e *Emitter) polygon(s profile.Polygon) string {
	if len(s.Holes) == 0 {
		return "polygon(points=" + e.points(s.Vertices) + ")"
	}

	all := append([]geometry.Vec2{}, s.Vertices...)
	paths := []string{indexRange(0, len(s.Vertices))}
	for _, hole := range s.Holes {
		paths = append(paths, indexRange(len(all), len(hole)))
		all = append(all, hole...)
	}
	return "polygon(points=" + e.points(all) + ", paths=[" + strings.Join(paths, ", ") + "])"
}

func indexRange(start, n int) string {
	idx := make([]string, n)
	for i := range idx {
		idx[i] = strconv.Itoa(start + i)
	}
	return "[" + strings.Join(idx, ", ") + "]"
}

func (e *Emitter) revolve(r *feature.Record) []string {
	p, ok := r.Params.(feature.RevolveParams)
	if !ok {
		return nil
	}

	lines := []string{fmt.Sprintf("// axis [%s, %s, %s]", e.num(p.Axis.X), e.num(p.Axis.Y), e.num(p.Axis.Z))}
	lines = append(lines, comments(e.unapplied(r.Modifiers, "revolve"))...)

	for _, shape := range r.Profiles {
		form := e.form2D(shape)
		if form == "" {
			lines = append(lines, "// degenerate profile skipped")
			continue
		}
		stmt := call("rotate_extrude", "angle="+e.num(p.Angle)) + " " + form + ";"
		lines = append(lines, e.place(r.Transform, geometry.Vec2{}, stmt))
	}
	return lines
}

// form2D renders a profile as a 2D statement in sketch coordinates.
func (e *Emitter) form2D(shape profile.Shape) string {
	var form string
	var center geometry.Vec2

	switch s := shape.(type) {
	case profile.Circle:
		form, center = call("circle", "r="+e.num(s.Radius)), s.Center
	case profile.Rectangle:
		form, center = call("rect", e.vec2(geometry.Vec2{X: s.Width, Y: s.Height})), s.Center
	case profile.RoundedRectangle:
		form, center = call("rect", e.vec2(geometry.Vec2{X: s.Width, Y: s.Height}), "rounding="+e.num(s.CornerRadius)), s.Center
	case profile.Polygon:
		if len(s.Vertices) < 3 {
			return ""
		}
		return e.polygon(s)
	}

	if math.Abs(center.X) > 1e-9 || math.Abs(center.Y) > 1e-9 {
		form = "translate(" + e.vec2(center) + ") " + form
	}
	return form
}

func (e *Emitter) hole(r *feature.Record) []string {
	p, ok := r.Params.(feature.HoleParams)
	if !ok {
		return nil
	}

	var notes []string
	if p.ThroughAll {
		notes = append(notes, "through all")
	}

	stmt := call("cyl", "d="+e.dim(p.Diameter), "h="+e.dim(p.Depth), "anchor=TOP") + ";"
	return append(comments(notes), e.place(r.Transform, geometry.Vec2{}, stmt))
}
