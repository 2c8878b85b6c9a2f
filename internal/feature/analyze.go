package feature

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/fusion2scad/internal/geometry"
	"github.com/philipparndt/fusion2scad/internal/host"
	"github.com/philipparndt/fusion2scad/internal/params"
	"github.com/philipparndt/fusion2scad/internal/profile"
	"github.com/philipparndt/fusion2scad/internal/units"
)

var (
	// ErrUnsupportedFeatureKind is returned for timeline entries without an
	// analyzer. The entry is skipped with a warning.
	ErrUnsupportedFeatureKind = errors.New("unsupported feature kind")

	// ErrPassiveFeature is returned for entries that only contribute through
	// the features referencing them, such as sketches.
	ErrPassiveFeature = errors.New("passive feature")
)

// DefaultThroughAllDepth is the depth in mm used for holes that cut through
// everything.
const DefaultThroughAllDepth = 200.0

// BodyKey selects which host attribute identifies a body.
type BodyKey string

const (
	BodyKeyToken BodyKey = "token"
	BodyKeyName  BodyKey = "name"
)

// Options controls how entries are analyzed.
type Options struct {
	BodyKey         BodyKey
	ArcStep         float64
	ThroughAllDepth float64
	LinkParameters  bool
}

// DefaultOptions returns the analyzer defaults.
func DefaultOptions() Options {
	return Options{
		BodyKey:         BodyKeyToken,
		ArcStep:         profile.DefaultArcStep,
		ThroughAllDepth: DefaultThroughAllDepth,
		LinkParameters:  true,
	}
}

// Context is the environment shared by all analyzer calls of one run.
type Context struct {
	Params  *params.Table
	Options Options

	// Warn receives non-fatal problems, keyed by feature name.
	Warn func(feature string, err error)

	classifier *profile.Classifier
}

// NewContext creates an analyzer context. warn may be nil.
func NewContext(table *params.Table, opts Options, warn func(feature string, err error)) *Context {
	if opts.ThroughAllDepth <= 0 {
		opts.ThroughAllDepth = DefaultThroughAllDepth
	}
	return &Context{
		Params:     table,
		Options:    opts,
		Warn:       warn,
		classifier: profile.NewClassifier(opts.ArcStep),
	}
}

func (c *Context) warn(feature string, format string, args ...any) {
	if c.Warn != nil {
		c.Warn(feature, fmt.Errorf(format, args...))
	}
}

// length converts a host length, linking it to a parameter when enabled.
func (c *Context) length(v *host.Value) units.Dim {
	if v == nil {
		return units.Dim{}
	}
	if !c.Options.LinkParameters {
		return units.Literal(units.ToMM(v.Value))
	}
	return c.Params.Link(v.Value, v.Expression)
}

func (c *Context) bodyKey(b host.Body) string {
	if c.Options.BodyKey == BodyKeyName && b.Name != "" {
		return b.Name
	}
	if b.Token != "" {
		return b.Token
	}
	return b.Name
}

type analyzer func(e host.Entity, ctx *Context) (*Record, error)

var analyzers = map[Kind]analyzer{
	KindSketch:  analyzeSketch,
	KindExtrude: analyzeExtrude,
	KindRevolve: analyzeRevolve,
	KindHole:    analyzeHole,
	KindFillet:  analyzeFillet,
	KindChamfer: analyzeChamfer,
}

// Analyze turns one host entity into a record.
func Analyze(e host.Entity, ctx *Context) (*Record, error) {
	fn, ok := analyzers[Kind(e.Kind)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFeatureKind, e.Kind)
	}
	return fn(e, ctx)
}

func analyzeSketch(e host.Entity, _ *Context) (*Record, error) {
	return nil, fmt.Errorf("%w: %s", ErrPassiveFeature, e.Name)
}

// shapeRecord fills the fields shared by every body producing kind.
func shapeRecord(e host.Entity, ctx *Context) *Record {
	r := &Record{
		Index:        e.Index,
		Name:         e.Name,
		Kind:         Kind(e.Kind),
		Transform:    geometry.Identity(),
		ResultBodies: ctx.bodyKeys(e.Bodies),
	}

	op, err := ParseOperation(e.Operation)
	if err != nil {
		ctx.warn(e.Name, "%v, treated as new body", err)
	}
	r.Operation = op

	if e.Plane != nil {
		t, err := geometry.FromPlane(e.Plane.Origin, e.Plane.XAxis, e.Plane.YAxis)
		if err != nil {
			ctx.warn(e.Name, "sketch plane: %w", err)
		}
		r.Transform = t
	}

	for _, p := range e.Profiles {
		r.Profiles = append(r.Profiles, ctx.classifier.Classify(profile.ScaleToMM(p)))
	}
	if len(r.Profiles) == 0 {
		ctx.warn(e.Name, "no profiles selected")
	}
	return r
}

func analyzeExtrude(e host.Entity, ctx *Context) (*Record, error) {
	r := shapeRecord(e, ctx)

	var p ExtrudeParams
	if e.Distance == nil {
		ctx.warn(e.Name, "extent is not a distance, height set to 0")
	} else {
		p.Height = ctx.length(e.Distance)
		if p.Height.Value < 0 {
			p.Height.Value = -p.Height.Value
			p.Reversed = true
		}
	}
	if e.TaperAngle != nil {
		p.TaperAngle = e.TaperAngle.Value
	}
	p.TwoSided = e.TwoSided

	r.Params = p
	return r, nil
}

func analyzeRevolve(e host.Entity, ctx *Context) (*Record, error) {
	r := shapeRecord(e, ctx)

	p := RevolveParams{Angle: 360, Axis: geometry.Vec3{Z: 1}}
	if e.Angle != nil {
		p.Angle = e.Angle.Value
	}
	if e.Axis != nil {
		axis, ok := e.Axis.Normalize()
		if ok {
			p.Axis = axis
		} else {
			ctx.warn(e.Name, "zero-length revolve axis, using Z")
		}
	}

	r.Params = p
	return r, nil
}

func analyzeHole(e host.Entity, ctx *Context) (*Record, error) {
	r := &Record{
		Index:        e.Index,
		Name:         e.Name,
		Kind:         KindHole,
		Transform:    geometry.Identity(),
		Operation:    Difference,
		ResultBodies: ctx.bodyKeys(e.Bodies),
	}

	var p HoleParams
	if e.Diameter == nil {
		ctx.warn(e.Name, "hole has no diameter")
	} else {
		p.Diameter = ctx.length(e.Diameter)
	}
	if e.ThroughAll || e.Depth == nil {
		p.ThroughAll = true
		p.Depth = units.Literal(ctx.Options.ThroughAllDepth)
	} else {
		p.Depth = ctx.length(e.Depth)
	}

	var position geometry.Vec3
	if e.Position != nil {
		position = *e.Position
	}
	axis := geometry.Vec3{Z: 1}
	if e.Axis != nil {
		axis = *e.Axis
	}
	t, err := geometry.FromAxis(position, axis)
	if err != nil {
		ctx.warn(e.Name, "hole axis: %w", err)
	}
	r.Transform = t

	r.Profiles = []profile.Shape{profile.Circle{Radius: p.Diameter.Value / 2}}
	r.Params = p
	return r, nil
}

func analyzeFillet(e host.Entity, ctx *Context) (*Record, error) {
	r := modifierRecord(e, ctx)
	if e.Radius == nil {
		ctx.warn(e.Name, "fillet has no radius")
	}
	r.Params = ModifierParams{Modifiers{Rounding: ctx.length(e.Radius)}}
	return r, nil
}

func analyzeChamfer(e host.Entity, ctx *Context) (*Record, error) {
	r := modifierRecord(e, ctx)
	if e.Distance == nil {
		ctx.warn(e.Name, "chamfer has no distance")
	}
	r.Params = ModifierParams{Modifiers{Chamfer: ctx.length(e.Distance)}}
	return r, nil
}

func modifierRecord(e host.Entity, ctx *Context) *Record {
	var bodies []host.Body
	for _, s := range e.Edges {
		bodies = append(bodies, s.Body)
	}
	for _, s := range e.Faces {
		bodies = append(bodies, s.Body)
	}
	bodies = append(bodies, e.Bodies...)

	r := &Record{
		Index:          e.Index,
		Name:           e.Name,
		Kind:           Kind(e.Kind),
		Transform:      geometry.Identity(),
		AffectedBodies: ctx.bodyKeys(bodies),
	}
	if len(r.AffectedBodies) == 0 {
		ctx.warn(e.Name, "no bodies selected")
	}
	return r
}

// bodyKeys returns the sorted, de-duplicated keys of bodies.
func (c *Context) bodyKeys(bodies []host.Body) []string {
	seen := make(map[string]bool, len(bodies))
	var keys []string
	for _, b := range bodies {
		k := c.bodyKey(b)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TaperedSize returns the size of a side of length size after extruding
// height with a taper angle in degrees. Positive angles shrink the profile.
func TaperedSize(size, height, taper float64) float64 {
	return size - 2*height*math.Tan(taper*math.Pi/180)
}
