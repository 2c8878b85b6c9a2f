// Package timeline compiles analyzed feature records into script lines. It
// runs two passes: the first accumulates fillets and chamfers per body, the
// second folds them into the primitives and groups consecutive records that
// share a boolean operation.
package timeline

import (
	"errors"
	"fmt"

	"github.com/philipparndt/fusion2scad/internal/feature"
	"github.com/philipparndt/fusion2scad/internal/scad"
	"github.com/philipparndt/fusion2scad/internal/units"
)

// ErrMissingBodyToken is reported for modifiers that reference a body no
// earlier shape feature produced. The modifier has no effect.
var ErrMissingBodyToken = errors.New("modifier references unknown body")

// Policy decides how several modifiers on one body combine.
type Policy string

const (
	// PolicyOverwrite keeps only the last modifier applied to a body.
	PolicyOverwrite Policy = "overwrite"
	// PolicyMax keeps the largest rounding and the largest chamfer.
	PolicyMax Policy = "max"
)

// Layout decides what difference and intersection blocks operate on.
type Layout string

const (
	// LayoutFlat emits each group on its own.
	LayoutFlat Layout = "flat"
	// LayoutCumulative makes difference and intersection blocks take
	// everything emitted before them as their first child.
	LayoutCumulative Layout = "cumulative"
)

// Warning is a non-fatal problem tied to a timeline feature.
type Warning struct {
	Feature string
	Err     error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: %v", w.Feature, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Options configures analysis, compilation and emission.
type Options struct {
	Policy  Policy
	Layout  Layout
	Feature feature.Options
	Scad    scad.Options

	// Observer, when set, sees every host entity read by Run.
	Observer Observer
}

// DefaultOptions returns the compiler defaults.
func DefaultOptions() Options {
	return Options{
		Policy:  PolicyOverwrite,
		Layout:  LayoutFlat,
		Feature: feature.DefaultOptions(),
		Scad:    scad.DefaultOptions(),
	}
}

// Result is the output of one compilation.
type Result struct {
	Records  []*feature.Record
	Lines    []string
	Warnings []Warning
}

// Compiler turns records into grouped script lines.
type Compiler struct {
	opts    Options
	emitter *scad.Emitter
}

// NewCompiler creates a compiler.
func NewCompiler(opts Options) *Compiler {
	return &Compiler{opts: opts, emitter: scad.NewEmitter(opts.Scad)}
}

type group struct {
	op      feature.Operation
	members []*feature.Record
}

// Compile runs both passes over records in timeline order.
func (c *Compiler) Compile(records []*feature.Record) Result {
	res := Result{Records: records}

	state := c.accumulate(records, &res.Warnings)

	var current *group
	for _, r := range records {
		if r.Kind.IsModifier() {
			continue
		}

		// A hole names the body it cuts, not a body of its own
		derived := r
		if r.Kind != feature.KindHole {
			derived = r.WithModifiers(collect(state, r.ResultBodies))
		}
		if current != nil && current.op == derived.Operation {
			current.members = append(current.members, derived)
			continue
		}
		if current != nil {
			res.Lines = c.close(res.Lines, current)
		}
		current = &group{op: derived.Operation, members: []*feature.Record{derived}}
	}
	if current != nil {
		res.Lines = c.close(res.Lines, current)
	}

	return res
}

// accumulate is the first pass. A body is known once a shape record earlier
// in the timeline produced it.
func (c *Compiler) accumulate(records []*feature.Record, warnings *[]Warning) map[string]feature.Modifiers {
	known := make(map[string]bool)
	state := make(map[string]feature.Modifiers)

	for _, r := range records {
		if !r.Kind.IsModifier() {
			for _, body := range r.ResultBodies {
				known[body] = true
			}
			continue
		}

		p, ok := r.Params.(feature.ModifierParams)
		if !ok {
			continue
		}
		for _, body := range r.AffectedBodies {
			if !known[body] {
				*warnings = append(*warnings, Warning{
					Feature: r.Name,
					Err:     fmt.Errorf("%w %q", ErrMissingBodyToken, body),
				})
				continue
			}
			state[body] = c.apply(state[body], p.Modifiers)
		}
	}
	return state
}

func (c *Compiler) apply(prev, next feature.Modifiers) feature.Modifiers {
	if c.opts.Policy == PolicyMax {
		return feature.Modifiers{
			Rounding: larger(prev.Rounding, next.Rounding),
			Chamfer:  larger(prev.Chamfer, next.Chamfer),
		}
	}
	return next
}

// collect merges the state of every body a record produced.
func collect(state map[string]feature.Modifiers, bodies []string) feature.Modifiers {
	var m feature.Modifiers
	for _, body := range bodies {
		s := state[body]
		m.Rounding = larger(m.Rounding, s.Rounding)
		m.Chamfer = larger(m.Chamfer, s.Chamfer)
	}
	return m
}

func larger(a, b units.Dim) units.Dim {
	if b.Value > a.Value {
		return b
	}
	return a
}

// close emits a finished group and returns the extended output.
func (c *Compiler) close(out []string, g *group) []string {
	members := make([][]string, len(g.members))
	for i, r := range g.members {
		members[i] = c.emitter.Record(r)
	}

	switch {
	case g.op == feature.NewBody, g.op == feature.Union && len(members) == 1:
		for _, m := range members {
			out = append(out, m...)
		}
		return out
	case c.opts.Layout == LayoutCumulative && g.op != feature.Union && len(out) > 0:
		children := append([][]string{c.emitter.Block(feature.Union, out)}, members...)
		return c.emitter.Block(g.op, children...)
	default:
		return append(out, c.emitter.Block(g.op, members...)...)
	}
}
