package inspect

import (
	"fmt"
	"strings"

	"github.com/philipparndt/fusion2scad/internal/feature"
	"github.com/philipparndt/fusion2scad/internal/ui"
)

// FeaturePrinter prints analyzed feature records as a table
type FeaturePrinter struct {
	precision int
	table     *ui.Table
}

// NewFeaturePrinter creates a new FeaturePrinter
func NewFeaturePrinter(precision int) *FeaturePrinter {
	// Feature, Kind, Operation, Bodies, Shape
	return &FeaturePrinter{
		precision: precision,
		table:     ui.NewTable(24, 8, 12, 20, 24),
	}
}

// PrintTable prints one row per record
func (p *FeaturePrinter) PrintTable(records []*feature.Record) {
	if len(records) == 0 {
		ui.PrintStep("No supported features")
		return
	}

	p.table.Header("Feature", "Kind", "Operation", "Bodies", "Shape")
	for _, r := range records {
		p.table.Row(p.Row(r)...)
	}
}

// Row returns the table columns of a record
func (p *FeaturePrinter) Row(r *feature.Record) []string {
	operation := r.Operation.String()
	bodies := r.ResultBodies
	if r.Kind.IsModifier() {
		operation = "-"
		bodies = r.AffectedBodies
	}

	return []string{
		r.Name,
		string(r.Kind),
		operation,
		joinOrDash(bodies),
		p.describe(r),
	}
}

// describe summarizes the geometry or the treatment of a record
func (p *FeaturePrinter) describe(r *feature.Record) string {
	if mp, ok := r.Params.(feature.ModifierParams); ok {
		var parts []string
		if !mp.Rounding.IsZero() {
			parts = append(parts, "rounding="+mp.Rounding.Render(p.precision))
		}
		if !mp.Chamfer.IsZero() {
			parts = append(parts, "chamfer="+mp.Chamfer.Render(p.precision))
		}
		return joinOrDash(parts)
	}

	if r.Kind == feature.KindHole {
		if hp, ok := r.Params.(feature.HoleParams); ok {
			return "hole d=" + hp.Diameter.Render(p.precision)
		}
	}

	counts := make(map[string]int)
	var order []string
	for _, s := range r.Profiles {
		name := s.Kind().String()
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	parts := make([]string, 0, len(order))
	for _, name := range order {
		if counts[name] > 1 {
			name = fmt.Sprintf("%d×%s", counts[name], name)
		}
		parts = append(parts, name)
	}
	return joinOrDash(parts)
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
