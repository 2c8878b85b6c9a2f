package timeline

import (
	"errors"
	"fmt"

	"github.com/philipparndt/fusion2scad/internal/feature"
	"github.com/philipparndt/fusion2scad/internal/host"
	"github.com/philipparndt/fusion2scad/internal/params"
)

// Observer receives the host entities in the order they are read.
type Observer interface {
	Entity(e host.Entity)
}

// Analyze reads every timeline entry of design and returns the records of
// the supported ones. Unsupported kinds are skipped with a warning, passive
// kinds silently. Host access failures abort the run.
func Analyze(design host.Design, table *params.Table, opts Options) ([]*feature.Record, []Warning, error) {
	var warnings []Warning
	ctx := feature.NewContext(table, opts.Feature, func(name string, err error) {
		warnings = append(warnings, Warning{Feature: name, Err: err})
	})

	var records []*feature.Record
	for i := 0; i < design.TimelineCount(); i++ {
		e, err := design.Item(i)
		if err != nil {
			return records, warnings, fmt.Errorf("timeline entry %d: %w", i, err)
		}
		if opts.Observer != nil {
			opts.Observer.Entity(e)
		}

		rec, err := feature.Analyze(e, ctx)
		switch {
		case errors.Is(err, feature.ErrPassiveFeature):
			continue
		case errors.Is(err, feature.ErrUnsupportedFeatureKind):
			warnings = append(warnings, Warning{Feature: e.Name, Err: err})
			continue
		case err != nil:
			return records, warnings, fmt.Errorf("%s: %w", e.Name, err)
		}
		records = append(records, rec)
	}

	return records, warnings, nil
}

// Run analyzes and compiles a design.
func Run(design host.Design, table *params.Table, opts Options) (Result, error) {
	records, warnings, err := Analyze(design, table, opts)
	if err != nil {
		return Result{Records: records, Warnings: warnings}, err
	}

	res := NewCompiler(opts).Compile(records)
	res.Warnings = append(warnings, res.Warnings...)
	return res, nil
}
