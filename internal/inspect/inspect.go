package inspect

import (
	"fmt"
	"os"

	"github.com/philipparndt/fusion2scad/internal/config"
	"github.com/philipparndt/fusion2scad/internal/host"
	"github.com/philipparndt/fusion2scad/internal/params"
	"github.com/philipparndt/fusion2scad/internal/timeline"
	"github.com/philipparndt/fusion2scad/internal/ui"
)

// Inspector provides functionality to inspect design documents
type Inspector struct {
	settings *config.Settings
}

// NewInspector creates a new Inspector. Nil settings mean the defaults.
func NewInspector(settings *config.Settings) *Inspector {
	if settings == nil {
		settings = config.Default()
	}
	return &Inspector{settings: settings}
}

// Inspect reads a design document and displays its analyzed timeline
func (i *Inspector) Inspect(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("file not found: %s", filename)
	}

	doc, err := host.LoadDocument(filename)
	if err != nil {
		return err
	}

	ui.PrintHeader(fmt.Sprintf("Inspecting: %s", filename))
	ui.PrintStep(fmt.Sprintf("Design: %s", doc.Name()))
	ui.PrintStep(fmt.Sprintf("Timeline entries: %d", doc.TimelineCount()))

	hostParams, err := doc.Parameters()
	if err != nil {
		return fmt.Errorf("error reading parameters: %w", err)
	}
	table := params.Build(hostParams)

	ui.PrintHeader("Parameters:")
	if table.Len() == 0 {
		ui.PrintStep("No user parameters")
	} else {
		ui.PrintList("Identifiers", table.Lines(i.settings.Precision))
	}

	records, warnings, err := timeline.Analyze(doc, table, i.settings.TimelineOptions())

	ui.PrintHeader("Features:")
	printer := NewFeaturePrinter(i.settings.Precision)
	printer.PrintTable(records)

	if len(warnings) > 0 {
		ui.PrintHeader("Warnings:")
		for _, w := range warnings {
			ui.PrintFeatureWarning(w.Feature, w.Err)
		}
	}

	if err != nil {
		return fmt.Errorf("error analyzing timeline: %w", err)
	}
	return nil
}
