package buildplan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/fusion2scad/internal/config"
	"github.com/philipparndt/fusion2scad/internal/diagnostics"
	"github.com/philipparndt/fusion2scad/internal/host"
	"github.com/philipparndt/fusion2scad/internal/params"
	"github.com/philipparndt/fusion2scad/internal/preconditions"
	"github.com/philipparndt/fusion2scad/internal/renderer"
	"github.com/philipparndt/fusion2scad/internal/scad"
	"github.com/philipparndt/fusion2scad/internal/timeline"
	"github.com/philipparndt/fusion2scad/internal/ui"
)

// BuildStep represents a single step in the build plan
type BuildStep interface {
	Name() string
	Execute() error
}

// Request describes one conversion
type Request struct {
	DesignFile string
	OutputFile string // defaults to the design file with a .scad extension
	RenderFile string // rendered with OpenSCAD when set
	Print      bool   // print the generated script
	Settings   *config.Settings
}

// BuildPlan contains all steps needed to convert a design
type BuildPlan struct {
	Steps      []BuildStep
	OutputFile string

	ctx *buildContext
}

// buildContext is the state shared by the steps of one plan
type buildContext struct {
	request  Request
	document *host.Document
	table    *params.Table
	result   timeline.Result
	recorder *diagnostics.Recorder
}

// Planner creates build plans
type Planner struct{}

// NewPlanner creates a new build planner
func NewPlanner() *Planner {
	return &Planner{}
}

// DefaultOutput returns the script path used when none is given.
func DefaultOutput(designFile string) string {
	return strings.TrimSuffix(designFile, filepath.Ext(designFile)) + ".scad"
}

// CreatePlan creates the execution plan for a conversion
func (p *Planner) CreatePlan(req Request) (*BuildPlan, error) {
	if req.DesignFile == "" {
		return nil, fmt.Errorf("no design file specified")
	}
	if req.Settings == nil {
		req.Settings = config.Default()
	}
	if err := config.NewLoader().Validate(req.Settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if req.OutputFile == "" {
		req.OutputFile = DefaultOutput(req.DesignFile)
	}

	ctx := &buildContext{
		request:  req,
		recorder: diagnostics.NewRecorder(),
	}

	plan := &BuildPlan{
		OutputFile: req.OutputFile,
		ctx:        ctx,
	}
	if req.RenderFile != "" {
		plan.Steps = append(plan.Steps, &CheckPreconditionsStep{})
	}
	plan.Steps = append(plan.Steps,
		&ValidateFilesStep{ctx: ctx},
		&LoadDesignStep{ctx: ctx},
		&BuildParametersStep{ctx: ctx},
		&CompileStep{ctx: ctx},
		&WriteScriptStep{ctx: ctx},
	)
	if req.Settings.DebugOutput != "" {
		plan.Steps = append(plan.Steps, &WriteDiagnosticsStep{ctx: ctx})
	}
	if req.RenderFile != "" {
		plan.Steps = append(plan.Steps, &RenderSCADStep{ctx: ctx})
	}

	return plan, nil
}

// Result returns the compiler result of an executed plan
func (p *BuildPlan) Result() timeline.Result {
	return p.ctx.result
}

// Execute runs all steps in the build plan
func (p *BuildPlan) Execute() error {
	if ui.IsVerbose() {
		ui.PrintTitle("Build Plan Execution")
		ui.PrintInfo(fmt.Sprintf("Total steps: %d", len(p.Steps)))
		ui.PrintSeparator()
	}

	for i, step := range p.Steps {
		if ui.IsVerbose() {
			ui.PrintHeader(fmt.Sprintf("Step %d/%d: %s", i+1, len(p.Steps), step.Name()))
		}
		if err := step.Execute(); err != nil {
			p.flushDiagnostics(err)
			return err
		}
	}

	ui.PrintSeparator()
	ui.PrintSuccess("Conversion completed successfully!")
	relPath, err := filepath.Rel(".", p.OutputFile)
	if err != nil {
		relPath = p.OutputFile
	}
	ui.PrintKeyValue("Output file", relPath)
	if p.ctx.request.RenderFile != "" {
		ui.PrintKeyValue("Rendered file", p.ctx.request.RenderFile)
	}
	return nil
}

// flushDiagnostics writes the partial dump of a failed run
func (p *BuildPlan) flushDiagnostics(cause error) {
	path := p.ctx.request.Settings.DebugOutput
	if path == "" {
		return
	}
	p.ctx.recorder.Fail(cause)
	if err := p.ctx.recorder.WriteFile(path); err != nil {
		ui.PrintWarning("Failed to write diagnostics: " + err.Error())
		return
	}
	ui.PrintInfo("Partial diagnostics written to " + path)
}

// CheckPreconditionsStep checks if OpenSCAD is installed
type CheckPreconditionsStep struct{}

func (s *CheckPreconditionsStep) Name() string {
	return "Check preconditions"
}

func (s *CheckPreconditionsStep) Execute() error {
	if err := preconditions.Check(); err != nil {
		return fmt.Errorf("OpenSCAD not found: %w", err)
	}
	if ui.IsVerbose() {
		ui.PrintSuccess("✓ OpenSCAD is available")
	}
	return nil
}

// ValidateFilesStep validates the design file and the output locations
type ValidateFilesStep struct {
	ctx *buildContext
}

func (s *ValidateFilesStep) Name() string {
	return "Validate files"
}

func (s *ValidateFilesStep) Execute() error {
	req := s.ctx.request
	if err := preconditions.ValidateDesign(req.DesignFile); err != nil {
		return err
	}

	outputs := []string{req.OutputFile}
	if req.Settings.DebugOutput != "" {
		outputs = append(outputs, req.Settings.DebugOutput)
	}
	if req.RenderFile != "" {
		outputs = append(outputs, req.RenderFile)
	}
	for _, out := range outputs {
		if err := preconditions.ValidateOutputPath(out); err != nil {
			return err
		}
	}

	if ui.IsVerbose() {
		ui.PrintSuccess(fmt.Sprintf("✓ Validated %s and %d output path(s)", filepath.Base(req.DesignFile), len(outputs)))
	}
	return nil
}

// LoadDesignStep reads the design document
type LoadDesignStep struct {
	ctx *buildContext
}

func (s *LoadDesignStep) Name() string {
	return "Load design"
}

func (s *LoadDesignStep) Execute() error {
	doc, err := host.LoadDocument(s.ctx.request.DesignFile)
	if err != nil {
		return err
	}
	s.ctx.document = doc
	s.ctx.recorder.Design(doc.Name())

	if ui.IsVerbose() {
		ui.PrintKeyValue("Design", doc.Name())
		ui.PrintKeyValue("Timeline entries", fmt.Sprintf("%d", doc.TimelineCount()))
	}
	return nil
}

// BuildParametersStep builds the parameter table of the design
type BuildParametersStep struct {
	ctx *buildContext
}

func (s *BuildParametersStep) Name() string {
	return "Build parameters"
}

func (s *BuildParametersStep) Execute() error {
	hostParams, err := s.ctx.document.Parameters()
	if err != nil {
		return fmt.Errorf("failed to read parameters: %w", err)
	}
	s.ctx.recorder.Parameters(hostParams)
	s.ctx.table = params.Build(hostParams)

	if ui.IsVerbose() {
		for _, p := range s.ctx.table.All() {
			ui.PrintItem(fmt.Sprintf("%s = %g %s", p.Identifier, p.Value, p.Unit))
		}
	}
	return nil
}

// CompileStep analyzes the timeline and compiles it into script lines
type CompileStep struct {
	ctx *buildContext
}

func (s *CompileStep) Name() string {
	return "Compile timeline"
}

func (s *CompileStep) Execute() error {
	opts := s.ctx.request.Settings.TimelineOptions()
	opts.Observer = s.ctx.recorder

	res, err := timeline.Run(s.ctx.document, s.ctx.table, opts)
	s.ctx.result = res
	for _, w := range res.Warnings {
		ui.PrintFeatureWarning(w.Feature, w.Err)
	}
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", s.ctx.document.Name(), err)
	}

	if ui.IsVerbose() {
		for _, r := range res.Records {
			ui.PrintItem(fmt.Sprintf("%s (%s, %s)", r.Name, r.Kind, r.Operation))
		}
	}
	ui.PrintSuccess(fmt.Sprintf("Compiled %d feature(s) with %d warning(s)", len(res.Records), len(res.Warnings)))
	return nil
}

// WriteScriptStep writes the generated script
type WriteScriptStep struct {
	ctx *buildContext
}

func (s *WriteScriptStep) Name() string {
	return "Write script"
}

func (s *WriteScriptStep) Execute() error {
	req := s.ctx.request
	emitter := scad.NewEmitter(req.Settings.TimelineOptions().Scad)
	script := s.script()

	f, err := os.Create(req.OutputFile)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	if err := emitter.Write(f, script); err != nil {
		return err
	}

	if req.Print {
		if err := ui.PrintScript(emitter.Render(script)); err != nil {
			return err
		}
	}

	if ui.IsVerbose() {
		ui.PrintSuccess("✓ Wrote " + filepath.Base(req.OutputFile))
	}
	return nil
}

func (s *WriteScriptStep) script() scad.Script {
	warnings := make([]string, 0, len(s.ctx.result.Warnings))
	for _, w := range s.ctx.result.Warnings {
		warnings = append(warnings, w.Error())
	}
	return scad.Script{
		Design:     s.ctx.document.Name(),
		Parameters: s.ctx.table.Lines(s.ctx.request.Settings.Precision),
		Geometry:   s.ctx.result.Lines,
		Warnings:   warnings,
	}
}

// WriteDiagnosticsStep writes the raw host values as JSON
type WriteDiagnosticsStep struct {
	ctx *buildContext
}

func (s *WriteDiagnosticsStep) Name() string {
	return "Write diagnostics"
}

func (s *WriteDiagnosticsStep) Execute() error {
	path := s.ctx.request.Settings.DebugOutput
	if err := s.ctx.recorder.WriteFile(path); err != nil {
		return err
	}
	if ui.IsVerbose() {
		ui.PrintSuccess("✓ Wrote " + filepath.Base(path))
	}
	return nil
}

// RenderSCADStep renders the generated script with OpenSCAD
type RenderSCADStep struct {
	ctx *buildContext
}

func (s *RenderSCADStep) Name() string {
	return "Render SCAD file"
}

func (s *RenderSCADStep) Execute() error {
	req := s.ctx.request
	if !ui.IsVerbose() {
		ui.PrintInfo(fmt.Sprintf("Rendering %s...", filepath.Base(req.OutputFile)))
	}
	if err := renderer.RenderSCAD(req.OutputFile, req.RenderFile); err != nil {
		return err
	}
	ui.PrintSuccess(fmt.Sprintf("Rendered %s → %s", filepath.Base(req.OutputFile), filepath.Base(req.RenderFile)))
	return nil
}
