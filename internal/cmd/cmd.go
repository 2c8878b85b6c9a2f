package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/philipparndt/fusion2scad/internal/buildplan"
	"github.com/philipparndt/fusion2scad/internal/config"
	"github.com/philipparndt/fusion2scad/internal/inspect"
	"github.com/philipparndt/fusion2scad/internal/ui"
	"github.com/philipparndt/fusion2scad/version"
)

type CLI struct {
	Convert    *ConvertCmd    `cmd:"" help:"Convert a design document into an OpenSCAD/BOSL2 script"`
	Inspect    *InspectCmd    `cmd:"" help:"Inspect a design document and show its analyzed timeline"`
	Version    *VersionCmd    `cmd:"" help:"Show version information"`
	Completion *CompletionCmd `cmd:"" help:"Generate shell completion script"`

	Progress string `help:"Progress output: auto or plain (step by step, no colors)" enum:"auto,plain" default:"auto"`
}

type ConvertCmd struct {
	Design string `arg:"" help:"Design document to convert (.yaml, .yml or .json)"`
	Output string `help:"Output script path (default: design name with .scad extension)" short:"o"`
	Config string `help:"Settings file (YAML)" short:"c"`
	Debug  string `help:"Write the raw host values as JSON to this file"`
	Policy string `help:"How repeated modifiers on a body combine: overwrite or max" placeholder:"overwrite|max"`
	Layout string `help:"Boolean block layout: flat or cumulative" placeholder:"flat|cumulative"`
	Print  bool   `help:"Print the generated script"`
	Render string `help:"Render the generated script with OpenSCAD to this file (.stl, .3mf, ...)"`
	Open   bool   `help:"Open the result file in the default application after converting"`
}

// Help adds additional help text with examples
func (c *ConvertCmd) Help() string {
	return renderConvertHelp()
}

// openFile opens a file in the default application for the current platform
func openFile(filepath string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", filepath)
	case "linux":
		cmd = exec.Command("xdg-open", filepath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", filepath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// loadSettings reads the settings file or returns the defaults
func loadSettings(path string) (*config.Settings, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.NewLoader().Load(path)
}

// settings returns the effective settings of the command
func (c *ConvertCmd) settings() (*config.Settings, error) {
	settings, err := loadSettings(c.Config)
	if err != nil {
		return nil, err
	}

	if c.Policy != "" {
		settings.ModifierPolicy = c.Policy
	}
	if c.Layout != "" {
		settings.Layout = c.Layout
	}
	if c.Debug != "" {
		settings.DebugOutput = c.Debug
	}

	if err := config.NewLoader().Validate(settings); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return settings, nil
}

func (c *ConvertCmd) Run() error {
	settings, err := c.settings()
	if err != nil {
		return err
	}

	planner := buildplan.NewPlanner()
	plan, err := planner.CreatePlan(buildplan.Request{
		DesignFile: c.Design,
		OutputFile: c.Output,
		RenderFile: c.Render,
		Print:      c.Print,
		Settings:   settings,
	})
	if err != nil {
		return fmt.Errorf("failed to create build plan: %w", err)
	}

	if err := plan.Execute(); err != nil {
		return err
	}

	// Open the file in default application if requested
	if c.Open {
		target := plan.OutputFile
		if c.Render != "" {
			target = c.Render
		}
		if err := openFile(target); err != nil {
			ui.PrintError("Failed to open file: " + err.Error())
		}
	}

	return nil
}

type InspectCmd struct {
	File   string `arg:"" help:"Design document to inspect"`
	Config string `help:"Settings file (YAML)" short:"c"`
}

func (c *InspectCmd) Run() error {
	settings, err := loadSettings(c.Config)
	if err != nil {
		return err
	}
	inspector := inspect.NewInspector(settings)
	return inspector.Inspect(c.File)
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := version.Get()
	fmt.Println(info.String())
	return nil
}

// newParser creates the kong parser of the command line
func newParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("fusion2scad"),
		kong.Description("Parametric CAD timeline to OpenSCAD/BOSL2 converter"),
		kong.UsageOnError(),
	}, options...)
	return kong.New(cli, options...)
}

// Parse parses command line arguments and executes the appropriate command
func Parse() {
	cli := &CLI{}
	parser, err := newParser(cli)
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	ui.SetPlain(cli.Progress == "plain")

	if err := ctx.Run(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
