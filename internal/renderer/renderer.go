package renderer

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Binary is the OpenSCAD executable used for rendering.
var Binary = "openscad"

// RenderSCAD renders a generated SCAD file with OpenSCAD. The output format
// follows the extension of outputFile (.stl, .3mf, .off, ...).
func RenderSCAD(scadFile, outputFile string) error {
	absScadFile, err := filepath.Abs(scadFile)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", scadFile, err)
	}
	absOutputFile, err := filepath.Abs(outputFile)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", outputFile, err)
	}

	// Includes such as BOSL2 resolve relative to the script
	cmd := exec.Command(Binary, "-o", absOutputFile, absScadFile)
	cmd.Dir = filepath.Dir(absScadFile)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to render %s: %w", scadFile, err)
	}
	return nil
}
