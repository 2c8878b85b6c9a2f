package preconditions

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/philipparndt/fusion2scad/internal/renderer"
)

// Check verifies all preconditions for rendering are met
func Check() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"OpenSCAD", checkOpenSCAD},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s: %w", check.name, err)
		}
	}

	return nil
}

func checkOpenSCAD() error {
	_, err := exec.LookPath(renderer.Binary)
	if err != nil {
		return fmt.Errorf("not found in PATH. Please install OpenSCAD from https://openscad.org/")
	}
	return nil
}

// ValidateDesign checks that the design document exists and is readable
func ValidateDesign(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access file %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	if !isDesignFile(path) {
		return fmt.Errorf("%s is not a design document (must end in .yaml, .yml or .json)", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot read file %s: %w", path, err)
	}
	file.Close()

	return nil
}

func isDesignFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// ValidateOutputPath checks that the directory of an output file exists
// and is writable
func ValidateOutputPath(path string) error {
	dir := filepath.Dir(path)

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s does not exist", dir)
	}
	if !info.IsDir() || (info.Mode()&0200) == 0 {
		return fmt.Errorf("output directory %s is not writable", dir)
	}

	return nil
}
