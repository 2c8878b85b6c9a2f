package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/fusion2scad/internal/feature"
	"github.com/philipparndt/fusion2scad/internal/timeline"
)

// TestDefault tests that the defaults pass validation and map to the compiler defaults
func TestDefault(t *testing.T) {
	settings := Default()

	if err := NewLoader().Validate(settings); err != nil {
		t.Fatalf("Default settings are invalid: %v", err)
	}

	opts := settings.TimelineOptions()
	want := timeline.DefaultOptions()

	if opts.Policy != want.Policy {
		t.Errorf("Expected policy %q, got %q", want.Policy, opts.Policy)
	}
	if opts.Layout != want.Layout {
		t.Errorf("Expected layout %q, got %q", want.Layout, opts.Layout)
	}
	if opts.Feature != want.Feature {
		t.Errorf("Expected feature options %+v, got %+v", want.Feature, opts.Feature)
	}
	if opts.Scad != want.Scad {
		t.Errorf("Expected scad options %+v, got %+v", want.Scad, opts.Scad)
	}
}

// TestParse_PartialFileKeepsDefaults tests that missing keys keep their defaults
func TestParse_PartialFileKeepsDefaults(t *testing.T) {
	settings, err := NewLoader().Parse([]byte("modifier_policy: max\nprecision: 2\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if settings.ModifierPolicy != "max" {
		t.Errorf("Expected modifier_policy max, got %q", settings.ModifierPolicy)
	}
	if settings.Precision != 2 {
		t.Errorf("Expected precision 2, got %d", settings.Precision)
	}
	if settings.Segments != 64 {
		t.Errorf("Expected default segments 64, got %d", settings.Segments)
	}
	if !settings.LinkParameters {
		t.Error("Expected link_parameters to default to true")
	}
}

// TestParse_FalseOverridesDefault tests that explicit false values are kept
func TestParse_FalseOverridesDefault(t *testing.T) {
	settings, err := NewLoader().Parse([]byte("link_parameters: false\nannotate_warnings: false\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if settings.LinkParameters || settings.AnnotateWarnings {
		t.Errorf("Expected both flags to be false, got %+v", settings)
	}
}

// TestParse_Empty tests that an empty file yields the defaults
func TestParse_Empty(t *testing.T) {
	settings, err := NewLoader().Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if *settings != *Default() {
		t.Errorf("Expected defaults, got %+v", settings)
	}
}

// TestParse_Invalid tests the validation errors
func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown policy", "modifier_policy: sum", "modifier_policy"},
		{"unknown body key", "body_key: id", "body_key"},
		{"unknown layout", "layout: nested", "layout"},
		{"zero arc step", "arc_step_degrees: 0", "arc_step_degrees"},
		{"huge arc step", "arc_step_degrees: 120", "arc_step_degrees"},
		{"negative precision", "precision: -1", "precision"},
		{"zero through all depth", "through_all_depth: 0", "through_all_depth"},
		{"negative segments", "segments: -4", "segments"},
		{"unknown key", "modifer_policy: max", "modifer_policy"},
		{"malformed yaml", "layout: [flat", "failed to parse YAML"},
	}

	loader := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestLoad_ResolvesDebugOutput tests that debug_output is resolved relative to the settings file
func TestLoad_ResolvesDebugOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("debug_output: out/debug.json\nbody_key: name\n"), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}

	settings, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := filepath.Join(dir, "out", "debug.json")
	if settings.DebugOutput != want {
		t.Errorf("Expected debug output %q, got %q", want, settings.DebugOutput)
	}
	if settings.TimelineOptions().Feature.BodyKey != feature.BodyKeyName {
		t.Errorf("Expected body key name, got %q", settings.TimelineOptions().Feature.BodyKey)
	}
}

// TestLoad_MissingFile tests the error for a missing settings file
func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Expected read error, got %v", err)
	}
}
