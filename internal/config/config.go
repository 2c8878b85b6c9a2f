package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/philipparndt/fusion2scad/internal/feature"
	"github.com/philipparndt/fusion2scad/internal/profile"
	"github.com/philipparndt/fusion2scad/internal/scad"
	"github.com/philipparndt/fusion2scad/internal/timeline"
	"github.com/philipparndt/fusion2scad/internal/units"
	"gopkg.in/yaml.v3"
)

// Settings are the user settings of a conversion.
type Settings struct {
	ModifierPolicy   string  `yaml:"modifier_policy"`
	BodyKey          string  `yaml:"body_key"`
	Layout           string  `yaml:"layout"`
	ArcStepDegrees   float64 `yaml:"arc_step_degrees"`
	Precision        int     `yaml:"precision"`
	LinkParameters   bool    `yaml:"link_parameters"`
	ThroughAllDepth  float64 `yaml:"through_all_depth"`
	Segments         int     `yaml:"segments"`
	BOSL2Include     string  `yaml:"bosl2_include"`
	AnnotateWarnings bool    `yaml:"annotate_warnings"`
	DebugOutput      string  `yaml:"debug_output"`
}

// Default returns the settings used when no file is given.
func Default() *Settings {
	return &Settings{
		ModifierPolicy:   string(timeline.PolicyOverwrite),
		BodyKey:          string(feature.BodyKeyToken),
		Layout:           string(timeline.LayoutFlat),
		ArcStepDegrees:   profile.DefaultArcStep,
		Precision:        units.DefaultPrecision,
		LinkParameters:   true,
		ThroughAllDepth:  feature.DefaultThroughAllDepth,
		Segments:         scad.DefaultSegments,
		BOSL2Include:     scad.DefaultInclude,
		AnnotateWarnings: true,
	}
}

// Loader handles loading and validating YAML settings files
type Loader struct{}

// NewLoader creates a new settings loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a settings file. Keys missing from the file keep their
// defaults; unknown keys are rejected.
func (l *Loader) Load(configPath string) (*Settings, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	settings, err := l.Parse(data)
	if err != nil {
		return nil, err
	}

	// Debug output is relative to the settings file
	if settings.DebugOutput != "" && !filepath.IsAbs(settings.DebugOutput) {
		absConfigDir, err := filepath.Abs(filepath.Dir(configPath))
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path of config directory: %w", err)
		}
		settings.DebugOutput = filepath.Join(absConfigDir, settings.DebugOutput)
	}

	return settings, nil
}

// Parse parses settings from memory.
func (l *Loader) Parse(data []byte) (*Settings, error) {
	settings := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(settings); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := l.Validate(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

// Validate checks if the settings are valid
func (l *Loader) Validate(s *Settings) error {
	switch timeline.Policy(s.ModifierPolicy) {
	case timeline.PolicyOverwrite, timeline.PolicyMax:
	default:
		return fmt.Errorf("modifier_policy must be %q or %q, got %q", timeline.PolicyOverwrite, timeline.PolicyMax, s.ModifierPolicy)
	}

	switch feature.BodyKey(s.BodyKey) {
	case feature.BodyKeyToken, feature.BodyKeyName:
	default:
		return fmt.Errorf("body_key must be %q or %q, got %q", feature.BodyKeyToken, feature.BodyKeyName, s.BodyKey)
	}

	switch timeline.Layout(s.Layout) {
	case timeline.LayoutFlat, timeline.LayoutCumulative:
	default:
		return fmt.Errorf("layout must be %q or %q, got %q", timeline.LayoutFlat, timeline.LayoutCumulative, s.Layout)
	}

	if s.ArcStepDegrees <= 0 || s.ArcStepDegrees > 90 {
		return fmt.Errorf("arc_step_degrees must be in (0, 90], got %g", s.ArcStepDegrees)
	}
	if s.Precision < 0 || s.Precision > 10 {
		return fmt.Errorf("precision must be 0-10, got %d", s.Precision)
	}
	if s.ThroughAllDepth <= 0 {
		return fmt.Errorf("through_all_depth must be positive, got %g", s.ThroughAllDepth)
	}
	if s.Segments < 0 {
		return fmt.Errorf("segments must not be negative, got %d", s.Segments)
	}

	return nil
}

// TimelineOptions converts the settings into compiler options.
func (s *Settings) TimelineOptions() timeline.Options {
	return timeline.Options{
		Policy: timeline.Policy(s.ModifierPolicy),
		Layout: timeline.Layout(s.Layout),
		Feature: feature.Options{
			BodyKey:         feature.BodyKey(s.BodyKey),
			ArcStep:         s.ArcStepDegrees,
			ThroughAllDepth: s.ThroughAllDepth,
			LinkParameters:  s.LinkParameters,
		},
		Scad: scad.Options{
			Precision:        s.Precision,
			Segments:         s.Segments,
			Include:          s.BOSL2Include,
			AnnotateWarnings: s.AnnotateWarnings,
		},
	}
}
