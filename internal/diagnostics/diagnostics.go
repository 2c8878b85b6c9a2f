// Package diagnostics records the raw host values read during an export so
// a failed or surprising conversion can be inspected offline.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/philipparndt/fusion2scad/internal/host"
)

// Dump is the document written to the debug file.
type Dump struct {
	Design     string                 `json:"design"`
	Parameters []host.Parameter       `json:"parameters"`
	Features   map[string]host.Entity `json:"features"`
	Error      string                 `json:"error,omitempty"`
}

// Recorder collects host values. It implements timeline.Observer.
type Recorder struct {
	dump Dump
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{dump: Dump{
		Parameters: []host.Parameter{},
		Features:   map[string]host.Entity{},
	}}
}

// Design records the design name.
func (r *Recorder) Design(name string) {
	r.dump.Design = name
}

// Parameters records the user parameters as read from the host.
func (r *Recorder) Parameters(params []host.Parameter) {
	r.dump.Parameters = append(r.dump.Parameters, params...)
}

// Entity records one timeline entity under its feature name. Repeated names
// get a numeric suffix.
func (r *Recorder) Entity(e host.Entity) {
	key := e.Name
	for n := 2; ; n++ {
		if _, taken := r.dump.Features[key]; !taken {
			break
		}
		key = fmt.Sprintf("%s#%d", e.Name, n)
	}
	r.dump.Features[key] = e
}

// Fail records the error that aborted the run.
func (r *Recorder) Fail(err error) {
	if err != nil {
		r.dump.Error = err.Error()
	}
}

// Dump returns the recorded values.
func (r *Recorder) Dump() Dump {
	return r.dump
}

// Encode writes the dump as indented JSON.
func (r *Recorder) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.dump); err != nil {
		return fmt.Errorf("error encoding diagnostics: %w", err)
	}
	return nil
}

// WriteFile writes the dump to path.
func (r *Recorder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating diagnostics file: %w", err)
	}
	defer f.Close()

	return r.Encode(f)
}
