package scad

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Script is the content of one generated file.
type Script struct {
	Design     string
	Parameters []string
	Geometry   []string
	Warnings   []string
}

// Write renders the script to w. Nothing time dependent is written so the
// same design always yields the same bytes.
func (e *Emitter) Write(w io.Writer, s Script) error {
	bw := bufio.NewWriter(w)

	var lines []string
	lines = append(lines, fmt.Sprintf("// Generated by fusion2scad from %q", s.Design))
	if e.opts.Include != "" {
		lines = append(lines, "include <"+e.opts.Include+">")
	}
	if e.opts.Segments > 0 {
		lines = append(lines, "", fmt.Sprintf("$fn = %d;", e.opts.Segments))
	}

	if len(s.Parameters) > 0 {
		lines = append(lines, "", "// Parameters")
		lines = append(lines, s.Parameters...)
	}

	lines = append(lines, "", "// Geometry")
	lines = append(lines, s.Geometry...)

	if e.opts.AnnotateWarnings && len(s.Warnings) > 0 {
		lines = append(lines, "")
		for _, w := range s.Warnings {
			lines = append(lines, "// warning: "+strings.ReplaceAll(w, "\n", " "))
		}
	}

	for _, l := range lines {
		if _, err := bw.WriteString(l + "\n"); err != nil {
			return fmt.Errorf("error writing script: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("error writing script: %w", err)
	}
	return nil
}

// Render returns the script as a string.
func (e *Emitter) Render(s Script) string {
	var b strings.Builder
	_ = e.Write(&b, s)
	return b.String()
}
