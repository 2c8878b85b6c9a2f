package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderConvertHelp renders the help text for the convert command with lipgloss styling
func renderConvertHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginTop(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))

	commandStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("14"))

	commentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Examples"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Convert a design next to the document"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("fusion2scad convert bracket.yaml"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Keep the largest fillet per body and nest the booleans"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("fusion2scad convert bracket.yaml --policy max --layout cumulative -o out/bracket.scad"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Render with OpenSCAD and open the result"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("fusion2scad convert bracket.yaml --render bracket.stl --open"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Settings:"))
	b.WriteString("\n")

	flags := []struct {
		flag string
		desc string
	}{
		{"--config FILE", "YAML settings (precision, segments, body_key, ...)"},
		{"--policy", "overwrite: last fillet/chamfer wins, max: largest wins"},
		{"--layout", "flat: operand blocks, cumulative: nest everything before"},
		{"--debug FILE", "Dump raw host values, also written when a run aborts"},
	}

	maxWidth := 0
	for _, f := range flags {
		if len(f.flag) > maxWidth {
			maxWidth = len(f.flag)
		}
	}

	for _, f := range flags {
		padding := strings.Repeat(" ", maxWidth-len(f.flag)+2)
		b.WriteString("  " + flagStyle.Render(f.flag) + padding + commentStyle.Render(f.desc))
		b.WriteString("\n")
	}

	return b.String()
}
