package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4") // Purple
	secondaryColor = lipgloss.Color("#00D9FF") // Cyan
	successColor   = lipgloss.Color("#04B575") // Green
	errorColor     = lipgloss.Color("#FF5F87") // Pink/Red
	warningColor   = lipgloss.Color("#FFAF00") // Orange
	mutedColor     = lipgloss.Color("#626262") // Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1).
			MarginBottom(1).
			PaddingLeft(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			MarginTop(1).
			PaddingLeft(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	featureStyle = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(mutedColor)

	checkmark = lipgloss.NewStyle().Foreground(successColor).Bold(true).SetString("✓")
	cross     = lipgloss.NewStyle().Foreground(errorColor).Bold(true).SetString("✗")
	arrow     = lipgloss.NewStyle().Foreground(secondaryColor).SetString("→")
	dot       = lipgloss.NewStyle().Foreground(mutedColor).SetString("•")

	stepStyle = lipgloss.NewStyle().PaddingLeft(2)
	itemStyle = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("#FAFAFA"))
)

// plain is set by --progress=plain
var plain bool

// SetPlain switches to step by step output without colors.
func SetPlain(v bool) {
	plain = v
}

// IsVerbose reports whether step by step output is enabled: with
// --progress=plain or when running in CI.
func IsVerbose() bool {
	return plain || os.Getenv("CI") != ""
}

// PrintTitle prints a major title (for app name or major sections)
func PrintTitle(title string) {
	fmt.Println(titleStyle.Render("╭─ " + title + " ─╮"))
}

// PrintHeader prints a section header
func PrintHeader(title string) {
	fmt.Println(headerStyle.Render("\n▸ " + title))
}

// PrintStep prints a step with indentation
func PrintStep(step string) {
	fmt.Println(stepStyle.Render(arrow.String() + " " + step))
}

// PrintItem prints an item in a list
func PrintItem(item string) {
	fmt.Println(itemStyle.Render(dot.String() + " " + item))
}

// PrintList prints a titled list of items
func PrintList(title string, items []string) {
	fmt.Println(stepStyle.Render(title + ":"))
	for _, item := range items {
		PrintItem(item)
	}
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(stepStyle.Render(checkmark.String() + " " + successStyle.Render(message)))
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Println(stepStyle.Render(cross.String() + " " + errorStyle.Render(message)))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println(stepStyle.Render("⚠ " + warningStyle.Render(message)))
}

// PrintFeatureWarning prints a warning raised while converting a feature
func PrintFeatureWarning(feature string, err error) {
	fmt.Println(stepStyle.Render("⚠ " + featureStyle.Render(feature) + " " + warningStyle.Render(err.Error())))
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Println(stepStyle.Render(infoStyle.Render(message)))
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println(infoStyle.Render(strings.Repeat("─", 45)))
}

// PrintKeyValue prints a key-value pair with nice formatting
func PrintKeyValue(key, value string) {
	fmt.Println(stepStyle.Render(keyStyle.Render(key+":") + " " + value))
}

// Table prints fixed width columns. Cells wider than their column are
// truncated with "...".
type Table struct {
	widths []int
}

// NewTable creates a table with the given column widths
func NewTable(widths ...int) *Table {
	return &Table{widths: widths}
}

// Header prints the header row followed by a separator line
func (t *Table) Header(headers ...string) {
	fmt.Println(stepStyle.Render(keyStyle.Render(t.Format(headers...))))

	parts := make([]string, 0, len(t.widths))
	for i := range headers {
		if i >= len(t.widths) {
			break
		}
		parts = append(parts, strings.Repeat("─", t.widths[i]))
	}
	fmt.Println(stepStyle.Render(infoStyle.Render(strings.Join(parts, "─┼─"))))
}

// Row prints one row
func (t *Table) Row(columns ...string) {
	if len(columns) == 0 {
		return
	}
	fmt.Println(stepStyle.Render(t.Format(columns...)))
}

// Format pads or truncates every column to its width. Columns beyond the
// configured widths are dropped.
func (t *Table) Format(columns ...string) string {
	cells := make([]string, 0, len(columns))
	for i, col := range columns {
		if i >= len(t.widths) {
			break
		}
		cells = append(cells, fit(col, t.widths[i]))
	}
	return strings.Join(cells, " │ ")
}

// fit pads or truncates s to width display cells
func fit(s string, width int) string {
	w := lipgloss.Width(s)
	if w <= width {
		return s + strings.Repeat(" ", width-w)
	}

	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	out := string(runes) + "..."
	return out + strings.Repeat(" ", width-lipgloss.Width(out))
}
