package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan = lipgloss.Color("36")  // Teal - titles
	colorGray = lipgloss.Color("245") // Gray - keys
	colorDim  = lipgloss.Color("240") // Dim gray - muted text
)

// labelPalette colors grid cells by label, cycling for larger label spaces.
var labelPalette = []lipgloss.Color{
	lipgloss.Color("36"),  // teal
	lipgloss.Color("220"), // amber
	lipgloss.Color("167"), // soft red
	lipgloss.Color("75"),  // light blue
	lipgloss.Color("35"),  // green
	lipgloss.Color("213"), // pink
	lipgloss.Color("255"), // white
	lipgloss.Color("130"), // brown
}

var (
	// StyleTitle for panel headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleKey   = lipgloss.NewStyle().Foreground(colorGray)
	stylePanel = lipgloss.NewStyle().PaddingRight(3)
)

const cellGlyph = "██"

// renderGrid draws one colored cell per label, one line per row.
func renderGrid(rows [][]int) string {
	lines := make([]string, len(rows))
	for y, row := range rows {
		var b strings.Builder
		for _, l := range row {
			b.WriteString(lipgloss.NewStyle().Foreground(labelPalette[l%len(labelPalette)]).Render(cellGlyph))
		}
		lines[y] = b.String()
	}

	return strings.Join(lines, "\n")
}

// panel is one titled grid of a side-by-side rendering.
type panel struct {
	title string
	rows  [][]int
}

// renderPanels places titled grids next to each other.
func renderPanels(panels ...panel) string {
	blocks := make([]string, len(panels))
	for i, p := range panels {
		blocks[i] = stylePanel.Render(lipgloss.JoinVertical(lipgloss.Left, StyleTitle.Render(p.title), renderGrid(p.rows)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// renderSummary prints aligned "key  value" lines.
func renderSummary(pairs ...[2]string) string {
	width := 0
	for _, kv := range pairs {
		if len(kv[0]) > width {
			width = len(kv[0])
		}
	}
	lines := make([]string, len(pairs))
	for i, kv := range pairs {
		lines[i] = styleKey.Render(fmt.Sprintf("%-*s", width, kv[0])) + "  " + kv[1]
	}

	return strings.Join(lines, "\n")
}

// renderLabeling prints a non-grid labeling compactly.
func renderLabeling(labels []int) string {
	const maxShown = 64
	if len(labels) <= maxShown {
		return fmt.Sprint(labels)
	}

	return fmt.Sprint(labels[:maxShown]) + StyleDim.Render(fmt.Sprintf(" … %d more", len(labels)-maxShown))
}
