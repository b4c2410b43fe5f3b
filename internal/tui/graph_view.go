package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rusenback/devicemgr/internal/model"
	"github.com/rusenback/devicemgr/internal/tui/views"
)

var (
	graphTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B4BEFE"))
	graphAxisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	durationStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))

	outcomeOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	outcomeWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387"))
	outcomeFailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

// renderSparkline creates a compact sparkline
func renderSparkline(data []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(data) == 0 {
		return strings.Repeat("▁", width)
	}

	// Take last 'width' points
	start := 0
	if len(data) > width {
		start = len(data) - width
	}
	displayData := data[start:]

	// Find min and max
	min, max := math.MaxFloat64, 0.0
	for _, v := range displayData {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if max == min {
		min = math.Max(0, max-10)
		max = max + 10
	}

	dataRange := max - min
	if dataRange == 0 {
		dataRange = 1
	}

	chars := []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	var result strings.Builder

	for _, value := range displayData {
		normalized := (value - min) / dataRange
		charIndex := int(normalized * float64(len(chars)-1))
		if charIndex >= len(chars) {
			charIndex = len(chars) - 1
		}
		if charIndex < 0 {
			charIndex = 0
		}
		result.WriteString(chars[charIndex])
	}

	// Pad if needed
	for i := len(displayData); i < width; i++ {
		result.WriteString("▁")
	}

	return result.String()
}

// durations returns run durations in seconds, oldest first. runs are newest first.
func durations(runs []model.CommandRun) []float64 {
	out := make([]float64, len(runs))
	for i, r := range runs {
		out[len(runs)-1-i] = r.Duration.Seconds()
	}
	return out
}

// renderHistory renders the journal panel content
func renderHistory(runs []model.CommandRun, width, height int) string {
	var s strings.Builder
	s.WriteString(graphTitleStyle.Render("📈 Command History") + "\n\n")

	if len(runs) == 0 {
		s.WriteString(graphAxisStyle.Render("No commands run yet..."))
		return s.String()
	}

	data := durations(runs)
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	header := fmt.Sprintf("Duration: %.2fs (min: %.2fs, max: %.2fs)", data[len(data)-1], lo, hi)
	s.WriteString(durationStyle.Render(header) + "\n")
	s.WriteString(durationStyle.Render(renderSparkline(data, width)) + "\n")
	s.WriteString(graphAxisStyle.Render(fmt.Sprintf("◄─ last %d commands", len(runs))) + "\n")
	s.WriteString(views.RenderOutcomes(runs, max(width-12, 4)) + "\n\n")

	rows := height - 7
	for i, r := range runs {
		if i >= rows {
			break
		}
		s.WriteString(renderRun(r, width) + "\n")
	}
	return s.String()
}

// renderRun formats one journal row
func renderRun(r model.CommandRun, width int) string {
	var style lipgloss.Style
	switch r.Outcome {
	case "ok", "detached":
		style = outcomeOKStyle
	case "exit", "cancelled":
		style = outcomeWarnStyle
	default:
		style = outcomeFailStyle
	}

	prefix := fmt.Sprintf("%s %-9s %6s %6s ",
		r.Started.Format("15:04:05"),
		r.Outcome,
		r.Duration.Round(10*time.Millisecond),
		views.FormatBytes(r.Bytes))
	cmd := truncate(r.Command, max(width-len(prefix), 8))
	return style.Render(prefix) + cmd
}
