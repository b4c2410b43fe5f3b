// internal/tui/views/device.go
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rusenback/devicemgr/internal/model"
)

var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#A6E3A1"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#CDD6F4"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#CBA6F7"))

	progressBarStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#A6E3A1"))
)

// RenderDevice renderöi valitun laitteen tiedot
func RenderDevice(dev *model.Device, models []model.KnownModel) string {
	if dev == nil {
		return detailLabelStyle.Render("No device selected")
	}

	var s strings.Builder

	// Otsikko
	title := dev.Serial
	if dev.Marketing != "" {
		title = dev.Marketing
	}
	s.WriteString(detailTitleStyle.Render("📱 " + title))
	s.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		s.WriteString(detailLabelStyle.Render(fmt.Sprintf("%-10s", label)))
		s.WriteString(detailValueStyle.Render(value))
		s.WriteString("\n")
	}

	row("Mode:", dev.Transport.String())
	row("Serial:", dev.Serial)
	row("Model:", dev.Model)
	if codename := codenameOf(dev, models); codename != "" {
		row("Codename:", codename)
	}

	return s.String()
}

func codenameOf(dev *model.Device, models []model.KnownModel) string {
	if dev.Marketing == "" {
		return ""
	}
	for _, m := range models {
		if m.Name == dev.Marketing {
			return m.Codename
		}
	}
	return ""
}

// RenderOutcomes näyttää onnistuneiden komentojen osuuden
func RenderOutcomes(runs []model.CommandRun, width int) string {
	if len(runs) == 0 {
		return ""
	}
	ok := 0
	for _, r := range runs {
		if r.Outcome == "ok" || r.Outcome == "detached" {
			ok++
		}
	}
	bar := renderProgressBar(float64(ok), float64(len(runs)), width)
	return fmt.Sprintf("%s %d/%d ok", bar, ok, len(runs))
}

// renderProgressBar luo ASCII progress barin
func renderProgressBar(value, max float64, width int) string {
	if max == 0 {
		max = 1
	}
	if width < 1 {
		width = 1
	}

	percent := value / max
	if percent > 1 {
		percent = 1
	}
	if percent < 0 {
		percent = 0
	}

	filled := int(percent * float64(width))
	empty := width - filled

	bar := "[" + strings.Repeat("█", filled) + strings.Repeat("░", empty) + "]"
	return progressBarStyle.Render(bar)
}

// FormatBytes formatoi tavut luettavaan muotoon
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
