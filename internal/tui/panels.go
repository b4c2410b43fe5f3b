package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rusenback/devicemgr/internal/device"
	"github.com/rusenback/devicemgr/internal/model"
	"github.com/rusenback/devicemgr/internal/tui/views"
)

// renderDevicePanel renders the device list panel
func (m Model) renderDevicePanel(width, height int) string {
	content := m.renderDevicePanelContent(width, height)
	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(content)
}

// renderDevicePanelContent renders the content of the device list panel
func (m Model) renderDevicePanelContent(width, height int) string {
	var s strings.Builder

	title := titleStyle.Render("📱 Devices")
	if m.scanning {
		title += " " + m.spinner.View() + dimStyle.Render(" scanning...")
	}
	if m.autoDetect {
		title += dimStyle.Render(" [Auto-detect: ON]")
	}
	s.WriteString(title + "\n\n")

	if m.report.Placeholder {
		s.WriteString(dimStyle.Render(device.PlaceholderText) + "\n")
		s.WriteString(dimStyle.Render("Press d to detect devices") + "\n")
		return s.String()
	}

	colWidth := width - 10
	modeWidth := 10
	serialWidth := int(float64(colWidth) * 0.35)
	modelWidth := colWidth - modeWidth - serialWidth

	header := fmt.Sprintf("%-*s %-*s %-*s",
		modeWidth, "MODE",
		serialWidth, "SERIAL",
		modelWidth, "MODEL")
	s.WriteString(headerStyle.Render(header) + "\n")

	// Reserve space for title, header and the detail block
	maxRows := height - 14
	if maxRows < 1 {
		maxRows = 1
	}

	for i, dev := range m.report.Devices {
		if i >= maxRows {
			s.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d more", len(m.report.Devices)-i)) + "\n")
			break
		}

		name := dev.Model
		if dev.Marketing != "" {
			name = dev.Marketing
		}
		line := fmt.Sprintf("%-*s %-*s %-*s",
			modeWidth, dev.Transport.String(),
			serialWidth, truncate(dev.Serial, serialWidth),
			modelWidth, truncate(name, modelWidth))

		if i == m.cursor {
			s.WriteString(selectedStyle.Render("> " + line))
		} else {
			s.WriteString("  " + transportStyle(dev.Transport).Render(line))
		}
		s.WriteString("\n")
	}

	if dev, ok := m.selected(); ok {
		s.WriteString("\n" + views.RenderDevice(&dev, m.devices.Models()))
	}

	return s.String()
}

// renderActionPanel renders the quick command selector and the action keys
func (m Model) renderActionPanel(width, height int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("⚡ Actions") + "\n\n")

	quick := device.QuickCommands[m.quick]
	s.WriteString(dimStyle.Render(fmt.Sprintf("Quick command %d/%d", m.quick+1, len(device.QuickCommands))) + "\n")
	s.WriteString("◄ " + selectedStyle.Render(truncate(quick, width-14)) + " ►\n\n")

	s.WriteString(buttonStyle.Render("x Execute") + " " + buttonStyle.Render("s Shell") + " " +
		buttonStyle.Render("o Firmware") + "\n\n")
	s.WriteString(buttonStyle.Render("r Recovery") + " " + buttonStyle.Render("D Download") + " " +
		buttonStyle.Render("b Bootloader") + "\n\n")
	s.WriteString(dangerButtonStyle.Render("u Unlock") + " " + dangerButtonStyle.Render("l Lock") + " " +
		dangerButtonStyle.Render("f FRP") + "\n\n")

	set := m.tools
	s.WriteString(toolStatus("adb", set.ADB) + "\n")
	s.WriteString(toolStatus("fastboot", set.Fastboot) + "\n")
	if m.busy > 0 {
		s.WriteString(dimStyle.Render(fmt.Sprintf("\n%d command(s) running", m.busy)) + "\n")
	}

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderLogPanel renders the log panel
func (m Model) renderLogPanel(width, height int) string {
	var s strings.Builder
	title := titleStyle.Render("📋 Log")
	if !m.logView.AtBottom() {
		title += dimStyle.Render(fmt.Sprintf(" [%3.f%%] end: newest", m.logView.ScrollPercent()*100))
	}
	s.WriteString(title + "\n\n")
	s.WriteString(m.logView.View())

	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(s.String())
}

// renderHistoryPanel renders the command journal panel
func (m Model) renderHistoryPanel(width, height int) string {
	return panelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(renderHistory(m.runs, width-8, height-4))
}

func toolStatus(name, path string) string {
	if path == "" {
		return warningLogStyle.Render("✗ " + name + " not found")
	}
	return adbStyle.Render("✓ "+name) + dimStyle.Render(" "+truncate(path, 40))
}

func transportStyle(t model.Transport) lipgloss.Style {
	if t == model.TransportFastboot {
		return fastbootStyle
	}
	return adbStyle
}
