package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rusenback/devicemgr/internal/device"
)

// View renders the TUI interface
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	switch {
	case m.picking:
		return m.renderPicker()
	case m.confirm != nil:
		return m.renderConfirm(*m.confirm)
	}
	return m.renderFourPanelView()
}

// renderFourPanelView renders the four-panel grid layout
func (m Model) renderFourPanelView() string {
	leftWidth, rightWidth, topHeight, bottomHeight := m.layout()

	topLeftPanel := m.renderDevicePanel(leftWidth, topHeight)
	topRightPanel := m.renderActionPanel(rightWidth, topHeight)
	bottomLeftPanel := m.renderLogPanel(leftWidth, bottomHeight)
	bottomRightPanel := m.renderHistoryPanel(rightWidth, bottomHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, topLeftPanel, topRightPanel)
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top, bottomLeftPanel, bottomRightPanel)

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow, m.renderFooter())
}

func (m Model) renderFooter() string {
	status := m.message
	if status == "" {
		status = " "
	}
	return dimStyle.Render(status) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// renderConfirm shows the warning for a destructive action
func (m Model) renderConfirm(action device.Action) string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(string(action)) + "\n\n")
	s.WriteString(action.Warning() + "\n\n")
	s.WriteString(dangerButtonStyle.Render("y Yes") + "  " + buttonStyle.Render("n No"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		confirmStyle.Render(s.String()))
}

// renderPicker shows the firmware file picker
func (m Model) renderPicker() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("📦 Select firmware ("+strings.Join(device.FirmwareExtensions, ", ")+")") + "\n")
	s.WriteString(dimStyle.Render(m.picker.CurrentDirectory) + "\n\n")
	s.WriteString(m.picker.View() + "\n\n")
	if m.message != "" {
		s.WriteString(warningLogStyle.Render(m.message) + "\n")
	}
	s.WriteString(helpStyle.Render("enter: select  ←/h: up a directory  q: close"))

	return panelStyle.
		Width(max(m.width-4, 20)).
		Render(s.String())
}
