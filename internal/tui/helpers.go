package tui

import "strings"

// truncate shortens a string to a maximum number of runes
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// layout returns the grid sizes: 60% left, 40% top
func (m Model) layout() (leftWidth, rightWidth, topHeight, bottomHeight int) {
	leftWidth = int(float64(m.width) * 0.6)
	rightWidth = m.width - leftWidth

	body := m.height - m.footerHeight()
	topHeight = int(float64(body) * 0.4)
	if topHeight < 12 {
		topHeight = 12
	}
	bottomHeight = body - topHeight
	if bottomHeight < 8 {
		bottomHeight = 8
	}
	return
}

func (m Model) footerHeight() int {
	// status line plus help
	return 1 + strings.Count(m.help.View(m.keys), "\n") + 1
}

// resizeLog fits the log viewport into the bottom-left panel.
// Must match renderLogPanel: border, padding, title.
func (m *Model) resizeLog() {
	leftWidth, _, _, bottomHeight := m.layout()
	m.logView.Width = max(leftWidth-8, 10)
	m.logView.Height = max(bottomHeight-8, 3)
	m.refreshLog()
}

// refreshLog re-renders the log and follows the newest entry
func (m *Model) refreshLog() {
	m.logView.SetContent(renderLogLines(m.logs.entries, m.logView.Width))
	m.logView.GotoBottom()
}
