package tui

import (
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rusenback/devicemgr/internal/logsink"
	"github.com/rusenback/devicemgr/internal/model"
)

var (
	successPattern = regexp.MustCompile(`(?i)\b(found device|detected|complete|executed)\b`)

	// Pattern highlighting
	ipPattern   = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}(:\d+)?\b`)
	pathPattern = regexp.MustCompile(`(/[\w\-./]+)+`)

	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")) // Dim gray

	errorLogStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")) // Red
	warningLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAB387")) // Orange
	successLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")) // Green
	defaultLogStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CDD6F4")) // Normal

	ipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")) // Yellow
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#CBA6F7")) // Purple
)

// timestampWidth is len("[15:04:05] ")
const timestampWidth = 11

// renderLogLines renders every entry; multi-line messages are indented under
// their timestamp
func renderLogLines(entries []model.LogEntry, width int) string {
	if len(entries) == 0 {
		return dimStyle.Render("Log is empty")
	}
	var s strings.Builder
	for i, e := range entries {
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString(styleLogEntry(e, width))
	}
	return s.String()
}

// styleLogEntry applies styling to a log entry
func styleLogEntry(entry model.LogEntry, maxWidth int) string {
	timestamp := timestampStyle.Render("[" + entry.Timestamp.Format("15:04:05") + "]")

	base := defaultLogStyle
	switch logsink.Classify(entry.Message) {
	case logsink.SeverityError:
		base = errorLogStyle
	case logsink.SeverityWarning:
		base = warningLogStyle
	default:
		if successPattern.MatchString(entry.Message) {
			base = successLogStyle
		}
	}

	avail := maxWidth - timestampWidth
	if avail < 8 {
		avail = 8
	}

	msg := strings.ReplaceAll(entry.Message, "\r", "")
	lines := strings.Split(msg, "\n")

	var s strings.Builder
	for i, line := range lines {
		if i == 0 {
			s.WriteString(timestamp + " ")
		} else {
			s.WriteString("\n" + strings.Repeat(" ", timestampWidth))
		}
		s.WriteString(styleMessage(truncate(line, avail), base))
	}
	return s.String()
}

// styleMessage applies base style and highlights patterns
func styleMessage(message string, baseStyle lipgloss.Style) string {
	if ipPattern.MatchString(message) || strings.Count(message, "/") >= 2 {
		return highlight(message, baseStyle)
	}
	return baseStyle.Render(message)
}

// span is a highlighted byte range of a message
type span struct {
	start, end int
	style      lipgloss.Style
}

// highlight renders message piecewise so highlights survive the base color
func highlight(message string, baseStyle lipgloss.Style) string {
	var spans []span
	for _, loc := range ipPattern.FindAllStringIndex(message, -1) {
		spans = append(spans, span{loc[0], loc[1], ipStyle})
	}
	for _, loc := range pathPattern.FindAllStringIndex(message, -1) {
		// Only highlight if it looks like a real path (has at least 2 segments)
		if strings.Count(message[loc[0]:loc[1]], "/") < 2 || overlaps(spans, loc[0], loc[1]) {
			continue
		}
		spans = append(spans, span{loc[0], loc[1], pathStyle})
	}
	if len(spans) == 0 {
		return baseStyle.Render(message)
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var s strings.Builder
	pos := 0
	for _, sp := range spans {
		if sp.start > pos {
			s.WriteString(baseStyle.Render(message[pos:sp.start]))
		}
		s.WriteString(sp.style.Render(message[sp.start:sp.end]))
		pos = sp.end
	}
	if pos < len(message) {
		s.WriteString(baseStyle.Render(message[pos:]))
	}
	return s.String()
}

func overlaps(spans []span, start, end int) bool {
	for _, sp := range spans {
		if start < sp.end && sp.start < end {
			return true
		}
	}
	return false
}
