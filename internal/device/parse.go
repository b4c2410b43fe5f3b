package device

import (
	"strings"
	"unicode"
)

const (
	adbHeader      = "List of devices attached"
	adbMarker      = "device"
	fastbootMarker = "fastboot"
)

// ParseADBDevices extracts serials from `adb devices -l` output. A line is a
// device when one of its words after the first is exactly "device".
func ParseADBDevices(out string) []string {
	var serials []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.Contains(line, adbHeader) {
			continue
		}
		idx := tokenIndex(line, adbMarker)
		if idx < 0 {
			continue
		}
		serial := strings.TrimSpace(line[:idx])
		if serial == "" {
			continue
		}
		serials = append(serials, serial)
	}
	return serials
}

// ParseFastbootDevices extracts serials from `fastboot devices` output: the
// part before the first tab of every line mentioning fastboot.
func ParseFastbootDevices(out string) []string {
	var serials []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.Contains(line, fastbootMarker) {
			continue
		}
		left, _, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		serial := strings.TrimSpace(left)
		if serial == "" {
			continue
		}
		serials = append(serials, serial)
	}
	return serials
}

// tokenIndex returns the byte offset of the first whitespace-delimited word
// equal to token, or -1
func tokenIndex(line, token string) int {
	i := 0
	for i < len(line) {
		for i < len(line) && unicode.IsSpace(rune(line[i])) {
			i++
		}
		start := i
		for i < len(line) && !unicode.IsSpace(rune(line[i])) {
			i++
		}
		if start < i && line[start:i] == token {
			return start
		}
	}
	return -1
}
