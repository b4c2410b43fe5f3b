package runner

import (
	"runtime"
	"strings"
)

// NormalizeCRLF rewrites every LF that is not already preceded by CR as CRLF.
// Applying it twice gives the same text.
func NormalizeCRLF(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + strings.Count(s, "\n"))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' && (i == 0 || s[i-1] != '\r') {
			b.WriteByte('\r')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// NormalizeLF drops any run of CR that directly precedes an LF.
// Lone CRs elsewhere are kept.
func NormalizeLF(s string) string {
	if !strings.Contains(s, "\r\n") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\r' {
			j := i
			for j < len(s) && s[j] == '\r' {
				j++
			}
			if j < len(s) && s[j] == '\n' {
				i = j - 1
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Normalize converts line endings to eol ("\r\n" or "\n")
func Normalize(s, eol string) string {
	if eol == "\r\n" {
		return NormalizeCRLF(s)
	}
	return NormalizeLF(s)
}

// TrimEOL strips trailing CR and LF characters
func TrimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// Quote returns s ready to be placed in a shell command line.
// Plain words are returned unchanged.
func Quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'$`\\&|;<>()*?![]{}#~%") {
		return s
	}
	if runtime.GOOS == "windows" {
		return `"` + s + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
