package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// formatNum renders n with comma thousands separators.
func formatNum(n int) string {
	return humanize.Comma(int64(n))
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// orDash returns s, or an em dash placeholder when s is blank.
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

// singleLine collapses newlines and runs of whitespace in descriptions.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
