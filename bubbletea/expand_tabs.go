package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tabWidth is the distance between tab stops.
const tabWidth = 8

// ExpandTabs replaces tab characters with spaces up to the next tab stop.
// Columns restart at every newline, so pasted case files and backend
// reports keep their alignment inside the results panel.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var sb strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			next := (col/tabWidth + 1) * tabWidth
			sb.WriteString(strings.Repeat(" ", next-col))
			col = next
		case '\n':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col += lipgloss.Width(string(r))
		}
	}
	return sb.String()
}
