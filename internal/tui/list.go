package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/moodmelody/melodystats/internal/search"
)

// linesPerItem is the number of terminal lines each result occupies.
const linesPerItem = 2

// renderList renders the left panel with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.results) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No files")
	}

	var lines []string
	for i, r := range m.results {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatResultLine(r, width, i == m.cursor)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// formatResultLine formats a single file as two lines:
//
//	line 1: [>] ext  lines  path
//	line 2:    snippet or directory (dimmed)
func formatResultLine(r search.Result, width int, selected bool) []string {
	ext := styleExt.Render(r.Ext)
	lines := styleLines.Render(fmt.Sprint(r.Lines))

	name := r.Rel
	dir := ""
	if i := strings.LastIndex(r.Rel, "/"); i >= 0 {
		name = r.Rel[i+1:]
		dir = r.Rel[:i]
	}
	nameMax := max(width-2-6-7-2, 0) // prefix + ext + lines + padding
	if runewidth.StringWidth(name) > nameMax {
		name = runewidth.Truncate(name, nameMax, "…")
	}

	line1 := fmt.Sprintf("%s%s %s", ext, lines, name)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	detail := dir
	if r.Snippet != "" {
		detail = fmt.Sprintf("%d: %s", r.LineNum, r.Snippet)
		detail = strings.ReplaceAll(detail, ">>>", "")
		detail = strings.ReplaceAll(detail, "<<<", "")
	}
	detail = strings.ReplaceAll(detail, "\t", " ")
	detailMax := max(width-4, 0)
	if runewidth.StringWidth(detail) > detailMax {
		detail = runewidth.Truncate(detail, detailMax, "")
	}
	line2 := "    " + styleSnippet.Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := max(listHeight/linesPerItem, 1)
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
