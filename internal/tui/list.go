package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tom26757207-cyber/line-archive/internal/query"
	"github.com/tom26757207-cyber/line-archive/internal/session"
)

// linesPerItem is the number of terminal lines each session occupies.
const linesPerItem = 2

// renderList renders the left panel: the filtered session list.
func (m model) renderList(width, height int) string {
	if len(m.sessions) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No sessions")
	}

	var lines []string
	for i, s := range m.sessions {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatSessionLine(s, width, i == m.cursor, m.filter)...)
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// formatSessionLine formats one session as two lines:
//
//	line 1: [>] date  fileName
//	line 2:     N msgs, K important, participants [analyzed]
//
// With an active filter, line 2 becomes a snippet of the first matching
// message instead.
func formatSessionLine(s *session.Session, width int, selected bool, filter string) []string {
	date := s.CreatedAt.Format("01-02")

	name := s.FileName
	if name == "" {
		name = s.ShortID()
	}
	nameMax := width - 2 - 6 - 2
	if nameMax < 0 {
		nameMax = 0
	}
	if runewidth.StringWidth(name) > nameMax {
		name = runewidth.Truncate(name, nameMax, "…")
	}

	line1 := fmt.Sprintf("%s %s", date, name)
	if selected {
		line1 = styleListSelected.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}
	if s.Analysis != nil {
		line1 += " " + styleAnalyzed.Render("[A]")
	}

	important := 0
	for _, msg := range s.Messages {
		if msg.Important {
			important++
		}
	}

	detail := ""
	if filter != "" {
		if hits := query.Search(s.Messages, filter); len(hits) > 0 {
			detail = query.Snippet(hits[0].Content, filter, 12)
		}
	}
	if detail == "" {
		detail = fmt.Sprintf("%d msgs", len(s.Messages))
		if important > 0 {
			detail += fmt.Sprintf(", %d important", important)
		}
		if len(s.Participants) > 0 {
			detail += ", " + strings.Join(s.Participants, "/")
		}
	}

	detailMax := width - 4
	if detailMax < 0 {
		detailMax = 0
	}
	if runewidth.StringWidth(detail) > detailMax {
		detail = runewidth.Truncate(detail, detailMax, "…")
	}
	style := lipgloss.NewStyle().Foreground(colorDim)
	if important > 0 {
		style = styleImportantCount
	}
	line2 := "    " + style.Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
