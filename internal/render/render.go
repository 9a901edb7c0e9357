// Package render turns a session into styled terminal output: the day-
// grouped message timeline and the analysis report.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tom26757207-cyber/line-archive/internal/parse"
	"github.com/tom26757207-cyber/line-archive/internal/query"
	"github.com/tom26757207-cyber/line-archive/internal/session"
)

var (
	styleDate = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	styleSender = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	styleTime = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	styleImportant = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true)

	styleTag = lipgloss.NewStyle().
			Foreground(lipgloss.Color("13"))

	styleHit = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	styleRiskLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleRiskMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleRiskHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	styleHeading = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	styleDim = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Options controls timeline rendering.
type Options struct {
	Query     string // active search term, highlighted in content
	Tag       string // active tag filter
	Important bool   // show only important messages
	Plain     bool   // no styling, for piped output
}

// Timeline renders the session's messages grouped by date, after applying
// the option filters conjunctively.
func Timeline(s *session.Session, opts Options) string {
	msgs := query.Filter(s.Messages, opts.Query, opts.Tag)
	if opts.Important {
		msgs = query.FilterImportant(msgs)
	}
	if len(msgs) == 0 {
		return "(no messages)\n"
	}

	var b strings.Builder
	for gi, g := range query.GroupByDate(msgs) {
		if gi > 0 {
			b.WriteString("\n")
		}
		if opts.Plain {
			fmt.Fprintf(&b, "=== %s ===\n", g.Date)
		} else {
			b.WriteString(styleDate.Render("=== "+g.Date+" ===") + "\n")
		}
		for _, m := range g.Messages {
			b.WriteString(renderMessage(m, opts))
		}
	}
	return b.String()
}

func renderMessage(m parse.Message, opts Options) string {
	content := m.Content
	if opts.Query != "" {
		content = highlight(content, opts.Query, opts.Plain)
	}

	if opts.Plain {
		marks := ""
		if m.Important {
			marks = " !"
		}
		if len(m.Tags) > 0 {
			marks += " [" + strings.Join(m.Tags, ",") + "]"
		}
		return fmt.Sprintf("%s %s: %s%s\n", m.Time, m.Sender, content, marks)
	}

	if m.IsSystem {
		return styleSystem.Render(fmt.Sprintf("%s %s", m.Time, content)) + "\n"
	}

	line := styleTime.Render(m.Time) + " " + styleSender.Render(m.Sender) + ": " + content
	if m.Important {
		line += " " + styleImportant.Render("!")
	}
	for _, t := range m.Tags {
		line += " " + styleTag.Render("#"+t)
	}
	return line + "\n"
}

// highlight wraps case-insensitive matches of q in content. Offsets come
// from query.IndexFold, computed against the original text, so matches on
// case-length-changing runes stay rune-aligned.
func highlight(text, q string, plain bool) string {
	if q == "" {
		return text
	}

	var b strings.Builder
	rest := text
	for {
		start, end := query.IndexFold(rest, q)
		if start < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:start])
		match := rest[start:end]
		if plain {
			b.WriteString(">>>" + match + "<<<")
		} else {
			b.WriteString(styleHit.Render(match))
		}
		rest = rest[end:]
	}
	return b.String()
}

// Report renders the merged analysis, or a hint when none is attached.
func Report(s *session.Session) string {
	a := s.Analysis
	if a == nil {
		return "(no analysis attached — run: linearch analyze " + s.ID + ")\n"
	}

	var b strings.Builder
	b.WriteString(styleHeading.Render("摘要") + "\n" + a.Summary + "\n\n")
	fmt.Fprintf(&b, "%s %s\n", styleHeading.Render("情緒:"), a.Sentiment)
	if len(a.Topics) > 0 {
		fmt.Fprintf(&b, "%s %s\n", styleHeading.Render("話題:"), strings.Join(a.Topics, "、"))
	}
	if a.Dynamics != "" {
		b.WriteString("\n" + styleHeading.Render("互動關係") + "\n" + a.Dynamics + "\n")
	}

	fmt.Fprintf(&b, "\n%s payment=%d service=%d schedule=%d issue=%d\n",
		styleHeading.Render("統計:"),
		a.Stats.PaymentCount, a.Stats.ServiceCount,
		a.Stats.ScheduleCount, a.Stats.IssueCount)

	for i, ev := range a.Events {
		fmt.Fprintf(&b, "\n%s %s %s\n",
			styleHeading.Render(fmt.Sprintf("事件 %d:", i+1)),
			ev.Title,
			renderRisk(ev.RiskLevel))
		if ev.DateRange != "" {
			b.WriteString(styleDim.Render("  期間: "+ev.DateRange) + "\n")
		}
		b.WriteString("  " + ev.Summary + "\n")
		if ev.RiskAssessment != "" {
			b.WriteString("  風險評估: " + ev.RiskAssessment + "\n")
		}
		if ev.Remarks != "" {
			b.WriteString("  備註: " + ev.Remarks + "\n")
		}
		for _, ex := range ev.FamilyExcerpts {
			b.WriteString(styleDim.Render("  家屬: 「"+ex+"」") + "\n")
		}
		for _, ex := range ev.StaffExcerpts {
			b.WriteString(styleDim.Render("  服務方: 「"+ex+"」") + "\n")
		}
		if len(ev.RelatedMessageIDs) > 0 {
			b.WriteString(styleDim.Render("  相關訊息: "+strings.Join(ev.RelatedMessageIDs, ", ")) + "\n")
		}
		if len(ev.UnresolvedMessageIDs) > 0 {
			b.WriteString(styleDim.Render("  未對應訊息: "+strings.Join(ev.UnresolvedMessageIDs, ", ")) + "\n")
		}
	}
	return b.String()
}

func renderRisk(r session.RiskLevel) string {
	switch r {
	case session.RiskHigh:
		return styleRiskHigh.Render("[high]")
	case session.RiskMedium:
		return styleRiskMedium.Render("[medium]")
	default:
		return styleRiskLow.Render("[low]")
	}
}

// SessionLine formats one session as a fixed-width row for list output.
func SessionLine(s *session.Session, width int) string {
	name := s.FileName
	if name == "" {
		name = "-"
	}
	analyzed := " "
	if s.Analysis != nil {
		analyzed = "A"
	}
	line := fmt.Sprintf("%s  %s  %s  %4d msgs  %s",
		s.ShortID(),
		s.CreatedAt.Format("2006-01-02 15:04"),
		analyzed,
		len(s.Messages),
		name)
	if width > 0 && runewidth.StringWidth(line) > width {
		line = runewidth.Truncate(line, width, "…")
	}
	return line
}
