package tui

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitual/internal/period"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("habitual"))
	b.WriteString("\n")
	b.WriteString(summaryStyle.Render(m.summaryLine()))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString("Loading habits...")
	case len(m.list.Items()) == 0:
		b.WriteString("No habits yet. Add one with 'habitual add'.")
	default:
		b.WriteString(m.list.View())
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(dangerStyle.Render("Error: " + m.err.Error()))
	} else if m.status != "" {
		b.WriteString(successStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}

func (m Model) summaryLine() string {
	s := m.summary
	line := fmt.Sprintf("%d habits (%d daily, %d weekly) · %d due · %d broken",
		s.Total, s.ByPeriodicity[period.Daily], s.ByPeriodicity[period.Weekly], len(s.Due()), len(s.Broken))
	if s.LongestStreak > 0 {
		line += fmt.Sprintf(" · longest streak %d", s.LongestStreak)
	}
	return line
}
