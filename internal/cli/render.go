package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/streak"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	brokenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Title renders a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// StatusLabel is "done", "due" or "broken" for the current period.
func StatusLabel(s streak.Stats) string {
	switch {
	case s.Broken:
		return brokenStyle.Render("broken")
	case s.Due:
		return dueStyle.Render("due")
	default:
		return doneStyle.Render("done")
	}
}

// LastCompleted formats the latest completion in loc, or "never".
func LastCompleted(s streak.Stats, loc *time.Location) string {
	if s.LastCompletedAt == nil {
		return mutedStyle.Render("never")
	}
	return s.LastCompletedAt.In(loc).Format(constants.DateTimeFormat)
}

// Streak renders "3 days" or "1 week".
func Streak(n int, e analytics.Entry) string {
	unit := e.Habit.Periodicity.Unit()
	if n == 1 {
		unit = unit[:len(unit)-1]
	}
	return fmt.Sprintf("%d %s", n, unit)
}

// RenderEntries writes one table row per habit.
func RenderEntries(w io.Writer, entries []analytics.Entry, loc *time.Location) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("HABIT", "EVERY", "STREAK", "LONGEST", "STATUS", "LAST COMPLETED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, e := range entries {
		t.Row(
			e.Habit.Name,
			e.Habit.Periodicity.String(),
			Streak(e.Stats.CurrentStreak, e),
			Streak(e.Stats.LongestStreak, e),
			StatusLabel(e.Stats),
			LastCompleted(e.Stats, loc),
		)
	}
	fmt.Fprintln(w, t.Render())
}

// RenderNames writes a bulleted list of habit names with a detail column.
func RenderNames(w io.Writer, entries []analytics.Entry, detail func(analytics.Entry) string) {
	for _, e := range entries {
		if detail == nil {
			fmt.Fprintf(w, "  • %s\n", e.Habit.Name)
			continue
		}
		fmt.Fprintf(w, "  • %s %s\n", e.Habit.Name, mutedStyle.Render(detail(e)))
	}
}
