package tui

import (
	"fmt"

	"github.com/julianstephens/habitual/internal/analytics"
)

// Item is one habit row in the dashboard list.
type Item struct {
	Entry analytics.Entry
}

func (i Item) Title() string {
	switch {
	case !i.Entry.Stats.Due:
		return "✓ " + i.Entry.Habit.Name
	case i.Entry.Stats.Broken:
		return "✗ " + i.Entry.Habit.Name
	default:
		return "○ " + i.Entry.Habit.Name
	}
}

func (i Item) Description() string {
	s := i.Entry.Stats
	unit := i.Entry.Habit.Periodicity.Unit()
	desc := fmt.Sprintf("%s · streak %s · best %s", i.Entry.Habit.Periodicity, count(s.CurrentStreak, unit), count(s.LongestStreak, unit))
	if s.Broken {
		desc += " · broken"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Habit.Name }

// count renders "1 day" or "3 days" from a plural unit.
func count(n int, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, plural[:len(plural)-1])
	}
	return fmt.Sprintf("%d %s", n, plural)
}
