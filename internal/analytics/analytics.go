// Package analytics folds per-habit streak stats into cross-habit summaries.
// Everything here is a pure function of its input.
package analytics

import (
	"slices"
	"sort"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/streak"
)

// Entry pairs a habit with its stats at a single moment
type Entry struct {
	Habit models.Habit
	Stats streak.Stats
}

// Summary is the cross-habit view used by the overview commands
type Summary struct {
	Total         int
	ByPeriodicity map[period.Periodicity]int
	DueToday      []Entry // daily habits not yet completed today
	DueThisWeek   []Entry // weekly habits not yet completed this week
	Broken        []Entry
	Active        []Entry // current streak > 0, longest running first

	LongestStreak  int
	LongestHolders []Entry // every habit tied at LongestStreak
}

// Due returns all due habits, daily first.
func (s Summary) Due() []Entry {
	due := make([]Entry, 0, len(s.DueToday)+len(s.DueThisWeek))
	due = append(due, s.DueToday...)
	return append(due, s.DueThisWeek...)
}

// Summarize builds a Summary. Entry order is preserved within each list
// except Active, which is ordered by current streak.
func Summarize(entries []Entry) Summary {
	s := Summary{
		Total:         len(entries),
		ByPeriodicity: make(map[period.Periodicity]int, 2),
	}
	for _, p := range period.All() {
		s.ByPeriodicity[p] = 0
	}

	for _, e := range entries {
		s.ByPeriodicity[e.Habit.Periodicity]++

		if e.Stats.Due {
			switch e.Habit.Periodicity {
			case period.Daily:
				s.DueToday = append(s.DueToday, e)
			case period.Weekly:
				s.DueThisWeek = append(s.DueThisWeek, e)
			}
		}
		if e.Stats.Broken {
			s.Broken = append(s.Broken, e)
		}
		if e.Stats.CurrentStreak > 0 {
			s.Active = append(s.Active, e)
		}

		switch {
		case e.Stats.LongestStreak > s.LongestStreak:
			s.LongestStreak = e.Stats.LongestStreak
			s.LongestHolders = []Entry{e}
		case e.Stats.LongestStreak == s.LongestStreak && s.LongestStreak > 0:
			s.LongestHolders = append(s.LongestHolders, e)
		}
	}

	sort.SliceStable(s.Active, func(i, j int) bool {
		return s.Active[i].Stats.CurrentStreak > s.Active[j].Stats.CurrentStreak
	})

	return s
}

// FilterByPeriodicity returns the entries whose habit has one of the given
// periodicities, keeping their order. With no periodicities it returns none.
func FilterByPeriodicity(entries []Entry, ps ...period.Periodicity) []Entry {
	var out []Entry
	for _, e := range entries {
		if slices.Contains(ps, e.Habit.Periodicity) {
			out = append(out, e)
		}
	}
	return out
}
