// Package fixtures builds the predefined sample habits used by the seed
// command, with four weeks of history ending at a given moment.
package fixtures

import (
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

const historyDays = 28

type sample struct {
	name        string
	description string
	periodicity period.Periodicity
	history     func(now time.Time) []time.Time
}

var samples = []sample{
	{"Read", "Read one chapter", period.Daily, daysAgo(0, 1, 2, 4, 5, 7, 8, 9, 11, 12, 13, 15, 16, 17, 19, 20, 22, 23, 24, 26, 27)},
	// one completion per week on a different weekday each week
	{"Stretch", "Stretch for ten minutes", period.Daily, weekdays([]int{0, 1, 2, 3}, []time.Weekday{time.Friday, time.Tuesday, time.Sunday, time.Wednesday})},
	// perfect until the last three days
	{"Take Vitamins", "Take D3 and B12 vitamins", period.Daily, dayRange(3, historyDays-1)},
	// misses the week before last
	{"Call Family", "Call grandparents", period.Weekly, weekdays([]int{0, 1, 3}, []time.Weekday{time.Sunday, time.Thursday, time.Tuesday})},
	{"Vacuum", "Vacuum the apartment", period.Weekly, daysAgo(0, 3, 6, 10, 14, 17, 21, 24, 27)},
}

// Habits returns the sample habits as they would look at now. IDs are left
// empty for the caller to assign. Completions that would fall after now are
// dropped, and repeats inside one period collapse into the first.
func Habits(now time.Time, cal period.Calendar) []models.Habit {
	now = now.In(cal.Location())
	created := startOfDay(now.AddDate(0, 0, -historyDays))

	habits := make([]models.Habit, 0, len(samples))
	for i, s := range samples {
		// keep creation order stable for listing
		h, err := models.NewHabit("", s.name, s.description, s.periodicity, created.Add(time.Duration(i)*time.Second))
		if err != nil {
			panic(err)
		}

		history := s.history(now)
		sort.Slice(history, func(a, b int) bool { return history[a].Before(history[b]) })
		for _, at := range history {
			if at.After(now) {
				continue
			}
			if _, err := h.RecordCompletion(cal, at); err != nil {
				panic(err)
			}
		}
		habits = append(habits, h)
	}
	return habits
}

// Names lists the sample habit names in seed order.
func Names() []string {
	names := make([]string, len(samples))
	for i, s := range samples {
		names[i] = s.name
	}
	return names
}

func daysAgo(days ...int) func(time.Time) []time.Time {
	return func(now time.Time) []time.Time {
		out := make([]time.Time, 0, len(days))
		for _, d := range days {
			out = append(out, now.AddDate(0, 0, -d))
		}
		return out
	}
}

func dayRange(from, to int) func(time.Time) []time.Time {
	days := make([]int, 0, to-from+1)
	for d := from; d <= to; d++ {
		days = append(days, d)
	}
	return daysAgo(days...)
}

// weekdays picks weekday[i] in the ISO week weeksAgo[i] weeks before now,
// at now's time of day.
func weekdays(weeksAgo []int, weekday []time.Weekday) func(time.Time) []time.Time {
	return func(now time.Time) []time.Time {
		out := make([]time.Time, 0, len(weeksAgo))
		for i, w := range weeksAgo {
			ref := now.AddDate(0, 0, -7*w)
			monday := ref.AddDate(0, 0, -isoOffset(ref.Weekday()))
			out = append(out, monday.AddDate(0, 0, isoOffset(weekday[i])))
		}
		return out
	}
}

// isoOffset counts days since Monday.
func isoOffset(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
