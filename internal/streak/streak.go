// Package streak derives streak and due/broken state from a habit's completion
// history. Nothing here is stored; callers recompute on every query.
package streak

import (
	"sort"
	"time"

	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

// Stats is the derived state of one habit as of a given moment
type Stats struct {
	CurrentStreak    int
	LongestStreak    int
	Due              bool // current period has no completion
	Broken           bool // at least one whole period skipped since the last completion
	LastCompletedAt  *time.Time
	TotalCompletions int
	CurrentPeriod    period.Key
}

// OnLongestStreak reports whether the running streak is the habit's best.
func (s Stats) OnLongestStreak() bool {
	return s.CurrentStreak > 0 && s.CurrentStreak == s.LongestStreak
}

// Compute derives Stats for h at now.
func Compute(cal period.Calendar, h models.Habit, now time.Time) Stats {
	current := cal.KeyFor(h.Periodicity, now)
	stats := Stats{
		Due:              true,
		TotalCompletions: len(h.Completions),
		CurrentPeriod:    current,
	}
	if len(h.Completions) == 0 {
		return stats
	}

	last := h.Completions[len(h.Completions)-1]
	stats.LastCompletedAt = &last

	keys := sortedKeys(cal, h)
	completed := make(map[period.Key]struct{}, len(keys))
	for _, k := range keys {
		completed[k] = struct{}{}
	}

	_, doneNow := completed[current]
	stats.Due = !doneNow
	stats.CurrentStreak = currentStreak(completed, current)
	stats.Broken = current.Since(keys[len(keys)-1]) > 1
	stats.LongestStreak = longestRun(keys)

	return stats
}

// currentStreak counts back from the current period, or from the previous
// one when the current period is still open.
func currentStreak(completed map[period.Key]struct{}, current period.Key) int {
	k := current
	if _, ok := completed[k]; !ok {
		k = k.Previous()
	}

	n := 0
	for {
		if _, ok := completed[k]; !ok {
			return n
		}
		n++
		k = k.Previous()
	}
}

func longestRun(keys []period.Key) int {
	if len(keys) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(keys); i++ {
		if keys[i] == keys[i-1].Next() {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// sortedKeys returns the distinct completed period keys, oldest first.
func sortedKeys(cal period.Calendar, h models.Habit) []period.Key {
	keys := make([]period.Key, 0, len(h.Completions))
	for _, c := range h.Completions {
		keys = append(keys, cal.KeyFor(h.Periodicity, c))
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	distinct := keys[:0]
	for _, k := range keys {
		if len(distinct) == 0 || k != distinct[len(distinct)-1] {
			distinct = append(distinct, k)
		}
	}
	return distinct
}
