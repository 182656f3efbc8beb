// Package tracker coordinates habit storage, completion recording and
// analytics for a single invocation.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitual/internal/analytics"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/streak"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

type Tracker struct {
	store     storage.Provider
	clock     utils.Clock
	cal       period.Calendar
	validator *validation.Validator
	newID     func() string
}

func New(store storage.Provider, clock utils.Clock, cal period.Calendar) *Tracker {
	return &Tracker{
		store:     store,
		clock:     clock,
		cal:       cal,
		validator: validation.New(),
		newID:     uuid.NewString,
	}
}

func (t *Tracker) Calendar() period.Calendar { return t.cal }

// Now returns the clock's time in the calendar's location.
func (t *Tracker) Now() time.Time {
	return t.clock.Now().In(t.cal.Location())
}

// Create validates in and stores a new habit without completions.
func (t *Tracker) Create(in validation.HabitInput) (models.Habit, error) {
	in, err := t.validator.ValidateHabitInput(in)
	if err != nil {
		return models.Habit{}, err
	}

	if _, err := t.store.GetHabitByName(in.Name); err == nil {
		return models.Habit{}, fmt.Errorf("%w: %q", apperrors.ErrDuplicateName, in.Name)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return models.Habit{}, err
	}

	p, err := period.Parse(in.Periodicity)
	if err != nil {
		return models.Habit{}, err
	}
	h, err := models.NewHabit(t.newID(), in.Name, in.Description, p, t.Now())
	if err != nil {
		return models.Habit{}, err
	}
	if err := t.store.SaveHabit(h); err != nil {
		return models.Habit{}, err
	}

	logger.Info("Created habit", "id", h.ID, "name", h.Name, "periodicity", h.Periodicity)
	return h, nil
}

// Completion is the outcome of Complete together with the refreshed stats.
type Completion struct {
	Habit   models.Habit
	Outcome models.CompletionOutcome
	Stats   streak.Stats
}

// Complete marks the named habit as done now.
func (t *Tracker) Complete(name string) (Completion, error) {
	return t.CompleteAt(name, t.Now())
}

// CompleteAt records a completion at a past moment. Repeats inside an
// already completed period change nothing and are not persisted.
func (t *Tracker) CompleteAt(name string, at time.Time) (Completion, error) {
	now := t.Now()
	if at.After(now) {
		return Completion{}, fmt.Errorf("%w: completion time %s is in the future",
			apperrors.ErrInvalidInput, at.Format(time.RFC3339))
	}

	h, err := t.store.GetHabitByName(name)
	if err != nil {
		return Completion{}, err
	}

	outcome, err := h.RecordCompletion(t.cal, at)
	if err != nil {
		return Completion{}, err
	}
	if outcome == models.Recorded {
		if err := t.store.SaveHabit(h); err != nil {
			return Completion{}, err
		}
	}

	stats := streak.Compute(t.cal, h, now)
	logger.Info("Completion", "habit", h.Name, "outcome", outcome, "at", at, "streak", stats.CurrentStreak)
	return Completion{Habit: h, Outcome: outcome, Stats: stats}, nil
}

// Remove deletes the named habit and its history.
func (t *Tracker) Remove(name string) (models.Habit, error) {
	h, err := t.store.GetHabitByName(name)
	if err != nil {
		return models.Habit{}, err
	}
	if err := t.store.DeleteHabit(h.ID); err != nil {
		return models.Habit{}, err
	}
	logger.Info("Removed habit", "id", h.ID, "name", h.Name)
	return h, nil
}

func (t *Tracker) Habit(name string) (models.Habit, error) {
	return t.store.GetHabitByName(name)
}

func (t *Tracker) Habits() ([]models.Habit, error) {
	return t.store.GetAllHabits()
}

// Entries returns every habit with its stats, in creation order. Passing
// periodicities restricts the result to those.
func (t *Tracker) Entries(only ...period.Periodicity) ([]analytics.Entry, error) {
	habits, err := t.store.GetAllHabits()
	if err != nil {
		return nil, err
	}

	now := t.Now()
	entries := make([]analytics.Entry, 0, len(habits))
	for _, h := range habits {
		entries = append(entries, analytics.Entry{Habit: h, Stats: streak.Compute(t.cal, h, now)})
	}

	if len(only) > 0 {
		return analytics.FilterByPeriodicity(entries, only...), nil
	}
	return entries, nil
}

// Report returns one habit with its stats.
func (t *Tracker) Report(name string) (analytics.Entry, error) {
	h, err := t.store.GetHabitByName(name)
	if err != nil {
		return analytics.Entry{}, err
	}
	return analytics.Entry{Habit: h, Stats: streak.Compute(t.cal, h, t.Now())}, nil
}

func (t *Tracker) Summary() (analytics.Summary, error) {
	entries, err := t.Entries()
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(entries), nil
}

// Import stores prebuilt habits, skipping names that already exist. It
// returns the names that were added.
func (t *Tracker) Import(habits []models.Habit) ([]string, error) {
	var added []string
	for _, h := range habits {
		if _, err := t.store.GetHabitByName(h.Name); err == nil {
			logger.Debug("Skipping existing habit", "name", h.Name)
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return added, err
		}

		if err := h.Validate(t.cal); err != nil {
			return added, err
		}
		if h.ID == "" {
			h.ID = t.newID()
		}
		if err := t.store.SaveHabit(h); err != nil {
			return added, err
		}
		added = append(added, h.Name)
	}
	logger.Info("Imported habits", "count", len(added))
	return added, nil
}
