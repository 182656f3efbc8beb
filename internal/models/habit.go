package models

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/period"
)

// CompletionOutcome reports what RecordCompletion did with a timestamp
type CompletionOutcome int

const (
	Recorded CompletionOutcome = iota + 1
	AlreadyCompleted
	// Rejected accompanies a non-nil error; the history is unchanged
	Rejected
)

func (o CompletionOutcome) String() string {
	switch o {
	case Recorded:
		return "recorded"
	case AlreadyCompleted:
		return "already completed this period"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Habit represents a recurring practice and its completion history
type Habit struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Periodicity period.Periodicity `json:"periodicity"`
	CreatedAt   time.Time          `json:"created_at"`
	Completions []time.Time        `json:"completions"` // oldest first, at most one per period
}

// NewHabit builds a habit with no completions. Periodicity cannot be changed
// afterwards.
func NewHabit(id, name, description string, p period.Periodicity, createdAt time.Time) (Habit, error) {
	if !p.Valid() {
		return Habit{}, fmt.Errorf("%w: got %v", apperrors.ErrInvalidPeriodicity, p)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, fmt.Errorf("%w: habit name cannot be empty", apperrors.ErrInvalidInput)
	}

	return Habit{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(description),
		Periodicity: p,
		CreatedAt:   createdAt,
	}, nil
}

// RecordCompletion is the only way completions should be added. A second
// completion inside an already completed period is a no-op.
func (h *Habit) RecordCompletion(cal period.Calendar, at time.Time) (CompletionOutcome, error) {
	last, ok := h.LastCompletion()
	if ok {
		if cal.KeyFor(h.Periodicity, at) == cal.KeyFor(h.Periodicity, last) {
			return AlreadyCompleted, nil
		}
		if at.Before(last) {
			return Rejected, fmt.Errorf("%w: %s is before %s",
				apperrors.ErrOutOfOrderCompletion, at.Format(time.RFC3339), last.Format(time.RFC3339))
		}
	}

	h.Completions = append(h.Completions, at)
	return Recorded, nil
}

// LastCompletion returns the most recent completion, if any.
func (h Habit) LastCompletion() (time.Time, bool) {
	if len(h.Completions) == 0 {
		return time.Time{}, false
	}
	return h.Completions[len(h.Completions)-1], true
}

// Validate checks a habit loaded from storage against the ordering and
// one-completion-per-period invariants.
func (h Habit) Validate(cal period.Calendar) error {
	if !h.Periodicity.Valid() {
		return fmt.Errorf("habit %q: %w", h.Name, apperrors.ErrInvalidPeriodicity)
	}
	for i := 1; i < len(h.Completions); i++ {
		prev, cur := h.Completions[i-1], h.Completions[i]
		if cur.Before(prev) {
			return fmt.Errorf("habit %q: completion %d: %w", h.Name, i, apperrors.ErrOutOfOrderCompletion)
		}
		if cal.KeyFor(h.Periodicity, prev) == cal.KeyFor(h.Periodicity, cur) {
			return fmt.Errorf("habit %q: completions %d and %d share period %s",
				h.Name, i-1, i, cal.KeyFor(h.Periodicity, cur))
		}
	}
	return nil
}
