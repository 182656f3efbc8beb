package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

// HabitInput is the user supplied part of a new habit.
type HabitInput struct {
	Name        string `validate:"required,max=64"`
	Description string `validate:"max=256"`
	Periodicity string `validate:"required,oneof=daily weekly"`
}

// ConflictType represents the kind of problem found in stored habits
type ConflictType string

const (
	ConflictSimilarNames   ConflictType = "similar_names"
	ConflictInvalidHistory ConflictType = "invalid_history"
)

// Conflict is one problem found by ValidateHabits
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // habit names involved
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range r.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ValidateHabitInput trims in and checks it. Failures wrap ErrInvalidInput,
// or ErrInvalidPeriodicity when only the periodicity is wrong.
func (v *Validator) ValidateHabitInput(in HabitInput) (HabitInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Periodicity = strings.ToLower(strings.TrimSpace(in.Periodicity))

	err := v.validate.Struct(in)
	if err == nil {
		return in, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return in, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	var msgs []string
	onlyPeriodicity := true
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
		if fe.Field() != "Periodicity" {
			onlyPeriodicity = false
		}
	}
	if onlyPeriodicity {
		return in, fmt.Errorf("%w: got %q", apperrors.ErrInvalidPeriodicity, in.Periodicity)
	}
	return in, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// ValidateHabits checks stored habits for names that differ only by case and
// for completion histories that break the ordering or one-per-period rules.
func (v *Validator) ValidateHabits(habits []models.Habit, cal period.Calendar) Result {
	result := Result{Conflicts: []Conflict{}}

	byFolded := make(map[string][]string)
	for _, h := range habits {
		key := strings.ToLower(h.Name)
		byFolded[key] = append(byFolded[key], h.Name)
	}
	keys := make([]string, 0, len(byFolded))
	for k := range byFolded {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if names := byFolded[k]; len(names) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictSimilarNames,
				Description: fmt.Sprintf("Habits differ only by case: %s", strings.Join(names, ", ")),
				Items:       names,
			})
		}
	}

	for _, h := range habits {
		if err := h.Validate(cal); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidHistory,
				Description: err.Error(),
				Items:       []string{h.Name},
			})
		}
	}

	return result
}
