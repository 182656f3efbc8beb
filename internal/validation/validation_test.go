package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

func TestValidateHabitInput(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		in      HabitInput
		wantErr error
		wantMsg string
	}{
		{name: "valid daily", in: HabitInput{Name: "Read", Periodicity: "daily"}},
		{name: "valid weekly mixed case", in: HabitInput{Name: " Vacuum ", Description: "whole flat", Periodicity: "Weekly"}},
		{name: "blank name", in: HabitInput{Name: "   ", Periodicity: "daily"}, wantErr: apperrors.ErrInvalidInput, wantMsg: "name is required"},
		{name: "long name", in: HabitInput{Name: strings.Repeat("x", 65), Periodicity: "daily"}, wantErr: apperrors.ErrInvalidInput, wantMsg: "at most 64"},
		{name: "long description", in: HabitInput{Name: "Read", Description: strings.Repeat("d", 257), Periodicity: "daily"}, wantErr: apperrors.ErrInvalidInput, wantMsg: "description"},
		{name: "monthly", in: HabitInput{Name: "Read", Periodicity: "monthly"}, wantErr: apperrors.ErrInvalidPeriodicity},
		{name: "missing periodicity", in: HabitInput{Name: "Read"}, wantErr: apperrors.ErrInvalidPeriodicity},
		{name: "several problems", in: HabitInput{Periodicity: "yearly"}, wantErr: apperrors.ErrInvalidInput, wantMsg: "periodicity must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateHabitInput(tt.in)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateHabitInput() = %v, want nil", err)
				}
				if got.Name != strings.TrimSpace(tt.in.Name) {
					t.Errorf("name not trimmed: %q", got.Name)
				}
				if _, err := period.Parse(got.Periodicity); err != nil {
					t.Errorf("normalised periodicity %q does not parse: %v", got.Periodicity, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateHabitInput() = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateHabits(t *testing.T) {
	v := New()
	cal := period.NewCalendar(time.UTC)
	day := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

	clean := models.Habit{ID: "1", Name: "Read", Periodicity: period.Daily, Completions: []time.Time{day, day.AddDate(0, 0, 1)}}
	result := v.ValidateHabits([]models.Habit{clean}, cal)
	if result.HasConflicts() {
		t.Fatalf("unexpected conflicts: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}

	samePeriod := models.Habit{ID: "2", Name: "Vacuum", Periodicity: period.Weekly, Completions: []time.Time{day, day.AddDate(0, 0, 2)}}
	similar := models.Habit{ID: "3", Name: "read", Periodicity: period.Daily}

	result = v.ValidateHabits([]models.Habit{clean, samePeriod, similar}, cal)
	if len(result.Conflicts) != 2 {
		t.Fatalf("expected 2 conflicts, got %d: %s", len(result.Conflicts), result.FormatReport())
	}

	types := map[ConflictType]bool{}
	for _, c := range result.Conflicts {
		types[c.Type] = true
	}
	if !types[ConflictSimilarNames] || !types[ConflictInvalidHistory] {
		t.Errorf("conflict types = %v", types)
	}
	if !strings.HasPrefix(result.FormatReport(), "Conflicts detected:") {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}
}
