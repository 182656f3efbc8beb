package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/validation"
)

// Prompter asks the user for whatever a command was not given as flags.
type Prompter interface {
	// HabitInput fills the empty fields of in.
	HabitInput(in *validation.HabitInput) error
	SelectHabit(title string, names []string) (string, error)
	Confirm(title string) (bool, error)
}

// HuhPrompter drives interactive huh forms.
type HuhPrompter struct{}

func (HuhPrompter) HabitInput(in *validation.HabitInput) error {
	if in.Name != "" && in.Periodicity != "" {
		return nil
	}

	var fields []huh.Field
	if in.Name == "" {
		fields = append(fields, huh.NewInput().
			Title("Habit name").
			CharLimit(constants.MaxHabitNameLen).
			Value(&in.Name).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}))
	}
	if in.Periodicity == "" {
		options := make([]huh.Option[string], 0, len(period.All()))
		for _, p := range period.All() {
			options = append(options, huh.NewOption(p.String(), p.String()))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("How often?").
			Options(options...).
			Value(&in.Periodicity))
	}
	if in.Description == "" {
		fields = append(fields, huh.NewInput().
			Title("Description (optional)").
			CharLimit(constants.MaxHabitDescriptionLen).
			Value(&in.Description))
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}
	return nil
}

func (HuhPrompter) SelectHabit(title string, names []string) (string, error) {
	var choice string
	options := make([]huh.Option[string], len(names))
	for i, n := range names {
		options[i] = huh.NewOption(n, n)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title(title).Options(options...).Value(&choice),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("interactive form error: %w", err)
	}
	return choice, nil
}

func (HuhPrompter) Confirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(title).Affirmative("Yes").Negative("No").Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("interactive form error: %w", err)
	}
	return ok, nil
}
