package habits

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

var errNoHabits = fmt.Errorf("no habits yet, add one with '%s add'", constants.AppName)

type AddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name (prompted when omitted)."`
	Periodicity string `short:"p" help:"daily or weekly (prompted when omitted)."`
	Description string `short:"d" help:"Optional description."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	in := validation.HabitInput{Name: c.Name, Periodicity: c.Periodicity, Description: c.Description}
	if err := ctx.Prompt.HabitInput(&in); err != nil {
		return err
	}

	h, err := ctx.Tracker.Create(in)
	if err != nil {
		return err
	}

	ctx.Printf("✓ Added %s habit %q\n", h.Periodicity, h.Name)
	return nil
}

type CompleteCmd struct {
	Name string `arg:"" optional:"" help:"Habit name (selected interactively when omitted)."`
	At   string `help:"Record a past completion: YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	name, err := chooseHabit(ctx, c.Name, "Which habit did you complete?")
	if err != nil {
		return err
	}

	var result tracker.Completion
	if c.At == "" {
		result, err = ctx.Tracker.Complete(name)
	} else {
		var at time.Time
		if at, err = backfillTime(ctx, c.At); err != nil {
			return err
		}
		result, err = ctx.Tracker.CompleteAt(name, at)
	}
	if err != nil {
		return err
	}

	entry := analytics.Entry{Habit: result.Habit, Stats: result.Stats}
	if result.Outcome == models.AlreadyCompleted {
		ctx.Printf("Already completed %q this %s. Current streak: %s\n",
			result.Habit.Name, periodNoun(result.Habit.Periodicity), cli.Streak(result.Stats.CurrentStreak, entry))
		return nil
	}

	ctx.Printf("✓ Completed %q. Current streak: %s\n", result.Habit.Name, cli.Streak(result.Stats.CurrentStreak, entry))
	if result.Stats.CurrentStreak > 1 && result.Stats.OnLongestStreak() {
		ctx.Println("  That's your longest streak yet!")
	}
	return nil
}

// backfillTime parses --at in the calendar's zone. A bare date for today
// resolves to noon, which may still be ahead of now; clamp it.
func backfillTime(ctx *cli.Context, value string) (time.Time, error) {
	loc := ctx.Calendar.Location()
	at, err := utils.ParseDateTimeInLocation(value, loc)
	if err != nil {
		return time.Time{}, err
	}
	now := ctx.Clock.Now().In(loc)
	if at.After(now) && ctx.Calendar.KeyFor(period.Daily, at) == ctx.Calendar.KeyFor(period.Daily, now) {
		at = now
	}
	return at, nil
}

type RemoveCmd struct {
	Name string `arg:"" optional:"" help:"Habit name (selected interactively when omitted)."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	name, err := chooseHabit(ctx, c.Name, "Which habit should be removed?")
	if err != nil {
		return err
	}
	h, err := ctx.Tracker.Habit(name)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Prompt.Confirm(fmt.Sprintf("Remove %q and its %d completions?", h.Name, len(h.Completions)))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Removal cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if _, err := ctx.Tracker.Remove(h.Name); err != nil {
		return err
	}
	ctx.Printf("✓ Removed habit %q\n", h.Name)
	return nil
}

type StatusCmd struct {
	Name string `arg:"" optional:"" help:"Habit name (selected interactively when omitted)."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	name, err := chooseHabit(ctx, c.Name, "Show which habit?")
	if err != nil {
		return err
	}
	e, err := ctx.Tracker.Report(name)
	if err != nil {
		return err
	}

	loc := ctx.Calendar.Location()
	ctx.Println(cli.Title(e.Habit.Name))
	if e.Habit.Description != "" {
		ctx.Printf("  %s\n", e.Habit.Description)
	}
	ctx.Printf("  Every:           %s\n", periodNoun(e.Habit.Periodicity))
	ctx.Printf("  Created:         %s\n", e.Habit.CreatedAt.In(loc).Format(constants.DateFormat))
	ctx.Printf("  This period:     %s (%s)\n", e.Stats.CurrentPeriod, cli.StatusLabel(e.Stats))
	ctx.Printf("  Current streak:  %s\n", cli.Streak(e.Stats.CurrentStreak, e))
	ctx.Printf("  Longest streak:  %s\n", cli.Streak(e.Stats.LongestStreak, e))
	ctx.Printf("  Completions:     %d\n", e.Stats.TotalCompletions)
	ctx.Printf("  Last completed:  %s\n", cli.LastCompleted(e.Stats, loc))
	return nil
}

type ListCmd struct {
	Periodicity string `short:"p" enum:"daily,weekly,all" default:"all" help:"Only show daily or weekly habits."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var filter []period.Periodicity
	if c.Periodicity != "" && c.Periodicity != "all" {
		p, err := period.Parse(c.Periodicity)
		if err != nil {
			return err
		}
		filter = append(filter, p)
	}

	entries, err := ctx.Tracker.Entries(filter...)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	cli.RenderEntries(ctx.Out, entries, ctx.Calendar.Location())
	return nil
}

// chooseHabit returns name, or asks the user to pick one of the stored habits.
func chooseHabit(ctx *cli.Context, name, title string) (string, error) {
	if name != "" {
		return name, nil
	}

	habits, err := ctx.Tracker.Habits()
	if err != nil {
		return "", err
	}
	if len(habits) == 0 {
		return "", errNoHabits
	}

	names := make([]string, len(habits))
	for i, h := range habits {
		names[i] = h.Name
	}
	return ctx.Prompt.SelectHabit(title, names)
}

func periodNoun(p period.Periodicity) string {
	switch p {
	case period.Weekly:
		return "week"
	default:
		return "day"
	}
}
