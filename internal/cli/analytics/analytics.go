package analytics

import (
	"strings"

	"github.com/julianstephens/habitual/internal/analytics"
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/period"
)

type AnalyticsCmd struct {
	Overview      OverviewCmd      `cmd:"" help:"Summary across all habits." default:"1"`
	LongestStreak LongestStreakCmd `cmd:"" help:"Longest streak over all habits."`
	HabitStreak   HabitStreakCmd   `cmd:"" help:"Current and longest streak of one habit."`
	Active        ActiveCmd        `cmd:"" help:"Habits with a running streak."`
	Broken        BrokenCmd        `cmd:"" help:"Habits that missed at least one period."`
	Due           DueCmd           `cmd:"" help:"Habits not yet completed this period."`
	Daily         DailyCmd         `cmd:"" help:"Streak table for daily habits."`
	Weekly        WeeklyCmd        `cmd:"" help:"Streak table for weekly habits."`
}

type OverviewCmd struct{}

func (c *OverviewCmd) Run(ctx *cli.Context) error {
	s, err := summary(ctx)
	if err != nil {
		return err
	}
	if s.Total == 0 {
		ctx.Println("No habits yet.")
		return nil
	}

	ctx.Println(cli.Title("Overview"))
	ctx.Printf("  Habits:         %d (%d daily, %d weekly)\n",
		s.Total, s.ByPeriodicity[period.Daily], s.ByPeriodicity[period.Weekly])
	ctx.Printf("  Due today:      %s\n", names(s.DueToday))
	ctx.Printf("  Due this week:  %s\n", names(s.DueThisWeek))
	ctx.Printf("  Broken:         %s\n", names(s.Broken))
	ctx.Printf("  Active:         %s\n", names(s.Active))
	if s.LongestStreak > 0 {
		ctx.Printf("  Longest streak: %d (%s)\n", s.LongestStreak, names(s.LongestHolders))
	}
	ctx.Println()

	entries, err := ctx.Tracker.Entries()
	if err != nil {
		return err
	}
	cli.RenderEntries(ctx.Out, entries, ctx.Calendar.Location())
	return nil
}

type LongestStreakCmd struct{}

func (c *LongestStreakCmd) Run(ctx *cli.Context) error {
	s, err := summary(ctx)
	if err != nil {
		return err
	}
	if s.LongestStreak == 0 {
		ctx.Println("No streaks yet. Complete a habit to start one.")
		return nil
	}

	ctx.Printf("Longest streak across all habits: %d\n", s.LongestStreak)
	cli.RenderNames(ctx.Out, s.LongestHolders, func(e analytics.Entry) string {
		return cli.Streak(e.Stats.LongestStreak, e)
	})
	return nil
}

type HabitStreakCmd struct {
	Name string `arg:"" optional:"" help:"Habit name (selected interactively when omitted)."`
}

func (c *HabitStreakCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	name := c.Name
	if name == "" {
		habits, err := ctx.Tracker.Habits()
		if err != nil {
			return err
		}
		if len(habits) == 0 {
			ctx.Println("No habits yet.")
			return nil
		}
		options := make([]string, len(habits))
		for i, h := range habits {
			options[i] = h.Name
		}
		if name, err = ctx.Prompt.SelectHabit("Show streaks for which habit?", options); err != nil {
			return err
		}
	}

	e, err := ctx.Tracker.Report(name)
	if err != nil {
		return err
	}

	ctx.Printf("%s: current streak %s, longest %s\n",
		e.Habit.Name, cli.Streak(e.Stats.CurrentStreak, e), cli.Streak(e.Stats.LongestStreak, e))
	switch {
	case e.Stats.OnLongestStreak():
		ctx.Println("  You're on your longest streak. Keep it going!")
	case e.Stats.CurrentStreak == 0:
		ctx.Printf("  Complete it %s to start a new streak.\n", thisPeriod(e.Habit.Periodicity))
	}
	return nil
}

type ActiveCmd struct{}

func (c *ActiveCmd) Run(ctx *cli.Context) error {
	s, err := summary(ctx)
	if err != nil {
		return err
	}
	if len(s.Active) == 0 {
		ctx.Println("No active streaks.")
		return nil
	}

	ctx.Println(cli.Title("Active streaks"))
	cli.RenderNames(ctx.Out, s.Active, func(e analytics.Entry) string {
		return cli.Streak(e.Stats.CurrentStreak, e)
	})
	return nil
}

type BrokenCmd struct{}

func (c *BrokenCmd) Run(ctx *cli.Context) error {
	s, err := summary(ctx)
	if err != nil {
		return err
	}
	if len(s.Broken) == 0 {
		ctx.Println("No broken habits.")
		return nil
	}

	loc := ctx.Calendar.Location()
	ctx.Println(cli.Title("Broken habits"))
	cli.RenderNames(ctx.Out, s.Broken, func(e analytics.Entry) string {
		return "last completed " + cli.LastCompleted(e.Stats, loc)
	})
	return nil
}

type DueCmd struct{}

func (c *DueCmd) Run(ctx *cli.Context) error {
	s, err := summary(ctx)
	if err != nil {
		return err
	}

	due := s.Due()
	if len(due) == 0 {
		ctx.Println("Nothing due. Everything is done for this period.")
		return nil
	}

	ctx.Println(cli.Title("Due"))
	cli.RenderNames(ctx.Out, due, func(e analytics.Entry) string {
		return thisPeriod(e.Habit.Periodicity)
	})
	return nil
}

type DailyCmd struct{}

func (c *DailyCmd) Run(ctx *cli.Context) error {
	return renderPeriodicity(ctx, period.Daily)
}

type WeeklyCmd struct{}

func (c *WeeklyCmd) Run(ctx *cli.Context) error {
	return renderPeriodicity(ctx, period.Weekly)
}

func renderPeriodicity(ctx *cli.Context, p period.Periodicity) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	entries, err := ctx.Tracker.Entries(p)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ctx.Printf("No %s habits.\n", p)
		return nil
	}
	cli.RenderEntries(ctx.Out, entries, ctx.Calendar.Location())
	return nil
}

func summary(ctx *cli.Context) (analytics.Summary, error) {
	if err := ctx.Store.Load(); err != nil {
		return analytics.Summary{}, err
	}
	return ctx.Tracker.Summary()
}

func names(entries []analytics.Entry) string {
	if len(entries) == 0 {
		return "none"
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Habit.Name
	}
	return strings.Join(out, ", ")
}

func thisPeriod(p period.Periodicity) string {
	if p == period.Weekly {
		return "this week"
	}
	return "today"
}
