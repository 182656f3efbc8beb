package system

import (
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/fixtures"
)

// SeedCmd loads the sample habits with four weeks of history.
type SeedCmd struct{}

func (c *SeedCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	added, err := ctx.Tracker.Import(fixtures.Habits(ctx.Tracker.Now(), ctx.Calendar))
	if err != nil {
		return err
	}
	if len(added) == 0 {
		ctx.Println("Sample habits are already present.")
		return nil
	}

	ctx.Printf("✓ Added %d sample habits:\n", len(added))
	for _, name := range added {
		ctx.Printf("  • %s\n", name)
	}
	return nil
}
