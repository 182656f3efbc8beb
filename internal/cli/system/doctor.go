package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

// errWarning marks a failed check that does not fail the run.
var errWarning = errors.New("warning")

// errSkipped marks a check that does not apply to the configured backend.
var errSkipped = errors.New("skipped")

type DoctorCmd struct{}

type check struct {
	name    string
	needsDB bool
	run     func(ctx *cli.Context) error
}

var checks = []check{
	{"Schema version", true, checkSchemaVersion},
	{"Migrations complete", true, checkMigrationsComplete},
	{"Backups present", true, checkBackupsPresent},
	{"Habit data", true, checkHabitData},
	{"Clock/timezone", false, checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		report(ctx, "Database reachable", err)
		hasError = true
		dbReachable = false
	} else {
		report(ctx, "Database reachable", nil)
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		report(ctx, c.name, err)
		if err != nil && !errors.Is(err, errWarning) && !errors.Is(err, errSkipped) {
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func report(ctx *cli.Context, name string, err error) {
	switch {
	case err == nil:
		ctx.Printf("✓ %s: OK\n", name)
	case errors.Is(err, errSkipped):
		ctx.Printf("⊘ %s: SKIPPED (%v)\n", name, errors.Unwrap(err))
	case errors.Is(err, errWarning):
		ctx.Printf("⚠ %s: WARNING\n", name)
		ctx.Printf("   %v\n", errors.Unwrap(err))
	default:
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
	}
}

func warn(format string, args ...any) error {
	return warning{fmt.Errorf(format, args...)}
}

func skip(reason string) error {
	return skipped{errors.New(reason)}
}

type warning struct{ err error }

func (w warning) Error() string        { return w.err.Error() }
func (w warning) Unwrap() error        { return w.err }
func (w warning) Is(target error) bool { return target == errWarning }

type skipped struct{ err error }

func (s skipped) Error() string        { return s.err.Error() }
func (s skipped) Unwrap() error        { return s.err }
func (s skipped) Is(target error) bool { return target == errSkipped }

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return skip("no versioned schema")
	}
	runner, err := m.Runner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return skip("no versioned schema")
	}
	runner, err := m.Runner()
	if err != nil {
		return err
	}

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	pending, err := runner.Pending()
	if err != nil {
		return err
	}
	if pending > 0 {
		return fmt.Errorf("migrations incomplete: version %d with %d pending", current, pending)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return skip("PostgreSQL databases are not backed up by " + constants.AppName)
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warn("no backups found, consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkHabitData(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return fmt.Errorf("failed to read habits: %w", err)
	}

	result := validation.New().ValidateHabits(habits, ctx.Calendar)
	if !result.HasConflicts() {
		return nil
	}
	for _, c := range result.Conflicts {
		if c.Type == validation.ConflictInvalidHistory {
			return fmt.Errorf("%s", result.FormatReport())
		}
	}
	return warn("%s", result.FormatReport())
}

func checkClockTimezone(ctx *cli.Context) error {
	if !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("invalid timezone %q", ctx.Config.Timezone)
	}

	now := ctx.Clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
