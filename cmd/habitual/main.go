package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/analytics"
	"github.com/julianstephens/habitual/internal/cli/backups"
	"github.com/julianstephens/habitual/internal/cli/habits"
	"github.com/julianstephens/habitual/internal/cli/settings"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite database path or PostgreSQL connection string. PostgreSQL passwords must NOT be embedded; use the OS keyring or .pgpass instead." env:"HABITUAL_DB"`
	Timezone string `help:"IANA timezone for day and week boundaries (default: settings file, then Local)." env:"HABITUAL_TIMEZONE"`
	Debug    bool   `help:"Log debug output to stderr." env:"HABITUAL_DEBUG"`

	Init      system.InitCmd         `cmd:"" help:"Initialize habitual storage."`
	Add       habits.AddCmd          `cmd:"" help:"Create a new habit."`
	Complete  habits.CompleteCmd     `cmd:"" help:"Mark a habit as completed for the current period."`
	Remove    habits.RemoveCmd       `cmd:"" help:"Delete a habit and its history."`
	Status    habits.StatusCmd       `cmd:"" help:"Show one habit in detail."`
	List      habits.ListCmd         `cmd:"" help:"List habits with their streaks." default:"1"`
	Analytics analytics.AnalyticsCmd `cmd:"" help:"Streak analytics across habits."`
	Dashboard system.DashboardCmd    `cmd:"" help:"Launch the interactive dashboard."`
	Seed      system.SeedCmd         `cmd:"" help:"Load five sample habits with four weeks of history."`
	Doctor    system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Backup    backups.BackupCmd      `cmd:"" help:"Manage database backups."`
	Keyring   system.KeyringCmd      `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Settings  settings.SettingsCmd   `cmd:"" help:"View or change the settings file."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with daily and weekly streak analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir, err := utils.ExpandPath(constants.DefaultConfigDir)
	if err != nil {
		apperrors.Fatal(err)
	}
	settingsPath := config.Path(configDir)
	file, err := config.Load(settingsPath)
	if err != nil {
		apperrors.Fatal(err)
	}

	resolved, err := config.Resolve(config.Flags{
		Database: CLI.Config,
		Timezone: CLI.Timezone,
		Debug:    CLI.Debug,
	}, file, config.DefaultKeyringLookup)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     resolved.Debug,
		ConfigDir: configDir,
		Source:    string(resolved.Source),
		Timezone:  resolved.Timezone,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	loc, err := utils.LoadLocation(resolved.Timezone)
	if err != nil {
		apperrors.Fatal(err)
	}

	var store storage.Provider
	if resolved.Source == config.SourceKeyring {
		store = storage.NewFromKeyring(resolved.Database)
	} else if store, err = storage.New(resolved.Database); err != nil {
		apperrors.Fatalf("%v\n       Store PostgreSQL passwords with '%s keyring set' or in a .pgpass file.", err, constants.AppName)
	}

	appCtx := cli.NewContext(store, utils.SystemClock{Location: loc}, period.NewCalendar(loc))
	appCtx.Config = resolved
	appCtx.SettingsPath = settingsPath

	err = kctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close database", "error", closeErr)
	}
	apperrors.Fatal(err)
}
