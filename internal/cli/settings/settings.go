package settings

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List the settings file and the values in effect."`

	Database *string `help:"Database path or PostgreSQL URL to store in the settings file (empty to clear)."`
	Timezone *string `help:"IANA timezone used for period boundaries (empty to clear)."`
	Debug    *bool   `help:"Enable or disable debug logging."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := config.Load(ctx.SettingsPath)
	if err != nil {
		return err
	}

	if c.List {
		ctx.Printf("Settings file: %s\n", ctx.SettingsPath)
		ctx.Printf("  database:  %s\n", orUnset(keyring.MaskPassword(settings.Database)))
		ctx.Printf("  timezone:  %s\n", orUnset(settings.Timezone))
		ctx.Printf("  debug:     %v\n", settings.Debug)
		ctx.Println("\nIn effect:")
		ctx.Printf("  database:  %s (from %s)\n", keyring.MaskPassword(ctx.Config.Database), ctx.Config.Source)
		ctx.Printf("  timezone:  %s\n", ctx.Config.Timezone)
		ctx.Printf("  debug:     %v\n", ctx.Config.Debug)
		ctx.Printf("\nLog file: %s\n", logger.Path(filepath.Dir(ctx.SettingsPath)))
		return nil
	}

	updated := false
	if c.Database != nil {
		if *c.Database != "" {
			if _, err := storage.New(*c.Database); err != nil {
				return fmt.Errorf("invalid database: %w", err)
			}
		}
		settings.Database = *c.Database
		updated = true
	}
	if c.Timezone != nil {
		if *c.Timezone != "" && !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Debug != nil {
		settings.Debug = *c.Debug
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := config.Save(ctx.SettingsPath, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully. Changes apply from the next command.")
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
