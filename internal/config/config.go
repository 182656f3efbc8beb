// Package config reads the optional settings file and resolves where the
// database lives.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/utils"
)

// Settings mirrors config.yaml. Empty fields fall through to defaults.
type Settings struct {
	Database string `yaml:"database,omitempty"`
	Timezone string `yaml:"timezone,omitempty"`
	Debug    bool   `yaml:"debug,omitempty"`
}

// Source records where the database connection came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceFile    Source = "settings file"
	SourceKeyring Source = "keyring"
	SourceDefault Source = "default"
)

// Path returns the settings file location inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.SettingsFileName)
}

// Load reads path. A missing file yields zero Settings.
func Load(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	if s.Timezone != "" && !utils.ValidateTimezone(s.Timezone) {
		return s, fmt.Errorf("settings file %s: invalid timezone %q", path, s.Timezone)
	}
	return s, nil
}

func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Flags are the command line values; empty means "not given".
type Flags struct {
	Database string
	Timezone string
	Debug    bool
}

// Resolved is the effective configuration for one invocation.
type Resolved struct {
	Database string
	Source   Source
	Timezone string
	Debug    bool
}

// KeyringLookup fetches a stored connection string.
type KeyringLookup func() (string, error)

// Resolve applies flags over the settings file over the keyring over
// defaults. A keyring error other than "not found" is ignored so a machine
// without a keyring still works with SQLite.
func Resolve(flags Flags, file Settings, lookup KeyringLookup) (Resolved, error) {
	r := Resolved{
		Timezone: constants.DefaultTimezone,
		Debug:    flags.Debug || file.Debug,
	}

	switch {
	case flags.Timezone != "":
		r.Timezone = flags.Timezone
	case file.Timezone != "":
		r.Timezone = file.Timezone
	}

	switch {
	case flags.Database != "":
		r.Database, r.Source = flags.Database, SourceFlag
	case file.Database != "":
		r.Database, r.Source = file.Database, SourceFile
	default:
		r.Database, r.Source = constants.DefaultConfigPath, SourceDefault
		if lookup != nil {
			if conn, err := lookup(); err == nil && conn != "" {
				r.Database, r.Source = conn, SourceKeyring
			}
		}
	}

	if r.Source != SourceKeyring {
		expanded, err := utils.ExpandPath(r.Database)
		if err != nil {
			return r, err
		}
		r.Database = expanded
	}
	return r, nil
}

// DefaultKeyringLookup reads the OS keyring.
func DefaultKeyringLookup() (string, error) {
	return keyring.GetConnectionString()
}
