package constants

import "time"

const (
	AppName            = "habitual"
	Version            = "v0.3.0"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitual"
	DefaultConfigPath  = DefaultConfigDir + "/habitual.db"
	SettingsFileName   = "config.yaml"
	LogFileName        = "habitual.log"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DateTimeFormat is accepted by --at flags and used for "last completed" output
	DateTimeFormat = "2006-01-02 15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitual-"
	BackupFileSuffix = ".db"

	// Environment variables
	EnvDatabase       = "HABITUAL_DB"
	EnvTimezone       = "HABITUAL_TIMEZONE"
	EnvDebug          = "HABITUAL_DEBUG"
	EnvTestPostgres   = "HABITUAL_TEST_POSTGRES"
	DefaultTimezone   = "Local"
	PostgresConnLimit = 5
	PostgresConnTTL   = 5 * time.Minute

	// Validation limits
	MaxHabitNameLen        = 64
	MaxHabitDescriptionLen = 256
)
