package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/habitual/internal/constants"
)

// Logger is the global logger. Nil until Init succeeds, which the helpers
// below tolerate.
var Logger *log.Logger

// Config is what Init needs from the resolved settings.
type Config struct {
	Debug     bool
	ConfigDir string
	// Source and Timezone are recorded once at startup so a log file can be
	// matched to the database and calendar that produced it.
	Source   string
	Timezone string
}

// Path returns the rotating log file location under configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, "logs", constants.LogFileName)
}

// Init replaces the global logger. Warnings and errors go to the rotating
// file; --debug adds debug output and mirrors everything to stderr.
func Init(cfg Config) error {
	path := Path(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
		Compress:   true,
	}
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		out = io.MultiWriter(os.Stderr, out)
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	Logger.Debug("Logging started", "file", path, "source", cfg.Source, "timezone", cfg.Timezone)

	return nil
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs msg and exits with status 1 even when logging is not set up.
func Fatal(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
