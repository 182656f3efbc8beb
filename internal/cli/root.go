package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/tracker"
	"github.com/julianstephens/habitual/internal/utils"
)

// Context is handed to every command's Run method.
type Context struct {
	Store    storage.Provider
	Tracker  *tracker.Tracker
	Clock    utils.Clock
	Calendar period.Calendar
	Config   config.Resolved
	// SettingsPath is the YAML settings file read at startup.
	SettingsPath string
	Out          io.Writer
	Prompt       Prompter
}

// NewContext wires a tracker over store. Output goes to stdout and prompts
// use huh forms.
func NewContext(store storage.Provider, clock utils.Clock, cal period.Calendar) *Context {
	return &Context{
		Store:    store,
		Tracker:  tracker.New(store, clock, cal),
		Clock:    clock,
		Calendar: cal,
		Out:      os.Stdout,
		Prompt:   HuhPrompter{},
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// BackupManager returns a manager for the SQLite database file. PostgreSQL
// stores have no file to back up.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite databases")
	}
	return backup.NewManager(c.Store.GetConfigPath(), c.Clock), nil
}

// PerformAutomaticBackup creates a backup and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
