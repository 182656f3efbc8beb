// Package clitest builds command contexts over throwaway SQLite databases.
package clitest

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/config"
	"github.com/julianstephens/habitual/internal/fixtures"
	"github.com/julianstephens/habitual/internal/period"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/utils"
	"github.com/julianstephens/habitual/internal/validation"
)

// Now is the fixed clock used by NewContext, a Wednesday evening in UTC.
var Now = time.Date(2024, 1, 17, 18, 0, 0, 0, time.UTC)

// ErrUnexpectedPrompt is returned when a command asks a question the test
// did not script.
var ErrUnexpectedPrompt = errors.New("unexpected prompt")

// Prompter answers prompts from canned values and records what was asked.
type Prompter struct {
	Input  validation.HabitInput
	Choice string
	Answer bool

	Asked []string
}

func (p *Prompter) HabitInput(in *validation.HabitInput) error {
	p.Asked = append(p.Asked, "habit input")
	if in.Name == "" {
		in.Name = p.Input.Name
	}
	if in.Periodicity == "" {
		in.Periodicity = p.Input.Periodicity
	}
	if in.Description == "" {
		in.Description = p.Input.Description
	}
	return nil
}

func (p *Prompter) SelectHabit(title string, names []string) (string, error) {
	p.Asked = append(p.Asked, title)
	if p.Choice == "" {
		return "", fmt.Errorf("%w: %s", ErrUnexpectedPrompt, title)
	}
	return p.Choice, nil
}

func (p *Prompter) Confirm(title string) (bool, error) {
	p.Asked = append(p.Asked, title)
	return p.Answer, nil
}

// Env is a command context plus the handles tests inspect.
type Env struct {
	Ctx    *cli.Context
	Out    *bytes.Buffer
	Prompt *Prompter
	DBPath string
}

// NewContext returns an initialized SQLite-backed context at Now. The store
// is closed when the test ends.
func NewContext(t *testing.T) *Env {
	t.Helper()
	env := NewUninitialized(t)
	if err := env.Ctx.Store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return env
}

// NewUninitialized is NewContext without creating the database.
func NewUninitialized(t *testing.T) *Env {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "habitual.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(store, utils.FixedClock(Now), period.NewCalendar(time.UTC))
	out := &bytes.Buffer{}
	prompt := &Prompter{}
	ctx.Out = out
	ctx.Prompt = prompt
	ctx.Config.Database = dbPath
	ctx.Config.Source = config.SourceFlag
	ctx.SettingsPath = filepath.Join(filepath.Dir(dbPath), "config.yaml")

	return &Env{Ctx: ctx, Out: out, Prompt: prompt, DBPath: dbPath}
}

// Seed imports the sample habits.
func (e *Env) Seed(t *testing.T) {
	t.Helper()
	if _, err := e.Ctx.Tracker.Import(fixtures.Habits(Now, e.Ctx.Calendar)); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
}
