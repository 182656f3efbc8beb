package e2e

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const commandTimeout = 30 * time.Second

type cli struct {
	t    *testing.T
	path string
	env  []string
}

// newCLI locates the habitual binary (HABITUAL_BIN_DIR or ../../bin) and
// isolates HOME so the real config directory is never touched.
func newCLI(t *testing.T) *cli {
	t.Helper()

	binDir := os.Getenv("HABITUAL_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join("..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	path := filepath.Join(binDir, "habitual")
	if _, err := os.Stat(path); err != nil {
		t.Skipf("habitual binary not found at %s; build it with 'go build -o bin/habitual ./cmd/habitual'", path)
	}

	home := t.TempDir()
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "HABITUAL_") || strings.HasPrefix(e, "XDG_CONFIG_HOME=") {
			continue
		}
		env = append(env, e)
	}
	env = append(env,
		"HOME="+home,
		"XDG_CONFIG_HOME="+filepath.Join(home, ".config"),
		"HABITUAL_DB="+filepath.Join(home, "habitual.db"),
		"HABITUAL_TIMEZONE=UTC",
	)

	return &cli{t: t, path: path, env: env}
}

func (c *cli) run(args ...string) string {
	c.t.Helper()
	out, err := c.exec(args...)
	if err != nil {
		c.t.Fatalf("habitual %v failed: %v\nOutput: %s", args, err, out)
	}
	return out
}

func (c *cli) fail(args ...string) string {
	c.t.Helper()
	out, err := c.exec(args...)
	if err == nil {
		c.t.Fatalf("habitual %v should have failed\nOutput: %s", args, out)
	}
	return out
}

func (c *cli) exec(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.path, args...)
	cmd.Env = c.env
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func expect(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestEndToEndWorkflow(t *testing.T) {
	c := newCLI(t)

	expect(t, c.fail("list"), "run 'habitual init' first")

	expect(t, c.run("init"), "Initialized habitual storage")

	expect(t, c.run("add", "Read", "--periodicity", "daily", "--description", "one chapter"), `Added daily habit "Read"`)
	expect(t, c.run("add", "Vacuum", "-p", "weekly"), `Added weekly habit "Vacuum"`)
	expect(t, c.fail("add", "Read", "-p", "weekly"), "already exists")
	expect(t, c.fail("add", "Swim", "-p", "monthly"), "periodicity")

	expect(t, c.run("complete", "Read"), `Completed "Read". Current streak: 1 day`)
	expect(t, c.run("complete", "Read"), `Already completed "Read" this day`)
	expect(t, c.fail("complete", "Nope"), "habit not found")

	expect(t, c.run("list", "--periodicity", "weekly"), "Vacuum")
	expect(t, c.run("status", "Read"), "Current streak:  1 day", "Completions:     1")
	expect(t, c.run("analytics", "due"), "Vacuum")
	expect(t, c.run("analytics", "habit-streak", "Vacuum"), "start a new streak")

	expect(t, c.run("backup", "create"), "Backup created")
	expect(t, c.run("remove", "Vacuum", "--yes"), `Removed habit "Vacuum"`)
	expect(t, c.run("backup", "list"), "Available backups (2 total")

	expect(t, c.run("doctor"), "All diagnostics passed!")
}

func TestSeedAndAnalytics(t *testing.T) {
	c := newCLI(t)
	c.run("init")

	expect(t, c.run("seed"), "Added 5 sample habits")
	expect(t, c.run("seed"), "already present")

	expect(t, c.run("analytics"), "Habits:         5 (3 daily, 2 weekly)")
	expect(t, c.run("analytics", "longest-streak"), "Take Vitamins", "25 days")
	expect(t, c.run("analytics", "broken"), "Take Vitamins")
	expect(t, c.run("analytics", "daily"), "Read", "Stretch")
}
