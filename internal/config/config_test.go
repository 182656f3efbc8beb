package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitual/internal/constants"
)

func TestLoadMissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if s != (Settings{}) {
		t.Errorf("Load() = %+v, want zero settings", s)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := Path(filepath.Join(t.TempDir(), "cfg"))
	want := Settings{Database: "/data/habits.db", Timezone: "Europe/Berlin", Debug: true}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if filepath.Base(path) != constants.SettingsFileName {
		t.Errorf("Path() = %q", path)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"malformed": "database: [unclosed",
		"timezone":  "timezone: Mars/Olympus_Mons\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load() accepted %q", content)
			}
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	found := func() (string, error) { return "postgres://alice:pw@db/habitual", nil }
	missing := func() (string, error) { return "", errors.New("not found") }

	tests := []struct {
		name       string
		flags      Flags
		file       Settings
		lookup     KeyringLookup
		wantDB     string
		wantSource Source
		wantTZ     string
	}{
		{
			name:       "flag wins",
			flags:      Flags{Database: "/flag.db", Timezone: "UTC"},
			file:       Settings{Database: "/file.db", Timezone: "Asia/Tokyo"},
			lookup:     found,
			wantDB:     "/flag.db",
			wantSource: SourceFlag,
			wantTZ:     "UTC",
		},
		{
			name:       "file over keyring",
			file:       Settings{Database: "/file.db", Timezone: "Asia/Tokyo"},
			lookup:     found,
			wantDB:     "/file.db",
			wantSource: SourceFile,
			wantTZ:     "Asia/Tokyo",
		},
		{
			name:       "keyring over default",
			lookup:     found,
			wantDB:     "postgres://alice:pw@db/habitual",
			wantSource: SourceKeyring,
			wantTZ:     constants.DefaultTimezone,
		},
		{
			name:       "default",
			lookup:     missing,
			wantSource: SourceDefault,
			wantTZ:     constants.DefaultTimezone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.flags, tt.file, tt.lookup)
			if err != nil {
				t.Fatalf("Resolve() failed: %v", err)
			}
			if got.Source != tt.wantSource {
				t.Errorf("Source = %q, want %q", got.Source, tt.wantSource)
			}
			if tt.wantDB != "" && got.Database != tt.wantDB {
				t.Errorf("Database = %q, want %q", got.Database, tt.wantDB)
			}
			if got.Timezone != tt.wantTZ {
				t.Errorf("Timezone = %q, want %q", got.Timezone, tt.wantTZ)
			}
		})
	}
}

func TestResolveExpandsDefaultPath(t *testing.T) {
	got, err := Resolve(Flags{}, Settings{}, nil)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if strings.HasPrefix(got.Database, "~") {
		t.Errorf("Database = %q, want ~ expanded", got.Database)
	}
	if !strings.HasSuffix(got.Database, filepath.Join(".config", constants.AppName, "habitual.db")) {
		t.Errorf("Database = %q", got.Database)
	}
}

func TestResolveDebug(t *testing.T) {
	got, _ := Resolve(Flags{}, Settings{Debug: true}, nil)
	if !got.Debug {
		t.Error("Debug from settings file ignored")
	}
}
