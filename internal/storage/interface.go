package storage

import (
	"strings"

	"github.com/julianstephens/habitual/internal/migration"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
)

// Provider persists habits together with their completion history.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	SaveHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	DeleteHabit(id string) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by stores with a versioned SQL schema.
type Migrator interface {
	Runner() (*migration.Runner, error)
}

// IsPostgres reports whether conn is a PostgreSQL URL rather than a SQLite path.
func IsPostgres(conn string) bool {
	return strings.HasPrefix(conn, "postgres://") || strings.HasPrefix(conn, "postgresql://")
}

// New picks a backend for conn. PostgreSQL connection strings are rejected
// when they embed a password.
func New(conn string) (Provider, error) {
	if IsPostgres(conn) {
		if _, err := postgres.ValidateConnString(conn); err != nil {
			return nil, err
		}
		return postgres.New(conn), nil
	}
	return sqlite.NewStore(conn), nil
}

// NewFromKeyring is New for connection strings read from the OS keyring,
// which is the one place a PostgreSQL password may live.
func NewFromKeyring(conn string) Provider {
	if IsPostgres(conn) {
		return postgres.New(conn)
	}
	return sqlite.NewStore(conn)
}
