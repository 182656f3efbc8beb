package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/period"
)

const habitColumns = "id, name, description, periodicity, created_at"

// timestampFormat is fixed width so created_at sorts as text.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

type rowScanner interface {
	Scan(dest ...any) error
}

// SaveHabit upserts the habit row and appends completions that are not yet
// stored. Completions are append-only, so the stored ones are a prefix of
// h.Completions.
func (s *Store) SaveHabit(h models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var otherID string
	err = tx.QueryRow(`SELECT id FROM habits WHERE name = ? AND id <> ?`, h.Name, h.ID).Scan(&otherID)
	if err == nil {
		return fmt.Errorf("%w: %q", apperrors.ErrDuplicateName, h.Name)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check habit name: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO habits (id, name, description, periodicity, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description`,
		h.ID, h.Name, h.Description, h.Periodicity.String(), h.CreatedAt.UTC().Format(timestampFormat))
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}

	var stored int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM completions WHERE habit_id = ?`, h.ID).Scan(&stored); err != nil {
		return fmt.Errorf("failed to count completions: %w", err)
	}
	if stored > len(h.Completions) {
		return fmt.Errorf("habit %q has %d stored completions but only %d in memory", h.Name, stored, len(h.Completions))
	}

	for _, c := range h.Completions[stored:] {
		if _, err := tx.Exec(`INSERT INTO completions (habit_id, completed_at) VALUES (?, ?)`,
			h.ID, c.Format(timestampFormat)); err != nil {
			return fmt.Errorf("failed to save completion: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("%w: id %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return models.Habit{}, err
	}
	return s.withCompletions(h)
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE name = ?`, name)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("%w: %q", apperrors.ErrNotFound, name)
	}
	if err != nil {
		return models.Habit{}, err
	}
	return s.withCompletions(h)
}

// GetAllHabits returns every habit in creation order.
func (s *Store) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habits ORDER BY created_at, name`)
	if err != nil {
		return nil, err
	}

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range habits {
		if habits[i], err = s.withCompletions(habits[i]); err != nil {
			return nil, err
		}
	}
	return habits, nil
}

// DeleteHabit removes the habit and its completion history.
func (s *Store) DeleteHabit(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM completions WHERE habit_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete completions: %w", err)
	}
	result, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %s", apperrors.ErrNotFound, id)
	}

	return tx.Commit()
}

func (s *Store) withCompletions(h models.Habit) (models.Habit, error) {
	rows, err := s.db.Query(`SELECT completed_at FROM completions WHERE habit_id = ? ORDER BY id`, h.ID)
	if err != nil {
		return models.Habit{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return models.Habit{}, err
		}
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return models.Habit{}, fmt.Errorf("failed to parse completed_at for habit %s: %w", h.ID, err)
		}
		h.Completions = append(h.Completions, t)
	}
	return h, rows.Err()
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var periodicity, createdAt string

	if err := row.Scan(&h.ID, &h.Name, &h.Description, &periodicity, &createdAt); err != nil {
		return models.Habit{}, err
	}

	p, err := period.Parse(periodicity)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %s: %w", h.ID, err)
	}
	h.Periodicity = p

	h.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	return h, nil
}
