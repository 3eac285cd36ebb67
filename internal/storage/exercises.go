// ABOUTME: Exercise CRUD operations for SQLite storage.
// ABOUTME: Exercises are global; deleting one removes its links and weight history.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
)

// CreateExercise stores a new exercise. Names are unique.
func (d *DB) CreateExercise(e *models.Exercise) error {
	_, err := d.db.Exec(`
		INSERT INTO exercises (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		e.ID.String(), e.Name, formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return violation("exercise %q already exists", e.Name)
		}
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

// GetExercise retrieves an exercise by ID or ID prefix.
func (d *DB) GetExercise(idOrPrefix string) (*models.Exercise, error) {
	id, err := d.resolveID("exercises", "exercise", idOrPrefix)
	if err != nil {
		return nil, err
	}
	e, err := scanExercise(d.db.QueryRow(`
		SELECT id, name, created_at, updated_at FROM exercises WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("exercise", idOrPrefix)
	}
	return e, err
}

// GetExerciseByName retrieves an exercise by name, ignoring case.
func (d *DB) GetExerciseByName(name string) (*models.Exercise, error) {
	e, err := scanExercise(d.db.QueryRow(`
		SELECT id, name, created_at, updated_at FROM exercises
		WHERE LOWER(name) = LOWER(?)
		ORDER BY name = ? DESC
		LIMIT 1`, name, name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("exercise", name)
	}
	return e, err
}

// ListExercises returns all exercises ordered by name.
func (d *DB) ListExercises() ([]*models.Exercise, error) {
	rows, err := d.db.Query(`SELECT id, name, created_at, updated_at FROM exercises ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []*models.Exercise
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// DeleteExercise removes an exercise together with its links and weights.
func (d *DB) DeleteExercise(idOrPrefix string) error {
	id, err := d.resolveID("exercises", "exercise", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return d.deleteByID("exercises", "exercise", id)
}

func scanExercise(row rowScanner) (*models.Exercise, error) {
	var e models.Exercise
	var idStr, createdAt, updatedAt string

	if err := row.Scan(&idStr, &e.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}
