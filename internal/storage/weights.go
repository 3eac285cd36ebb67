// ABOUTME: Weight ledger operations for SQLite storage.
// ABOUTME: Appends never touch existing rows; deletes leave a tombstone for idempotency.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
)

const weightColumns = `id, exercise_id, amount, reps, sets, created_at, updated_at`

// AppendWeight stores a new weight record. The exercise must exist.
func (d *DB) AppendWeight(w *models.Weight) error {
	_, err := d.db.Exec(`
		INSERT INTO weights (`+weightColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID.String(), w.ExerciseID.String(), w.Amount, w.Reps, w.Sets,
		formatTime(w.CreatedAt), formatTime(w.UpdatedAt),
	)
	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err):
		return notFound("exercise", w.ExerciseID.String())
	case isUniqueViolation(err):
		return violation("weight %s already exists", w.ID)
	default:
		return fmt.Errorf("append weight: %w", err)
	}
}

// GetWeight retrieves a weight record by ID or ID prefix.
func (d *DB) GetWeight(idOrPrefix string) (*models.Weight, error) {
	id, err := d.resolveID("weights", "weight", idOrPrefix)
	if err != nil {
		return nil, err
	}
	w, err := scanWeight(d.db.QueryRow(`SELECT `+weightColumns+` FROM weights WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("weight", idOrPrefix)
	}
	return w, err
}

// UpdateWeight rewrites amount, reps and sets of one record.
// CreatedAt is kept so the record keeps its place in the ledger.
func (d *DB) UpdateWeight(w *models.Weight) error {
	w.UpdatedAt = time.Now()
	result, err := d.db.Exec(`
		UPDATE weights SET amount = ?, reps = ?, sets = ?, updated_at = ?
		WHERE id = ? AND exercise_id = ?`,
		w.Amount, w.Reps, w.Sets, formatTime(w.UpdatedAt), w.ID.String(), w.ExerciseID.String(),
	)
	if err != nil {
		return fmt.Errorf("update weight: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update weight: %w", err)
	}
	if affected == 0 {
		return notFound("weight", w.ID.String())
	}
	return nil
}

// DeleteWeight removes exactly one record of exerciseID's ledger.
// Deleting an already deleted record of the same exercise is a no-op;
// an unknown record, or one owned by another exercise, is ErrNotFound.
func (d *DB) DeleteWeight(exerciseID, weightID uuid.UUID) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("delete weight: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var owner string
	err = tx.QueryRow(`SELECT exercise_id FROM weights WHERE id = ?`, weightID.String()).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		err = tx.QueryRow(`SELECT exercise_id FROM weight_tombstones WHERE id = ?`, weightID.String()).Scan(&owner)
		if errors.Is(err, sql.ErrNoRows) || (err == nil && owner != exerciseID.String()) {
			return notFound("weight", weightID.String())
		}
		if err != nil {
			return fmt.Errorf("delete weight: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("delete weight: %w", err)
	case owner != exerciseID.String():
		return notFound("weight", weightID.String())
	}

	if _, err := tx.Exec(`DELETE FROM weights WHERE id = ?`, weightID.String()); err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT INTO weight_tombstones (id, exercise_id, deleted_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		weightID.String(), exerciseID.String(), formatTime(time.Now())); err != nil {
		return fmt.Errorf("delete weight: tombstone: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete weight: commit: %w", err)
	}
	return nil
}

// ListWeights returns up to limit records of an exercise, newest first.
// A limit of 0 or less returns the whole ledger.
func (d *DB) ListWeights(exerciseID uuid.UUID, limit int) ([]*models.Weight, error) {
	query := `SELECT ` + weightColumns + `
		FROM weights
		WHERE exercise_id = ?
		ORDER BY created_at DESC, id DESC`
	args := []any{exerciseID.String()}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	defer rows.Close()

	var weights []*models.Weight
	for rows.Next() {
		w, err := scanWeight(rows)
		if err != nil {
			return nil, err
		}
		weights = append(weights, w)
	}
	return weights, rows.Err()
}

// LatestWeight returns the newest record of an exercise's ledger.
func (d *DB) LatestWeight(exerciseID uuid.UUID) (*models.Weight, error) {
	weights, err := d.ListWeights(exerciseID, 1)
	if err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		return nil, notFound("weight history for exercise", exerciseID.String())
	}
	return weights[0], nil
}

func scanWeight(row rowScanner) (*models.Weight, error) {
	var w models.Weight
	var idStr, exerciseIDStr, createdAt, updatedAt string
	var reps, sets sql.NullInt64

	if err := row.Scan(&idStr, &exerciseIDStr, &w.Amount, &reps, &sets, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan weight: %w", err)
	}

	w.ID, _ = uuid.Parse(idStr)
	w.ExerciseID, _ = uuid.Parse(exerciseIDStr)
	w.CreatedAt = parseTime(createdAt)
	w.UpdatedAt = parseTime(updatedAt)
	if reps.Valid {
		r := int(reps.Int64)
		w.Reps = &r
	}
	if sets.Valid {
		s := int(sets.Int64)
		w.Sets = &s
	}
	return &w, nil
}
