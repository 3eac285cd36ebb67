// ABOUTME: Weight model, one entry of an exercise's append-only ledger.
// ABOUTME: Reps and sets are optional; absent is distinct from zero.
package models

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// Weight is a single weight/rep/set record for an exercise.
type Weight struct {
	ID         uuid.UUID `json:"id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	Amount     float64   `json:"amount"`
	Reps       *int      `json:"reps,omitempty"`
	Sets       *int      `json:"sets,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewWeight creates a new Weight with generated UUID and current timestamp.
func NewWeight(exerciseID uuid.UUID, amount float64) *Weight {
	now := time.Now()
	return &Weight{
		ID:         uuid.New(),
		ExerciseID: exerciseID,
		Amount:     amount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// WithReps sets the rep count.
func (w *Weight) WithReps(reps int) *Weight {
	w.Reps = &reps
	return w
}

// WithSets sets the set count.
func (w *Weight) WithSets(sets int) *Weight {
	w.Sets = &sets
	return w
}

// WithCreatedAt sets a custom created_at timestamp.
func (w *Weight) WithCreatedAt(t time.Time) *Weight {
	w.CreatedAt = t
	w.UpdatedAt = t
	return w
}

// Newer reports whether w comes after other in ledger order.
// A later CreatedAt wins; equal timestamps fall back to the larger ID.
func (w *Weight) Newer(other *Weight) bool {
	if !w.CreatedAt.Equal(other.CreatedAt) {
		return w.CreatedAt.After(other.CreatedAt)
	}
	return bytes.Compare(w.ID[:], other.ID[:]) > 0
}
