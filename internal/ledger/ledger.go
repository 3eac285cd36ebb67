// ABOUTME: Weight history engine: the append-only per-exercise ledger.
// ABOUTME: Answers "current value" queries straight from the store, never from a cached latest.
package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/clock"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=ledger_test

type weightStore interface {
	GetExercise(idOrPrefix string) (*models.Exercise, error)
	AppendWeight(w *models.Weight) error
	DeleteWeight(exerciseID, weightID uuid.UUID) error
	ListWeights(exerciseID uuid.UUID, limit int) ([]*models.Weight, error)
	LatestWeight(exerciseID uuid.UUID) (*models.Weight, error)
}

// Ledger appends, reads and deletes weight records.
type Ledger struct {
	store weightStore
	clock clock.Clock
}

// New returns a Ledger over store, stamping records with clk.
func New(store weightStore, clk clock.Clock) *Ledger {
	return &Ledger{store: store, clock: clk}
}

// Append records a new weight for exerciseID at the clock's now.
// Reps and sets may be nil; nil is kept distinct from zero.
func (l *Ledger) Append(exerciseID uuid.UUID, amount float64, reps, sets *int) (*models.Weight, error) {
	if _, err := l.store.GetExercise(exerciseID.String()); err != nil {
		return nil, fmt.Errorf("append weight: %w", err)
	}

	w := models.NewWeight(exerciseID, amount).WithCreatedAt(l.clock.Now())
	if reps != nil {
		w.WithReps(*reps)
	}
	if sets != nil {
		w.WithSets(*sets)
	}

	if err := l.store.AppendWeight(w); err != nil {
		return nil, fmt.Errorf("append weight: %w", err)
	}

	log.WithFields(log.Fields{
		"exercise_id": exerciseID,
		"weight_id":   w.ID,
		"amount":      amount,
	}).Debug("weight appended")
	return w, nil
}

// Latest returns the newest record of exerciseID. ok is false when the
// exercise exists but has no history; an unknown exercise is ErrNotFound.
func (l *Ledger) Latest(exerciseID uuid.UUID) (w models.Weight, ok bool, err error) {
	latest, err := l.store.LatestWeight(exerciseID)
	if err == nil {
		return copyWeight(latest), true, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Weight{}, false, fmt.Errorf("latest weight: %w", err)
	}
	if _, err := l.store.GetExercise(exerciseID.String()); err != nil {
		return models.Weight{}, false, fmt.Errorf("latest weight: %w", err)
	}
	return models.Weight{}, false, nil
}

// Delete removes exactly one record of exerciseID's ledger.
func (l *Ledger) Delete(exerciseID, weightID uuid.UUID) error {
	if err := l.store.DeleteWeight(exerciseID, weightID); err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}
	log.WithFields(log.Fields{
		"exercise_id": exerciseID,
		"weight_id":   weightID,
	}).Debug("weight deleted")
	return nil
}

// Recent returns up to n records, newest first, as values detached from the store.
func (l *Ledger) Recent(exerciseID uuid.UUID, n int) ([]models.Weight, error) {
	if n <= 0 {
		return nil, nil
	}
	weights, err := l.store.ListWeights(exerciseID, n)
	if err != nil {
		return nil, fmt.Errorf("recent weights: %w", err)
	}

	out := make([]models.Weight, len(weights))
	for i, w := range weights {
		out[i] = copyWeight(w)
	}
	return out, nil
}

func copyWeight(w *models.Weight) models.Weight {
	c := *w
	if w.Reps != nil {
		r := *w.Reps
		c.Reps = &r
	}
	if w.Sets != nil {
		s := *w.Sets
		c.Sets = &s
	}
	return c
}
