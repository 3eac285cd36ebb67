// ABOUTME: Weight ledger operations for the KV store.
// ABOUTME: Deletes leave a tombstone so a repeated delete is a no-op.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
)

// tombstone records a deleted weight and the exercise that owned it.
type tombstone struct {
	ID         uuid.UUID `json:"id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	DeletedAt  time.Time `json:"deleted_at"`
}

// AppendWeight stores a new weight record. The exercise must exist.
func (s *Store) AppendWeight(w *models.Weight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.exists(ExercisePrefix + w.ExerciseID.String())
	if err != nil {
		return fmt.Errorf("append weight: %w", err)
	}
	if !ok {
		return notFound("exercise", w.ExerciseID.String())
	}

	key := WeightPrefix + w.ID.String()
	ok, err = s.exists(key)
	if err != nil {
		return fmt.Errorf("append weight: %w", err)
	}
	if ok {
		return violation("weight %s already exists", w.ID)
	}
	return s.put(key, w)
}

// GetWeight retrieves a weight record by ID or ID prefix.
func (s *Store) GetWeight(idOrPrefix string) (*models.Weight, error) {
	key, err := s.resolve(WeightPrefix, "weight", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return getJSON[models.Weight](s, key, "weight")
}

// UpdateWeight rewrites amount, reps and sets of one record.
// CreatedAt is kept so the record keeps its place in the ledger.
func (s *Store) UpdateWeight(w *models.Weight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := WeightPrefix + w.ID.String()
	existing, err := getJSON[models.Weight](s, key, "weight")
	if err != nil {
		return err
	}
	if existing.ExerciseID != w.ExerciseID {
		return notFound("weight", w.ID.String())
	}

	w.UpdatedAt = time.Now()
	existing.Amount = w.Amount
	existing.Reps = w.Reps
	existing.Sets = w.Sets
	existing.UpdatedAt = w.UpdatedAt
	return s.put(key, existing)
}

// DeleteWeight removes exactly one record of exerciseID's ledger.
// Deleting an already deleted record of the same exercise is a no-op;
// an unknown record, or one owned by another exercise, is ErrNotFound.
func (s *Store) DeleteWeight(exerciseID, weightID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := WeightPrefix + weightID.String()
	w, err := getJSON[models.Weight](s, key, "weight")
	if errors.Is(err, storage.ErrNotFound) {
		t, tombErr := getJSON[tombstone](s, TombPrefix+weightID.String(), "weight")
		if tombErr != nil {
			return tombErr
		}
		if t.ExerciseID != exerciseID {
			return notFound("weight", weightID.String())
		}
		return nil
	}
	if err != nil {
		return err
	}
	if w.ExerciseID != exerciseID {
		return notFound("weight", weightID.String())
	}

	tomb, err := json.Marshal(&tombstone{
		ID:         weightID,
		ExerciseID: exerciseID,
		DeletedAt:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("delete weight: tombstone: %w", err)
	}

	// The tombstone and the removal land together or not at all.
	var b Batch
	b.Set([]byte(TombPrefix+weightID.String()), tomb)
	b.Delete([]byte(key))
	if err := s.engine.Apply(&b); err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}
	return nil
}

// ListWeights returns up to limit records of an exercise, newest first.
// A limit of 0 or less returns the whole ledger.
func (s *Store) ListWeights(exerciseID uuid.UUID, limit int) ([]*models.Weight, error) {
	all, err := listJSON[models.Weight](s, WeightPrefix)
	if err != nil {
		return nil, err
	}

	var weights []*models.Weight
	for _, w := range all {
		if w.ExerciseID == exerciseID {
			weights = append(weights, w)
		}
	}
	sort.Slice(weights, func(i, j int) bool { return weights[i].Newer(weights[j]) })

	if limit > 0 && len(weights) > limit {
		weights = weights[:limit]
	}
	return weights, nil
}

// LatestWeight returns the newest record of an exercise's ledger.
func (s *Store) LatestWeight(exerciseID uuid.UUID) (*models.Weight, error) {
	weights, err := s.ListWeights(exerciseID, 0)
	if err != nil {
		return nil, err
	}
	if len(weights) == 0 {
		return nil, notFound("weight history for exercise", exerciseID.String())
	}
	return weights[0], nil
}
