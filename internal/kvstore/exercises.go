// ABOUTME: Exercise operations for the KV store.
// ABOUTME: Deleting an exercise removes its links, weights and tombstones.
package kvstore

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/liftlog/internal/models"
)

// CreateExercise stores a new exercise. Names are unique.
func (s *Store) CreateExercise(e *models.Exercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exercises, err := listJSON[models.Exercise](s, ExercisePrefix)
	if err != nil {
		return err
	}
	for _, existing := range exercises {
		if existing.ID == e.ID {
			return violation("exercise %s already exists", e.ID)
		}
		if existing.Name == e.Name {
			return violation("exercise %q already exists", e.Name)
		}
	}
	return s.put(ExercisePrefix+e.ID.String(), e)
}

// GetExercise retrieves an exercise by ID or ID prefix.
func (s *Store) GetExercise(idOrPrefix string) (*models.Exercise, error) {
	key, err := s.resolve(ExercisePrefix, "exercise", idOrPrefix)
	if err != nil {
		return nil, err
	}
	return getJSON[models.Exercise](s, key, "exercise")
}

// GetExerciseByName retrieves an exercise by name, ignoring case.
// An exact-case match wins over a case-folded one.
func (s *Store) GetExerciseByName(name string) (*models.Exercise, error) {
	exercises, err := listJSON[models.Exercise](s, ExercisePrefix)
	if err != nil {
		return nil, err
	}
	var folded *models.Exercise
	for _, e := range exercises {
		if e.Name == name {
			return e, nil
		}
		if folded == nil && strings.EqualFold(e.Name, name) {
			folded = e
		}
	}
	if folded == nil {
		return nil, notFound("exercise", name)
	}
	return folded, nil
}

// ListExercises returns all exercises ordered by name.
func (s *Store) ListExercises() ([]*models.Exercise, error) {
	exercises, err := listJSON[models.Exercise](s, ExercisePrefix)
	if err != nil {
		return nil, err
	}
	sort.Slice(exercises, func(i, j int) bool { return exercises[i].Name < exercises[j].Name })
	return exercises, nil
}

// DeleteExercise removes an exercise together with its links and weights.
func (s *Store) DeleteExercise(idOrPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.resolve(ExercisePrefix, "exercise", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	exerciseID := extractID(key)
	keys := []string{key}

	links, err := s.engine.Keys([]byte(DayExPrefix))
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	for _, k := range links {
		if strings.HasSuffix(string(k), ":"+exerciseID) {
			keys = append(keys, string(k))
		}
	}

	weights, err := listJSON[models.Weight](s, WeightPrefix)
	if err != nil {
		return err
	}
	for _, w := range weights {
		if w.ExerciseID.String() == exerciseID {
			keys = append(keys, WeightPrefix+w.ID.String())
		}
	}

	tombs, err := listJSON[tombstone](s, TombPrefix)
	if err != nil {
		return err
	}
	for _, t := range tombs {
		if t.ExerciseID.String() == exerciseID {
			keys = append(keys, TombPrefix+t.ID.String())
		}
	}

	if err := s.engine.Delete(keysOf(keys)...); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}
