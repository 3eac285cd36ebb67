// ABOUTME: Tests for Weight model builders and ledger ordering.
// ABOUTME: Covers optional reps/sets and the timestamp/ID tie-break.
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewWeight(t *testing.T) {
	exerciseID := uuid.New()
	w := NewWeight(exerciseID, 62.5)

	if w.ExerciseID != exerciseID {
		t.Error("expected ExerciseID to match")
	}
	if w.Amount != 62.5 {
		t.Errorf("Amount = %f, want 62.5", w.Amount)
	}
	if w.Reps != nil || w.Sets != nil {
		t.Error("expected reps and sets to be absent")
	}
	if w.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestWeightWithZeroReps(t *testing.T) {
	w := NewWeight(uuid.New(), 20).WithReps(0).WithSets(3)

	if w.Reps == nil || *w.Reps != 0 {
		t.Error("expected zero reps to be present")
	}
	if w.Sets == nil || *w.Sets != 3 {
		t.Error("expected Sets to be 3")
	}
}

func TestWeightNewer(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	a := NewWeight(uuid.New(), 60).WithCreatedAt(t1)
	b := NewWeight(uuid.New(), 62.5).WithCreatedAt(t2)
	if !b.Newer(a) || a.Newer(b) {
		t.Error("expected later CreatedAt to be newer")
	}

	low := &Weight{ID: uuid.MustParse("00000000-0000-4000-8000-000000000001"), CreatedAt: t1}
	high := &Weight{ID: uuid.MustParse("ffffffff-0000-4000-8000-000000000001"), CreatedAt: t1}
	if !high.Newer(low) || low.Newer(high) {
		t.Error("expected larger ID to win a timestamp tie")
	}
}
