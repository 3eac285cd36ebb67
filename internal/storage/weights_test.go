// ABOUTME: Tests for the SQLite weight ledger.
// ABOUTME: Covers ordering, tie-breaks, optional reps/sets and idempotent deletes.
package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
)

func setupExercise(t *testing.T, db *DB, name string) *models.Exercise {
	t.Helper()
	e := models.NewExercise(name)
	if err := db.CreateExercise(e); err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	return e
}

func TestAppendWeightUnknownExercise(t *testing.T) {
	db := setupTestDB(t)

	err := db.AppendWeight(models.NewWeight(uuid.New(), 50))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListWeightsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	squat := setupExercise(t, db, "Squat")

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, amount := range []float64{100, 105, 110} {
		w := models.NewWeight(squat.ID, amount).WithCreatedAt(base.Add(time.Duration(i) * 24 * time.Hour))
		if err := db.AppendWeight(w); err != nil {
			t.Fatalf("AppendWeight failed: %v", err)
		}
	}

	weights, err := db.ListWeights(squat.ID, 0)
	if err != nil {
		t.Fatalf("ListWeights failed: %v", err)
	}
	if len(weights) != 3 {
		t.Fatalf("Expected 3 weights, got %d", len(weights))
	}
	if weights[0].Amount != 110 || weights[2].Amount != 100 {
		t.Errorf("Expected newest first, got %v, %v, %v", weights[0].Amount, weights[1].Amount, weights[2].Amount)
	}

	limited, err := db.ListWeights(squat.ID, 2)
	if err != nil {
		t.Fatalf("ListWeights with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 weights, got %d", len(limited))
	}
}

func TestLatestWeightTieBreaksOnID(t *testing.T) {
	db := setupTestDB(t)
	squat := setupExercise(t, db, "Squat")

	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	low := models.NewWeight(squat.ID, 100).WithCreatedAt(at)
	high := models.NewWeight(squat.ID, 90).WithCreatedAt(at)
	low.ID = uuid.MustParse("00000000-0000-4000-8000-000000000001")
	high.ID = uuid.MustParse("ffffffff-0000-4000-8000-000000000001")

	// Insert the larger ID first so insertion order cannot decide.
	for _, w := range []*models.Weight{high, low} {
		if err := db.AppendWeight(w); err != nil {
			t.Fatalf("AppendWeight failed: %v", err)
		}
	}

	latest, err := db.LatestWeight(squat.ID)
	if err != nil {
		t.Fatalf("LatestWeight failed: %v", err)
	}
	if latest.ID != high.ID {
		t.Errorf("Expected tie broken by larger ID, got %v", latest.ID)
	}
}

func TestLatestWeightEmpty(t *testing.T) {
	db := setupTestDB(t)
	squat := setupExercise(t, db, "Squat")

	_, err := db.LatestWeight(squat.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for empty history, got %v", err)
	}
}

func TestWeightOptionalRepsAndSets(t *testing.T) {
	db := setupTestDB(t)
	squat := setupExercise(t, db, "Squat")

	bare := models.NewWeight(squat.ID, 60)
	zero := models.NewWeight(squat.ID, 60).WithReps(0).WithSets(0)
	for _, w := range []*models.Weight{bare, zero} {
		if err := db.AppendWeight(w); err != nil {
			t.Fatalf("AppendWeight failed: %v", err)
		}
	}

	got, err := db.GetWeight(bare.ID.String())
	if err != nil {
		t.Fatalf("GetWeight failed: %v", err)
	}
	if got.Reps != nil || got.Sets != nil {
		t.Errorf("Absent reps/sets should stay nil, got %v/%v", got.Reps, got.Sets)
	}

	got, err = db.GetWeight(zero.ID.String())
	if err != nil {
		t.Fatalf("GetWeight failed: %v", err)
	}
	if got.Reps == nil || *got.Reps != 0 || got.Sets == nil || *got.Sets != 0 {
		t.Errorf("Zero reps/sets should round-trip as zero, got %v/%v", got.Reps, got.Sets)
	}
}

func TestUpdateWeightKeepsLedgerPosition(t *testing.T) {
	db := setupTestDB(t)
	squat := setupExercise(t, db, "Squat")

	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	w := models.NewWeight(squat.ID, 100).WithCreatedAt(at)
	if err := db.AppendWeight(w); err != nil {
		t.Fatalf("AppendWeight failed: %v", err)
	}

	w.Amount = 102.5
	w.WithReps(5)
	if err := db.UpdateWeight(w); err != nil {
		t.Fatalf("UpdateWeight failed: %v", err)
	}

	got, err := db.GetWeight(w.ID.String())
	if err != nil {
		t.Fatalf("GetWeight failed: %v", err)
	}
	if got.Amount != 102.5 || got.Reps == nil || *got.Reps != 5 {
		t.Errorf("Update not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(at) {
		t.Errorf("CreatedAt changed: got %v, want %v", got.CreatedAt, at)
	}

	ghost := models.NewWeight(squat.ID, 1)
	if err := db.UpdateWeight(ghost); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteWeightRemovesExactlyOne(t *testing.T) {
	db := setupTestDB(t)
	squat := setupExercise(t, db, "Squat")

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	older := models.NewWeight(squat.ID, 100).WithCreatedAt(base)
	newer := models.NewWeight(squat.ID, 105).WithCreatedAt(base.Add(time.Hour))
	for _, w := range []*models.Weight{older, newer} {
		if err := db.AppendWeight(w); err != nil {
			t.Fatalf("AppendWeight failed: %v", err)
		}
	}

	if err := db.DeleteWeight(squat.ID, newer.ID); err != nil {
		t.Fatalf("DeleteWeight failed: %v", err)
	}

	latest, err := db.LatestWeight(squat.ID)
	if err != nil {
		t.Fatalf("LatestWeight failed: %v", err)
	}
	if latest.ID != older.ID {
		t.Errorf("Latest should fall back to the older record, got %v", latest.Amount)
	}
}

func TestDeleteWeightIdempotent(t *testing.T) {
	db := setupTestDB(t)
	squat := setupExercise(t, db, "Squat")

	w := models.NewWeight(squat.ID, 100)
	if err := db.AppendWeight(w); err != nil {
		t.Fatalf("AppendWeight failed: %v", err)
	}

	if err := db.DeleteWeight(squat.ID, w.ID); err != nil {
		t.Fatalf("First DeleteWeight failed: %v", err)
	}
	if err := db.DeleteWeight(squat.ID, w.ID); err != nil {
		t.Errorf("Second DeleteWeight should be a no-op, got %v", err)
	}
}

func TestDeleteWeightNotFound(t *testing.T) {
	db := setupTestDB(t)
	squat := setupExercise(t, db, "Squat")
	bench := setupExercise(t, db, "Bench")

	if err := db.DeleteWeight(squat.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown weight, got %v", err)
	}

	w := models.NewWeight(bench.ID, 60)
	if err := db.AppendWeight(w); err != nil {
		t.Fatalf("AppendWeight failed: %v", err)
	}
	if err := db.DeleteWeight(squat.ID, w.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for weight of another exercise, got %v", err)
	}
	if _, err := db.GetWeight(w.ID.String()); err != nil {
		t.Errorf("Bench weight should be untouched: %v", err)
	}

	if err := db.DeleteWeight(bench.ID, w.ID); err != nil {
		t.Fatalf("DeleteWeight failed: %v", err)
	}
	if err := db.DeleteWeight(squat.ID, w.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Repeat delete under the wrong exercise should be ErrNotFound, got %v", err)
	}
}
