// ABOUTME: Tests for User, Routine, Day and Exercise constructors.
// ABOUTME: Validates ownership IDs and DayFor lookup.
package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewRoutine(t *testing.T) {
	u := NewUser("sam")
	r := NewRoutine(u.ID, "Push Pull Legs")

	if r.UserID != u.ID {
		t.Error("expected UserID to match")
	}
	if r.Name != "Push Pull Legs" {
		t.Errorf("Name = %s, want Push Pull Legs", r.Name)
	}
	if r.CreatedAt.IsZero() || r.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestRoutineDayFor(t *testing.T) {
	r := NewRoutine(uuid.New(), "A")
	r.Days = []Day{*NewDay(r.ID, Monday), *NewDay(r.ID, Wednesday)}

	d, ok := r.DayFor(Wednesday)
	if !ok {
		t.Fatal("expected a Wednesday day")
	}
	if d.Weekday != Wednesday || d.RoutineID != r.ID {
		t.Errorf("unexpected day %+v", d)
	}

	if _, ok := r.DayFor(Friday); ok {
		t.Error("expected no Friday day")
	}
}

func TestNewDayExercise(t *testing.T) {
	day := NewDay(uuid.New(), Friday)
	ex := NewExercise("Bench Press")
	link := NewDayExercise(day.ID, ex.ID)

	if link.DayID != day.ID || link.ExerciseID != ex.ID {
		t.Error("expected link to reference day and exercise")
	}
}
