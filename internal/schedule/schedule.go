// ABOUTME: Schedule resolver: picks the day to train and its routine.
// ABOUTME: Pure over a caller-supplied weekday and routine snapshot; never reads a clock.
package schedule

import (
	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
)

// Outcome tags a Result.
type Outcome string

const (
	// Workout means Result carries both a Routine and a Day.
	Workout Outcome = "workout"
	// NoDays means the chosen Routine has no days.
	NoDays Outcome = "no-days"
	// NoRoutines means the user has no routines at all.
	NoRoutines Outcome = "no-routines"
)

// Source records which rule produced a Result.
type Source string

const (
	SourceDay      Source = "selected-day"
	SourceRoutine  Source = "selected-routine"
	SourceToday    Source = "today"
	SourceFallback Source = "fallback"
	SourceNone     Source = "none"
)

// Selection is an optional explicit choice by the caller.
type Selection struct {
	RoutineID *uuid.UUID
	DayID     *uuid.UUID
}

// Result is the resolver's tagged output. Routine is nil only for
// NoRoutines; Day is set only for Workout.
type Result struct {
	Outcome Outcome
	Source  Source
	Routine *models.Routine
	Day     *models.Day
}

// Resolve chooses what to train on today. Rules, first match wins:
//
//  1. a selected Day, with its parent Routine, whatever its weekday
//  2. a selected Routine: its Day for today, else its first Day by weekday, else NoDays
//  3. the first Routine in store order with a Day for today
//  4. the first Routine's first Day by weekday, else NoDays for it
//  5. NoRoutines
//
// A selection whose ID is not among routines is ignored. routines is not modified.
func Resolve(today models.Weekday, routines []*models.Routine, sel Selection) Result {
	if sel.DayID != nil {
		for _, r := range routines {
			for i := range r.Days {
				if r.Days[i].ID == *sel.DayID {
					return workout(r, &r.Days[i], SourceDay)
				}
			}
		}
	}

	if sel.RoutineID != nil {
		for _, r := range routines {
			if r.ID == *sel.RoutineID {
				return inRoutine(today, r, SourceRoutine)
			}
		}
	}

	for _, r := range routines {
		if d, ok := r.DayFor(today); ok {
			return workout(r, d, SourceToday)
		}
	}

	if len(routines) > 0 {
		return inRoutine(today, routines[0], SourceFallback)
	}

	return Result{Outcome: NoRoutines, Source: SourceNone}
}

// inRoutine prefers today's day, then the first day in weekday order.
func inRoutine(today models.Weekday, r *models.Routine, src Source) Result {
	if d, ok := r.DayFor(today); ok {
		return workout(r, d, src)
	}
	if first := FirstDay(r); first != nil {
		return workout(r, first, src)
	}
	return Result{Outcome: NoDays, Source: src, Routine: r}
}

func workout(r *models.Routine, d *models.Day, src Source) Result {
	return Result{Outcome: Workout, Source: src, Routine: r, Day: d}
}

// FirstDay returns r's earliest day by weekday, or nil if it has none.
func FirstDay(r *models.Routine) *models.Day {
	var first *models.Day
	for i := range r.Days {
		if first == nil || r.Days[i].Weekday.Order() < first.Weekday.Order() {
			first = &r.Days[i]
		}
	}
	return first
}

// SortedDays returns a copy of r's days in weekday order.
func SortedDays(r *models.Routine) []models.Day {
	days := make([]models.Day, len(r.Days))
	copy(days, r.Days)
	models.SortDays(days)
	return days
}
