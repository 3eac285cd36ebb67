// ABOUTME: User, Routine, Day, Exercise and DayExercise models.
// ABOUTME: Ownership is by foreign key; nested slices are only populated on reads.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User owns zero or more routines. Username is unique.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with generated UUID and current timestamp.
func NewUser(username string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Routine belongs to exactly one user. (Name, UserID) is unique.
type Routine struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Days      []Day     `json:"days,omitempty"` // Populated when fetching nested routines, weekday order
}

// NewRoutine creates a new Routine owned by userID.
func NewRoutine(userID uuid.UUID, name string) *Routine {
	now := time.Now()
	return &Routine{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Day belongs to exactly one routine. (Weekday, RoutineID) is unique.
type Day struct {
	ID        uuid.UUID  `json:"id"`
	RoutineID uuid.UUID  `json:"routine_id"`
	Weekday   Weekday    `json:"weekday"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Exercises []Exercise `json:"exercises,omitempty"` // Populated through DayExercise links
}

// NewDay creates a new Day for routineID on the given weekday.
func NewDay(routineID uuid.UUID, weekday Weekday) *Day {
	now := time.Now()
	return &Day{
		ID:        uuid.New(),
		RoutineID: routineID,
		Weekday:   weekday,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Exercise is global and not owned by a routine or user. Name is unique.
type Exercise struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewExercise creates a new Exercise.
func NewExercise(name string) *Exercise {
	now := time.Now()
	return &Exercise{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DayExercise links an exercise to a day. The (DayID, ExerciseID) pair is its identity.
type DayExercise struct {
	DayID      uuid.UUID `json:"day_id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewDayExercise creates a link between dayID and exerciseID.
func NewDayExercise(dayID, exerciseID uuid.UUID) *DayExercise {
	now := time.Now()
	return &DayExercise{
		DayID:      dayID,
		ExerciseID: exerciseID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// DayFor returns the routine's day for weekday, if any.
func (r *Routine) DayFor(weekday Weekday) (*Day, bool) {
	for i := range r.Days {
		if r.Days[i].Weekday == weekday {
			return &r.Days[i], true
		}
	}
	return nil, false
}
