// ABOUTME: Progression session: nudge a weight up or down, then commit it once.
// ABOUTME: Adjustments stay local until Commit appends a single ledger record.
package progression

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
	log "github.com/sirupsen/logrus"
)

// Step is the fixed increment applied by Adjust.
const Step = 2.5

// Adjust moves v one Step up or down. Decrements clamp at zero.
func Adjust(v float64, increasing bool) float64 {
	if increasing {
		return v + Step
	}
	return math.Max(0, v-Step)
}

// RoundHalf rounds v to the nearest 0.5 for display.
func RoundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

// State is the session's position in its Idle/Adjusting cycle.
type State int

const (
	Idle State = iota
	Adjusting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Adjusting:
		return "adjusting"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=progression_test

type weightLedger interface {
	Append(exerciseID uuid.UUID, amount float64, reps, sets *int) (*models.Weight, error)
	Latest(exerciseID uuid.UUID) (models.Weight, bool, error)
}

// Session holds one exercise's displayed value and any uncommitted change.
// A Session is used from a single goroutine.
type Session struct {
	ledger     weightLedger
	exerciseID uuid.UUID
	value      float64
	reps       *int
	sets       *int
	state      State
	committed  *models.Weight
}

// NewSession returns an Idle session displaying current.
func NewSession(l weightLedger, exerciseID uuid.UUID, current float64) *Session {
	return &Session{ledger: l, exerciseID: exerciseID, value: current}
}

// Start returns an Idle session seeded from the exercise's latest record,
// or from def when it has no history.
func Start(l weightLedger, exerciseID uuid.UUID, def float64) (*Session, error) {
	latest, ok, err := l.Latest(exerciseID)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	s := NewSession(l, exerciseID, def)
	if ok {
		s.value = latest.Amount
		s.committed = &latest
	}
	return s, nil
}

// ExerciseID returns the exercise the session is bound to.
func (s *Session) ExerciseID() uuid.UUID { return s.exerciseID }

// Value returns the displayed quantity.
func (s *Session) Value() float64 { return s.value }

// State returns Idle or Adjusting.
func (s *Session) State() State { return s.state }

// Reps returns the pending rep count, nil if none.
func (s *Session) Reps() *int { return s.reps }

// Sets returns the pending set count, nil if none.
func (s *Session) Sets() *int { return s.sets }

// Committed returns the record backing the value while Idle, if any.
func (s *Session) Committed() *models.Weight { return s.committed }

// Increment raises the local value by one Step.
func (s *Session) Increment() {
	s.value = Adjust(s.value, true)
	s.state = Adjusting
}

// Decrement lowers the local value by one Step, not below zero.
func (s *Session) Decrement() {
	s.value = Adjust(s.value, false)
	s.state = Adjusting
}

// SetReps records pending reps. nil clears them.
func (s *Session) SetReps(reps *int) {
	s.reps = reps
	s.state = Adjusting
}

// SetSets records pending sets. nil clears them.
func (s *Session) SetSets(sets *int) {
	s.sets = sets
	s.state = Adjusting
}

// Reset rebinds the session to exerciseID showing external, dropping any
// uncommitted adjustment.
func (s *Session) Reset(exerciseID uuid.UUID, external float64) {
	if s.state == Adjusting {
		log.WithField("exercise_id", s.exerciseID).Debug("discarding uncommitted adjustment")
	}
	s.exerciseID = exerciseID
	s.value = external
	s.reps = nil
	s.sets = nil
	s.committed = nil
	s.state = Idle
}

// Commit appends the displayed value with any pending reps and sets.
// On failure the session keeps its state and local value so the caller
// can retry.
func (s *Session) Commit() (*models.Weight, error) {
	w, err := s.ledger.Append(s.exerciseID, s.value, s.reps, s.sets)
	if err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	s.value = w.Amount
	s.reps = nil
	s.sets = nil
	s.committed = w
	s.state = Idle
	return w, nil
}
