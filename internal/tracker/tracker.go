// ABOUTME: Application service wiring storage, ledger, clock and schedule together.
// ABOUTME: The CLI, MCP server and TUI call only this package and the core packages.
package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/clock"
	"github.com/harperreed/liftlog/internal/ledger"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/progression"
	"github.com/harperreed/liftlog/internal/schedule"
	"github.com/harperreed/liftlog/internal/storage"
	log "github.com/sirupsen/logrus"
)

// Tracker is the entry point for every presentation layer.
type Tracker struct {
	repo   storage.Repository
	ledger *ledger.Ledger
	clock  clock.Clock
}

// New returns a Tracker over repo. A nil clk means the system clock.
func New(repo storage.Repository, clk clock.Clock) *Tracker {
	if clk == nil {
		clk = clock.System{}
	}
	return &Tracker{
		repo:   repo,
		ledger: ledger.New(repo, clk),
		clock:  clk,
	}
}

// Repo returns the underlying repository.
func (t *Tracker) Repo() storage.Repository { return t.repo }

// Ledger returns the weight history engine.
func (t *Tracker) Ledger() *ledger.Ledger { return t.ledger }

// Clock returns the clock used for today and for new records.
func (t *Tracker) Clock() clock.Clock { return t.clock }

// Close closes the repository.
func (t *Tracker) Close() error {
	return t.repo.Close()
}

// EnsureUser returns the user named username, creating it if needed.
func (t *Tracker) EnsureUser(username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("ensure user: %w: username is empty", storage.ErrInvariantViolation)
	}

	u, err := t.repo.GetUserByUsername(username)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	u = models.NewUser(username)
	if err := t.repo.CreateUser(u); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	log.WithField("user_id", u.ID).Info("user created")
	return u, nil
}

// CreateRoutine adds a routine named name for userID.
func (t *Tracker) CreateRoutine(userID uuid.UUID, name string) (*models.Routine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("create routine: %w: name is empty", storage.ErrInvariantViolation)
	}
	r := models.NewRoutine(userID, name)
	if err := t.repo.CreateRoutine(r); err != nil {
		return nil, fmt.Errorf("create routine: %w", err)
	}
	log.WithFields(log.Fields{"routine_id": r.ID, "user_id": userID}).Info("routine created")
	return r, nil
}

// Routines returns userID's routines in store order, nested.
func (t *Tracker) Routines(userID uuid.UUID) ([]*models.Routine, error) {
	routines, err := t.repo.ListRoutinesForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	return routines, nil
}

// RenameRoutine renames the routine matching idOrPrefix.
func (t *Tracker) RenameRoutine(idOrPrefix, name string) (*models.Routine, error) {
	r, err := t.repo.GetRoutine(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("rename routine: %w", err)
	}
	if err := t.repo.RenameRoutine(r.ID, strings.TrimSpace(name)); err != nil {
		return nil, fmt.Errorf("rename routine: %w", err)
	}
	return t.repo.GetRoutine(r.ID.String())
}

// DeleteRoutine removes a routine with its days and their links.
// Exercises and their weights are kept.
func (t *Tracker) DeleteRoutine(idOrPrefix string) error {
	if err := t.repo.DeleteRoutine(idOrPrefix); err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	log.WithField("routine", idOrPrefix).Info("routine deleted")
	return nil
}

// AddDay adds a weekday to the routine matching routineIDOrPrefix.
func (t *Tracker) AddDay(routineIDOrPrefix string, weekday models.Weekday) (*models.Day, error) {
	r, err := t.repo.GetRoutine(routineIDOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("add day: %w", err)
	}
	d := models.NewDay(r.ID, weekday)
	if err := t.repo.CreateDay(d); err != nil {
		return nil, fmt.Errorf("add day: %w", err)
	}
	log.WithFields(log.Fields{"routine_id": r.ID, "day_id": d.ID, "weekday": weekday}).Info("day added")
	return d, nil
}

// RemoveDay deletes a day and its exercise links.
func (t *Tracker) RemoveDay(idOrPrefix string) error {
	if err := t.repo.DeleteDay(idOrPrefix); err != nil {
		return fmt.Errorf("remove day: %w", err)
	}
	return nil
}

// AddExercise creates a new global exercise.
func (t *Tracker) AddExercise(name string) (*models.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("add exercise: %w: name is empty", storage.ErrInvariantViolation)
	}
	e := models.NewExercise(name)
	if err := t.repo.CreateExercise(e); err != nil {
		return nil, fmt.Errorf("add exercise: %w", err)
	}
	log.WithField("exercise_id", e.ID).Info("exercise added")
	return e, nil
}

// EnsureExercise returns the exercise named name, creating it if needed.
func (t *Tracker) EnsureExercise(name string) (*models.Exercise, error) {
	e, err := t.repo.GetExerciseByName(strings.TrimSpace(name))
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("ensure exercise: %w", err)
	}
	return t.AddExercise(name)
}

// FindExercise looks an exercise up by name first, then by ID or prefix.
func (t *Tracker) FindExercise(nameOrID string) (*models.Exercise, error) {
	e, err := t.repo.GetExerciseByName(nameOrID)
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	return t.repo.GetExercise(nameOrID)
}

// LinkExercise puts an exercise on a day. The exercise is found by name or
// ID and created when create is set and no match exists.
func (t *Tracker) LinkExercise(dayIDOrPrefix, exercise string, create bool) (*models.Day, *models.Exercise, error) {
	d, err := t.repo.GetDay(dayIDOrPrefix)
	if err != nil {
		return nil, nil, fmt.Errorf("link exercise: %w", err)
	}

	var e *models.Exercise
	if create {
		e, err = t.EnsureExercise(exercise)
	} else {
		e, err = t.FindExercise(exercise)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("link exercise: %w", err)
	}

	if err := t.repo.LinkExercise(models.NewDayExercise(d.ID, e.ID)); err != nil {
		return nil, nil, fmt.Errorf("link exercise: %w", err)
	}
	log.WithFields(log.Fields{"day_id": d.ID, "exercise_id": e.ID}).Info("exercise linked")
	return d, e, nil
}

// UnlinkExercise takes an exercise off a day. The exercise and its history stay.
func (t *Tracker) UnlinkExercise(dayIDOrPrefix, exercise string) error {
	d, err := t.repo.GetDay(dayIDOrPrefix)
	if err != nil {
		return fmt.Errorf("unlink exercise: %w", err)
	}
	e, err := t.FindExercise(exercise)
	if err != nil {
		return fmt.Errorf("unlink exercise: %w", err)
	}
	if err := t.repo.UnlinkExercise(d.ID, e.ID); err != nil {
		return fmt.Errorf("unlink exercise: %w", err)
	}
	return nil
}

// Select turns optional routine and day ID prefixes into a schedule.Selection.
// Empty strings leave that part unset.
func (t *Tracker) Select(routine, day string) (schedule.Selection, error) {
	var sel schedule.Selection
	if routine != "" {
		r, err := t.repo.GetRoutine(routine)
		if err != nil {
			return sel, fmt.Errorf("select routine: %w", err)
		}
		sel.RoutineID = &r.ID
	}
	if day != "" {
		d, err := t.repo.GetDay(day)
		if err != nil {
			return sel, fmt.Errorf("select day: %w", err)
		}
		sel.DayID = &d.ID
	}
	return sel, nil
}

// Today reads the clock once and resolves what userID trains on that date.
func (t *Tracker) Today(userID uuid.UUID, sel schedule.Selection) (clock.Today, schedule.Result, error) {
	today := clock.TodayFrom(t.clock)
	routines, err := t.repo.ListRoutinesForUser(userID)
	if err != nil {
		return today, schedule.Result{}, fmt.Errorf("resolve today: %w", err)
	}

	res := schedule.Resolve(today.Weekday, routines, sel)
	entry := log.WithFields(log.Fields{
		"user_id": userID,
		"outcome": res.Outcome,
		"source":  res.Source,
	})
	if res.Routine != nil {
		entry = entry.WithField("routine_id", res.Routine.ID)
	}
	entry.Debug("schedule resolved")
	return today, res, nil
}

// Entry is one exercise of a resolved day with its current value.
type Entry struct {
	Exercise   models.Exercise
	Latest     models.Weight
	HasHistory bool
}

// Board lists the exercises of a resolved day, in link order, with each
// one's latest record. Non-workout results yield no entries.
func (t *Tracker) Board(res schedule.Result) ([]Entry, error) {
	if res.Outcome != schedule.Workout || res.Day == nil {
		return nil, nil
	}

	entries := make([]Entry, 0, len(res.Day.Exercises))
	for _, e := range res.Day.Exercises {
		latest, ok, err := t.ledger.Latest(e.ID)
		if err != nil {
			return nil, fmt.Errorf("board: %w", err)
		}
		entries = append(entries, Entry{Exercise: e, Latest: latest, HasHistory: ok})
	}
	return entries, nil
}

// Log appends a record to the exercise found by name or ID.
func (t *Tracker) Log(exercise string, amount float64, reps, sets *int) (*models.Weight, error) {
	e, err := t.FindExercise(exercise)
	if err != nil {
		return nil, fmt.Errorf("log weight: %w", err)
	}
	return t.ledger.Append(e.ID, amount, reps, sets)
}

// History returns up to n records of the exercise found by name or ID, newest first.
func (t *Tracker) History(exercise string, n int) (*models.Exercise, []models.Weight, error) {
	e, err := t.FindExercise(exercise)
	if err != nil {
		return nil, nil, fmt.Errorf("weight history: %w", err)
	}
	weights, err := t.ledger.Recent(e.ID, n)
	if err != nil {
		return nil, nil, err
	}
	return e, weights, nil
}

// Session starts a progression session for exerciseID, seeded from its
// latest record or def.
func (t *Tracker) Session(exerciseID uuid.UUID, def float64) (*progression.Session, error) {
	return progression.Start(t.ledger, exerciseID, def)
}
