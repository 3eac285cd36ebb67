// ABOUTME: Routine, Day and DayExercise CRUD operations for SQLite storage.
// ABOUTME: Nested reads load days and linked exercises in batched queries.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
)

// CreateRoutine stores a new routine. The owning user must exist.
func (d *DB) CreateRoutine(r *models.Routine) error {
	_, err := d.db.Exec(`
		INSERT INTO routines (id, user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID.String(), r.UserID.String(), r.Name, formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return violation("routine %q already exists for this user", r.Name)
	case isForeignKeyViolation(err):
		return notFound("user", r.UserID.String())
	default:
		return fmt.Errorf("create routine: %w", err)
	}
}

// GetRoutine retrieves a routine by ID or prefix, with days and exercises.
func (d *DB) GetRoutine(idOrPrefix string) (*models.Routine, error) {
	id, err := d.resolveID("routines", "routine", idOrPrefix)
	if err != nil {
		return nil, err
	}

	r, err := scanRoutine(d.db.QueryRow(`
		SELECT id, user_id, name, created_at, updated_at FROM routines WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("routine", idOrPrefix)
	}
	if err != nil {
		return nil, err
	}

	if err := d.populateRoutines([]*models.Routine{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRoutinesForUser returns the user's routines in creation order, fully nested.
func (d *DB) ListRoutinesForUser(userID uuid.UUID) ([]*models.Routine, error) {
	rows, err := d.db.Query(`
		SELECT id, user_id, name, created_at, updated_at
		FROM routines
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}

	var routines []*models.Routine
	for rows.Next() {
		r, err := scanRoutine(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		routines = append(routines, r)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}

	if err := d.populateRoutines(routines); err != nil {
		return nil, err
	}
	return routines, nil
}

// RenameRoutine changes a routine's name, keeping (name, user) unique.
func (d *DB) RenameRoutine(id uuid.UUID, name string) error {
	result, err := d.db.Exec(`UPDATE routines SET name = ?, updated_at = ? WHERE id = ?`,
		name, formatTime(time.Now()), id.String())
	if err != nil {
		if isUniqueViolation(err) {
			return violation("routine %q already exists for this user", name)
		}
		return fmt.Errorf("rename routine: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rename routine: %w", err)
	}
	if affected == 0 {
		return notFound("routine", id.String())
	}
	return nil
}

// DeleteRoutine removes a routine and, in the same statement, its days and links.
func (d *DB) DeleteRoutine(idOrPrefix string) error {
	id, err := d.resolveID("routines", "routine", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	return d.deleteByID("routines", "routine", id)
}

// CreateDay stores a new day. A routine holds at most one day per weekday.
func (d *DB) CreateDay(day *models.Day) error {
	if !day.Weekday.IsValid() {
		return fmt.Errorf("create day: unknown weekday %q", day.Weekday)
	}
	_, err := d.db.Exec(`
		INSERT INTO days (id, routine_id, weekday, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		day.ID.String(), day.RoutineID.String(), string(day.Weekday),
		formatTime(day.CreatedAt), formatTime(day.UpdatedAt),
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return violation("routine already has a %s day", day.Weekday)
	case isForeignKeyViolation(err):
		return notFound("routine", day.RoutineID.String())
	default:
		return fmt.Errorf("create day: %w", err)
	}
}

// GetDay retrieves a day by ID or prefix, with its exercises.
func (d *DB) GetDay(idOrPrefix string) (*models.Day, error) {
	id, err := d.resolveID("days", "day", idOrPrefix)
	if err != nil {
		return nil, err
	}

	day, err := scanDay(d.db.QueryRow(`
		SELECT id, routine_id, weekday, created_at, updated_at FROM days WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("day", idOrPrefix)
	}
	if err != nil {
		return nil, err
	}

	exercises, err := d.exercisesByDay([]any{id})
	if err != nil {
		return nil, err
	}
	day.Exercises = exercises[day.ID]
	return day, nil
}

// DeleteDay removes a day and its links. Exercises and weights are untouched.
func (d *DB) DeleteDay(idOrPrefix string) error {
	id, err := d.resolveID("days", "day", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete day: %w", err)
	}
	return d.deleteByID("days", "day", id)
}

// LinkExercise adds an exercise to a day. Each pair may be linked once.
func (d *DB) LinkExercise(link *models.DayExercise) error {
	_, err := d.db.Exec(`
		INSERT INTO day_exercises (day_id, exercise_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		link.DayID.String(), link.ExerciseID.String(),
		formatTime(link.CreatedAt), formatTime(link.UpdatedAt),
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return violation("exercise already on this day")
	case isForeignKeyViolation(err):
		return notFound("day or exercise", link.DayID.String()+"/"+link.ExerciseID.String())
	default:
		return fmt.Errorf("link exercise: %w", err)
	}
}

// UnlinkExercise removes an exercise from a day.
func (d *DB) UnlinkExercise(dayID, exerciseID uuid.UUID) error {
	result, err := d.db.Exec(`DELETE FROM day_exercises WHERE day_id = ? AND exercise_id = ?`,
		dayID.String(), exerciseID.String())
	if err != nil {
		return fmt.Errorf("unlink exercise: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unlink exercise: %w", err)
	}
	if affected == 0 {
		return notFound("day exercise", dayID.String()+"/"+exerciseID.String())
	}
	return nil
}

// populateRoutines fills Days (weekday order) and each Day's Exercises.
// Every result set is drained before the next query runs.
func (d *DB) populateRoutines(routines []*models.Routine) error {
	if len(routines) == 0 {
		return nil
	}

	routineIDs := make([]any, len(routines))
	for i, r := range routines {
		routineIDs[i] = r.ID.String()
	}

	rows, err := d.db.Query(`
		SELECT id, routine_id, weekday, created_at, updated_at
		FROM days
		WHERE routine_id IN (`+placeholders(len(routineIDs))+`)`, routineIDs...)
	if err != nil {
		return fmt.Errorf("list days: %w", err)
	}
	var days []*models.Day
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			rows.Close()
			return err
		}
		days = append(days, day)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return fmt.Errorf("list days: %w", err)
	}

	dayIDs := make([]any, len(days))
	for i, day := range days {
		dayIDs[i] = day.ID.String()
	}
	exercises, err := d.exercisesByDay(dayIDs)
	if err != nil {
		return err
	}

	byRoutine := make(map[uuid.UUID]*models.Routine, len(routines))
	for _, r := range routines {
		r.Days = nil
		byRoutine[r.ID] = r
	}
	for _, day := range days {
		day.Exercises = exercises[day.ID]
		if r, ok := byRoutine[day.RoutineID]; ok {
			r.Days = append(r.Days, *day)
		}
	}
	for _, r := range routines {
		models.SortDays(r.Days)
	}
	return nil
}

// exercisesByDay returns linked exercises keyed by day, in link order.
func (d *DB) exercisesByDay(dayIDs []any) (map[uuid.UUID][]models.Exercise, error) {
	result := make(map[uuid.UUID][]models.Exercise)
	if len(dayIDs) == 0 {
		return result, nil
	}

	rows, err := d.db.Query(`
		SELECT de.day_id, e.id, e.name, e.created_at, e.updated_at
		FROM day_exercises de
		JOIN exercises e ON e.id = de.exercise_id
		WHERE de.day_id IN (`+placeholders(len(dayIDs))+`)
		ORDER BY de.created_at ASC, e.name ASC`, dayIDs...)
	if err != nil {
		return nil, fmt.Errorf("list day exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dayIDStr, idStr, createdAt, updatedAt string
		var e models.Exercise
		if err := rows.Scan(&dayIDStr, &idStr, &e.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan day exercise: %w", err)
		}
		e.ID, _ = uuid.Parse(idStr)
		e.CreatedAt = parseTime(createdAt)
		e.UpdatedAt = parseTime(updatedAt)

		dayID, _ := uuid.Parse(dayIDStr)
		result[dayID] = append(result[dayID], e)
	}
	return result, rows.Err()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func scanRoutine(row rowScanner) (*models.Routine, error) {
	var r models.Routine
	var idStr, userIDStr, createdAt, updatedAt string

	if err := row.Scan(&idStr, &userIDStr, &r.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan routine: %w", err)
	}

	r.ID, _ = uuid.Parse(idStr)
	r.UserID, _ = uuid.Parse(userIDStr)
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return &r, nil
}

func scanDay(row rowScanner) (*models.Day, error) {
	var day models.Day
	var idStr, routineIDStr, weekday, createdAt, updatedAt string

	if err := row.Scan(&idStr, &routineIDStr, &weekday, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan day: %w", err)
	}

	day.ID, _ = uuid.Parse(idStr)
	day.RoutineID, _ = uuid.Parse(routineIDStr)
	day.Weekday = models.Weekday(weekday)
	day.CreatedAt = parseTime(createdAt)
	day.UpdatedAt = parseTime(updatedAt)
	return &day, nil
}
