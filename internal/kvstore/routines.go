// ABOUTME: Routine, Day and DayExercise operations for the KV store.
// ABOUTME: Nested reads assemble days and linked exercises from their own key ranges.
package kvstore

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
)

func linkKey(dayID, exerciseID uuid.UUID) string {
	return DayExPrefix + dayID.String() + ":" + exerciseID.String()
}

// CreateRoutine stores a new routine. The owning user must exist.
func (s *Store) CreateRoutine(r *models.Routine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.exists(UserPrefix + r.UserID.String())
	if err != nil {
		return fmt.Errorf("create routine: %w", err)
	}
	if !ok {
		return notFound("user", r.UserID.String())
	}

	routines, err := listJSON[models.Routine](s, RoutinePrefix)
	if err != nil {
		return err
	}
	for _, existing := range routines {
		if existing.ID == r.ID {
			return violation("routine %s already exists", r.ID)
		}
		if existing.UserID == r.UserID && existing.Name == r.Name {
			return violation("routine %q already exists for this user", r.Name)
		}
	}

	stored := *r
	stored.Days = nil
	return s.put(RoutinePrefix+r.ID.String(), &stored)
}

// GetRoutine retrieves a routine by ID or prefix, with days and exercises.
func (s *Store) GetRoutine(idOrPrefix string) (*models.Routine, error) {
	key, err := s.resolve(RoutinePrefix, "routine", idOrPrefix)
	if err != nil {
		return nil, err
	}
	r, err := getJSON[models.Routine](s, key, "routine")
	if err != nil {
		return nil, err
	}
	if err := s.populateRoutines([]*models.Routine{r}); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRoutinesForUser returns the user's routines in creation order, fully nested.
func (s *Store) ListRoutinesForUser(userID uuid.UUID) ([]*models.Routine, error) {
	all, err := listJSON[models.Routine](s, RoutinePrefix)
	if err != nil {
		return nil, err
	}

	var routines []*models.Routine
	for _, r := range all {
		if r.UserID == userID {
			routines = append(routines, r)
		}
	}
	sort.Slice(routines, func(i, j int) bool {
		if !routines[i].CreatedAt.Equal(routines[j].CreatedAt) {
			return routines[i].CreatedAt.Before(routines[j].CreatedAt)
		}
		return routines[i].ID.String() < routines[j].ID.String()
	})

	if err := s.populateRoutines(routines); err != nil {
		return nil, err
	}
	return routines, nil
}

// RenameRoutine changes a routine's name, keeping (name, user) unique.
func (s *Store) RenameRoutine(id uuid.UUID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := getJSON[models.Routine](s, RoutinePrefix+id.String(), "routine")
	if err != nil {
		return err
	}

	routines, err := listJSON[models.Routine](s, RoutinePrefix)
	if err != nil {
		return err
	}
	for _, existing := range routines {
		if existing.ID != r.ID && existing.UserID == r.UserID && existing.Name == name {
			return violation("routine %q already exists for this user", name)
		}
	}

	r.Name = name
	r.UpdatedAt = time.Now()
	return s.put(RoutinePrefix+r.ID.String(), r)
}

// DeleteRoutine removes a routine together with its days and links.
func (s *Store) DeleteRoutine(idOrPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.resolve(RoutinePrefix, "routine", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	keys, err := s.routineCascade(extractID(key))
	if err != nil {
		return err
	}
	if err := s.engine.Delete(keysOf(keys)...); err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	return nil
}

// routineCascade lists the routine key and every day and link key under it.
func (s *Store) routineCascade(routineID string) ([]string, error) {
	keys := []string{RoutinePrefix + routineID}

	days, err := listJSON[models.Day](s, DayPrefix)
	if err != nil {
		return nil, err
	}
	for _, day := range days {
		if day.RoutineID.String() != routineID {
			continue
		}
		dayKeys, err := s.dayCascade(day.ID.String())
		if err != nil {
			return nil, err
		}
		keys = append(keys, dayKeys...)
	}
	return keys, nil
}

// dayCascade lists the day key and its link keys.
func (s *Store) dayCascade(dayID string) ([]string, error) {
	keys := []string{DayPrefix + dayID}

	links, err := s.engine.Keys([]byte(DayExPrefix + dayID + ":"))
	if err != nil {
		return nil, fmt.Errorf("list day exercises: %w", err)
	}
	for _, k := range links {
		keys = append(keys, string(k))
	}
	return keys, nil
}

// CreateDay stores a new day. A routine holds at most one day per weekday.
func (s *Store) CreateDay(day *models.Day) error {
	if !day.Weekday.IsValid() {
		return fmt.Errorf("create day: unknown weekday %q", day.Weekday)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.exists(RoutinePrefix + day.RoutineID.String())
	if err != nil {
		return fmt.Errorf("create day: %w", err)
	}
	if !ok {
		return notFound("routine", day.RoutineID.String())
	}

	days, err := listJSON[models.Day](s, DayPrefix)
	if err != nil {
		return err
	}
	for _, existing := range days {
		if existing.ID == day.ID {
			return violation("day %s already exists", day.ID)
		}
		if existing.RoutineID == day.RoutineID && existing.Weekday == day.Weekday {
			return violation("routine already has a %s day", day.Weekday)
		}
	}

	stored := *day
	stored.Exercises = nil
	return s.put(DayPrefix+day.ID.String(), &stored)
}

// GetDay retrieves a day by ID or prefix, with its exercises.
func (s *Store) GetDay(idOrPrefix string) (*models.Day, error) {
	key, err := s.resolve(DayPrefix, "day", idOrPrefix)
	if err != nil {
		return nil, err
	}
	day, err := getJSON[models.Day](s, key, "day")
	if err != nil {
		return nil, err
	}

	byDay, err := s.exercisesByDay()
	if err != nil {
		return nil, err
	}
	day.Exercises = byDay[day.ID]
	return day, nil
}

// DeleteDay removes a day and its links. Exercises and weights are untouched.
func (s *Store) DeleteDay(idOrPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, err := s.resolve(DayPrefix, "day", idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete day: %w", err)
	}
	keys, err := s.dayCascade(extractID(key))
	if err != nil {
		return err
	}
	if err := s.engine.Delete(keysOf(keys)...); err != nil {
		return fmt.Errorf("delete day: %w", err)
	}
	return nil
}

// LinkExercise adds an exercise to a day. Each pair may be linked once.
func (s *Store) LinkExercise(link *models.DayExercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for prefix, id := range map[string]uuid.UUID{DayPrefix: link.DayID, ExercisePrefix: link.ExerciseID} {
		ok, err := s.exists(prefix + id.String())
		if err != nil {
			return fmt.Errorf("link exercise: %w", err)
		}
		if !ok {
			return notFound("day or exercise", link.DayID.String()+"/"+link.ExerciseID.String())
		}
	}

	key := linkKey(link.DayID, link.ExerciseID)
	ok, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("link exercise: %w", err)
	}
	if ok {
		return violation("exercise already on this day")
	}
	return s.put(key, link)
}

// UnlinkExercise removes an exercise from a day.
func (s *Store) UnlinkExercise(dayID, exerciseID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := linkKey(dayID, exerciseID)
	ok, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("unlink exercise: %w", err)
	}
	if !ok {
		return notFound("day exercise", dayID.String()+"/"+exerciseID.String())
	}
	return s.engine.Delete([]byte(key))
}

// populateRoutines fills Days (weekday order) and each Day's Exercises.
func (s *Store) populateRoutines(routines []*models.Routine) error {
	if len(routines) == 0 {
		return nil
	}

	days, err := listJSON[models.Day](s, DayPrefix)
	if err != nil {
		return err
	}
	byDay, err := s.exercisesByDay()
	if err != nil {
		return err
	}

	byRoutine := make(map[uuid.UUID]*models.Routine, len(routines))
	for _, r := range routines {
		r.Days = nil
		byRoutine[r.ID] = r
	}
	for _, day := range days {
		r, ok := byRoutine[day.RoutineID]
		if !ok {
			continue
		}
		day.Exercises = byDay[day.ID]
		r.Days = append(r.Days, *day)
	}
	for _, r := range routines {
		models.SortDays(r.Days)
	}
	return nil
}

// exercisesByDay returns linked exercises keyed by day, in link order.
func (s *Store) exercisesByDay() (map[uuid.UUID][]models.Exercise, error) {
	links, err := listJSON[models.DayExercise](s, DayExPrefix)
	if err != nil {
		return nil, err
	}
	exercises, err := listJSON[models.Exercise](s, ExercisePrefix)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Exercise, len(exercises))
	for _, e := range exercises {
		byID[e.ID] = e
	}

	sort.Slice(links, func(i, j int) bool {
		if !links[i].CreatedAt.Equal(links[j].CreatedAt) {
			return links[i].CreatedAt.Before(links[j].CreatedAt)
		}
		return byName(byID, links[i].ExerciseID) < byName(byID, links[j].ExerciseID)
	})

	result := make(map[uuid.UUID][]models.Exercise)
	for _, l := range links {
		e, ok := byID[l.ExerciseID]
		if !ok {
			continue
		}
		result[l.DayID] = append(result[l.DayID], *e)
	}
	return result, nil
}

func byName(exercises map[uuid.UUID]*models.Exercise, id uuid.UUID) string {
	if e, ok := exercises[id]; ok {
		return e.Name
	}
	return ""
}
