// ABOUTME: Shared behavioural tests every storage.Repository implementation must pass.
// ABOUTME: Backends call Run with a constructor returning a fresh, empty repository.
package storagetest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty repository. Cleanup is the factory's job.
type Factory func(t *testing.T) storage.Repository

// Run exercises the uniqueness, cascade and ledger rules against newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, repo storage.Repository)
	}{
		{"UniqueUsername", testUniqueUsername},
		{"RoutineNamePerUser", testRoutineNamePerUser},
		{"OneDayPerWeekday", testOneDayPerWeekday},
		{"OneLinkPerPair", testOneLinkPerPair},
		{"NestedRoutines", testNestedRoutines},
		{"RoutineCascade", testRoutineCascade},
		{"ExerciseCascade", testExerciseCascade},
		{"PrefixLookup", testPrefixLookup},
		{"PrefixIsLiteral", testPrefixIsLiteral},
		{"LedgerOrder", testLedgerOrder},
		{"LedgerTieBreak", testLedgerTieBreak},
		{"OptionalRepsSets", testOptionalRepsSets},
		{"DeleteWeight", testDeleteWeight},
		{"UpdateWeight", testUpdateWeight},
		{"ExportImport", testExportImport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newRepo(t))
		})
	}
}

// Fixture is a user with one routine holding a Monday day that lists Squat.
type Fixture struct {
	User     *models.User
	Routine  *models.Routine
	Day      *models.Day
	Exercise *models.Exercise
}

// Seed writes a Fixture into repo.
func Seed(t *testing.T, repo storage.Repository) Fixture {
	t.Helper()

	u := models.NewUser("harper")
	require.NoError(t, repo.CreateUser(u))
	r := models.NewRoutine(u.ID, "Strength")
	require.NoError(t, repo.CreateRoutine(r))
	d := models.NewDay(r.ID, models.Monday)
	require.NoError(t, repo.CreateDay(d))
	e := models.NewExercise("Squat")
	require.NoError(t, repo.CreateExercise(e))
	require.NoError(t, repo.LinkExercise(models.NewDayExercise(d.ID, e.ID)))

	return Fixture{User: u, Routine: r, Day: d, Exercise: e}
}

func testUniqueUsername(t *testing.T, repo storage.Repository) {
	require.NoError(t, repo.CreateUser(models.NewUser("harper")))
	err := repo.CreateUser(models.NewUser("harper"))
	assert.ErrorIs(t, err, storage.ErrInvariantViolation)
	assert.False(t, storage.IsCollaboratorFailure(err))
}

func testRoutineNamePerUser(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)

	assert.ErrorIs(t, repo.CreateRoutine(models.NewRoutine(f.User.ID, "Strength")), storage.ErrInvariantViolation)
	assert.ErrorIs(t, repo.CreateRoutine(models.NewRoutine(uuid.New(), "Ghost")), storage.ErrNotFound)

	other := models.NewUser("dylan")
	require.NoError(t, repo.CreateUser(other))
	assert.NoError(t, repo.CreateRoutine(models.NewRoutine(other.ID, "Strength")))

	second := models.NewRoutine(f.User.ID, "Cardio")
	require.NoError(t, repo.CreateRoutine(second))
	assert.ErrorIs(t, repo.RenameRoutine(second.ID, "Strength"), storage.ErrInvariantViolation)
	require.NoError(t, repo.RenameRoutine(second.ID, "Conditioning"))

	got, err := repo.GetRoutine(second.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Conditioning", got.Name)
}

func testOneDayPerWeekday(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)

	err := repo.CreateDay(models.NewDay(f.Routine.ID, models.Monday))
	assert.ErrorIs(t, err, storage.ErrInvariantViolation)
	assert.NoError(t, repo.CreateDay(models.NewDay(f.Routine.ID, models.Tuesday)))
	assert.ErrorIs(t, repo.CreateDay(models.NewDay(uuid.New(), models.Monday)), storage.ErrNotFound)
	assert.Error(t, repo.CreateDay(models.NewDay(f.Routine.ID, models.Weekday("someday"))))
}

func testOneLinkPerPair(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)

	err := repo.LinkExercise(models.NewDayExercise(f.Day.ID, f.Exercise.ID))
	assert.ErrorIs(t, err, storage.ErrInvariantViolation)
	assert.ErrorIs(t, repo.LinkExercise(models.NewDayExercise(f.Day.ID, uuid.New())), storage.ErrNotFound)

	require.NoError(t, repo.UnlinkExercise(f.Day.ID, f.Exercise.ID))
	assert.ErrorIs(t, repo.UnlinkExercise(f.Day.ID, f.Exercise.ID), storage.ErrNotFound)
}

func testNestedRoutines(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)

	fri := models.NewDay(f.Routine.ID, models.Friday)
	wed := models.NewDay(f.Routine.ID, models.Wednesday)
	require.NoError(t, repo.CreateDay(fri))
	require.NoError(t, repo.CreateDay(wed))

	later := models.NewRoutine(f.User.ID, "Cardio")
	later.CreatedAt = f.Routine.CreatedAt.Add(time.Second)
	require.NoError(t, repo.CreateRoutine(later))

	routines, err := repo.ListRoutinesForUser(f.User.ID)
	require.NoError(t, err)
	require.Len(t, routines, 2)
	assert.Equal(t, f.Routine.ID, routines[0].ID)
	assert.Equal(t, later.ID, routines[1].ID)

	var weekdays []models.Weekday
	for _, d := range routines[0].Days {
		weekdays = append(weekdays, d.Weekday)
	}
	assert.Equal(t, []models.Weekday{models.Monday, models.Wednesday, models.Friday}, weekdays)
	require.Len(t, routines[0].Days[0].Exercises, 1)
	assert.Equal(t, "Squat", routines[0].Days[0].Exercises[0].Name)
	assert.Empty(t, routines[1].Days)

	day, err := repo.GetDay(f.Day.ID.String())
	require.NoError(t, err)
	require.Len(t, day.Exercises, 1)
}

func testRoutineCascade(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)
	require.NoError(t, repo.AppendWeight(models.NewWeight(f.Exercise.ID, 100)))

	require.NoError(t, repo.DeleteRoutine(f.Routine.ID.String()))

	_, err := repo.GetDay(f.Day.ID.String())
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = repo.GetExercise(f.Exercise.ID.String())
	assert.NoError(t, err, "exercise outlives its routine")
	_, err = repo.LatestWeight(f.Exercise.ID)
	assert.NoError(t, err, "weight history outlives its routine")

	// The exercise can be linked again to a new day without a stale link in the way.
	r := models.NewRoutine(f.User.ID, "Again")
	require.NoError(t, repo.CreateRoutine(r))
	d := models.NewDay(r.ID, models.Monday)
	require.NoError(t, repo.CreateDay(d))
	assert.NoError(t, repo.LinkExercise(models.NewDayExercise(d.ID, f.Exercise.ID)))

	require.NoError(t, repo.DeleteUser(f.User.ID.String()))
	_, err = repo.GetRoutine(r.ID.String())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testExerciseCascade(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)
	require.NoError(t, repo.AppendWeight(models.NewWeight(f.Exercise.ID, 100)))

	require.NoError(t, repo.DeleteExercise(f.Exercise.ID.String()))

	day, err := repo.GetDay(f.Day.ID.String())
	require.NoError(t, err)
	assert.Empty(t, day.Exercises)

	weights, err := repo.ListWeights(f.Exercise.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, weights)
	assert.ErrorIs(t, repo.DeleteExercise(f.Exercise.ID.String()), storage.ErrNotFound)
}

func testPrefixLookup(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)

	got, err := repo.GetExercise(f.Exercise.ID.String()[:8])
	require.NoError(t, err)
	assert.Equal(t, f.Exercise.ID, got.ID)

	byName, err := repo.GetExerciseByName("SQUAT")
	require.NoError(t, err)
	assert.Equal(t, f.Exercise.ID, byName.ID)

	_, err = repo.GetUser(uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrNotFound)

	a := models.NewExercise("A")
	b := models.NewExercise("B")
	a.ID = uuid.MustParse("abcdef00-0000-4000-8000-000000000001")
	b.ID = uuid.MustParse("abcdef00-0000-4000-8000-000000000002")
	require.NoError(t, repo.CreateExercise(a))
	require.NoError(t, repo.CreateExercise(b))
	_, err = repo.GetExercise("abcdef")
	assert.ErrorIs(t, err, storage.ErrAmbiguousPrefix)
}

// testPrefixIsLiteral checks that SQL pattern characters in a prefix match
// nothing, so every backend resolves the same input the same way.
func testPrefixIsLiteral(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)

	for _, prefix := range []string{"%", "_", "%%", "________", `\`} {
		_, err := repo.GetRoutine(prefix)
		assert.ErrorIs(t, err, storage.ErrNotFound, "GetRoutine(%q)", prefix)

		err = repo.DeleteRoutine(prefix)
		assert.ErrorIs(t, err, storage.ErrNotFound, "DeleteRoutine(%q)", prefix)
	}

	routines, err := repo.ListRoutinesForUser(f.User.ID)
	require.NoError(t, err)
	assert.Len(t, routines, 1, "routine must survive wildcard deletes")

	got, err := repo.GetRoutine(f.Routine.ID.String()[:4])
	require.NoError(t, err)
	assert.Equal(t, f.Routine.ID, got.ID)
}

func testLedgerOrder(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, amount := range []float64{60, 62.5, 65} {
		w := models.NewWeight(f.Exercise.ID, amount).WithCreatedAt(base.Add(time.Duration(i) * time.Minute))
		require.NoError(t, repo.AppendWeight(w))
	}

	weights, err := repo.ListWeights(f.Exercise.ID, 0)
	require.NoError(t, err)
	require.Len(t, weights, 3)
	assert.Equal(t, []float64{65, 62.5, 60}, []float64{weights[0].Amount, weights[1].Amount, weights[2].Amount})

	limited, err := repo.ListWeights(f.Exercise.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	assert.ErrorIs(t, repo.AppendWeight(models.NewWeight(uuid.New(), 1)), storage.ErrNotFound)
}

func testLedgerTieBreak(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)

	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	low := models.NewWeight(f.Exercise.ID, 100).WithCreatedAt(at)
	high := models.NewWeight(f.Exercise.ID, 90).WithCreatedAt(at)
	low.ID = uuid.MustParse("10000000-0000-4000-8000-000000000000")
	high.ID = uuid.MustParse("f0000000-0000-4000-8000-000000000000")
	require.NoError(t, repo.AppendWeight(high))
	require.NoError(t, repo.AppendWeight(low))

	latest, err := repo.LatestWeight(f.Exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, high.ID, latest.ID)
}

func testOptionalRepsSets(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)

	bare := models.NewWeight(f.Exercise.ID, 40)
	zero := models.NewWeight(f.Exercise.ID, 40).WithReps(0).WithSets(0)
	require.NoError(t, repo.AppendWeight(bare))
	require.NoError(t, repo.AppendWeight(zero))

	got, err := repo.GetWeight(bare.ID.String())
	require.NoError(t, err)
	assert.Nil(t, got.Reps)
	assert.Nil(t, got.Sets)

	got, err = repo.GetWeight(zero.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got.Reps)
	require.NotNil(t, got.Sets)
	assert.Equal(t, 0, *got.Reps)
	assert.Equal(t, 0, *got.Sets)
}

func testDeleteWeight(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)
	bench := models.NewExercise("Bench")
	require.NoError(t, repo.CreateExercise(bench))

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	older := models.NewWeight(f.Exercise.ID, 100).WithCreatedAt(base)
	newer := models.NewWeight(f.Exercise.ID, 110).WithCreatedAt(base.Add(time.Hour))
	require.NoError(t, repo.AppendWeight(older))
	require.NoError(t, repo.AppendWeight(newer))

	assert.ErrorIs(t, repo.DeleteWeight(bench.ID, newer.ID), storage.ErrNotFound)
	require.NoError(t, repo.DeleteWeight(f.Exercise.ID, newer.ID))
	assert.NoError(t, repo.DeleteWeight(f.Exercise.ID, newer.ID), "second delete is a no-op")
	assert.ErrorIs(t, repo.DeleteWeight(bench.ID, newer.ID), storage.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteWeight(f.Exercise.ID, uuid.New()), storage.ErrNotFound)

	latest, err := repo.LatestWeight(f.Exercise.ID)
	require.NoError(t, err)
	assert.Equal(t, older.ID, latest.ID)

	require.NoError(t, repo.DeleteWeight(f.Exercise.ID, older.ID))
	_, err = repo.LatestWeight(f.Exercise.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testUpdateWeight(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)

	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	w := models.NewWeight(f.Exercise.ID, 100).WithCreatedAt(at)
	require.NoError(t, repo.AppendWeight(w))

	w.Amount = 97.5
	w.WithSets(3)
	require.NoError(t, repo.UpdateWeight(w))

	got, err := repo.GetWeight(w.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 97.5, got.Amount)
	require.NotNil(t, got.Sets)
	assert.Equal(t, 3, *got.Sets)
	assert.True(t, got.CreatedAt.Equal(at))

	assert.ErrorIs(t, repo.UpdateWeight(models.NewWeight(f.Exercise.ID, 1)), storage.ErrNotFound)
}

func testExportImport(t *testing.T, repo storage.Repository) {
	f := Seed(t, repo)
	require.NoError(t, repo.AppendWeight(models.NewWeight(f.Exercise.ID, 100).WithReps(5)))

	data, err := repo.GetAllData()
	require.NoError(t, err)
	assert.Len(t, data.Users, 1)
	assert.Len(t, data.Routines, 1)
	assert.Len(t, data.Exercises, 1)
	assert.Len(t, data.Weights, 1)

	assert.Error(t, repo.ImportData(data), "re-import collides with existing records")
}
