// ABOUTME: Tests for the weight history engine.
// ABOUTME: Scenarios run against SQLite; collaborator failures use a generated mock.
package ledger_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/ledger"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stepClock advances one minute on every read.
type stepClock struct {
	t time.Time
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func setupLedger(t *testing.T) (*ledger.Ledger, *models.Exercise) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "liftlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	bench := models.NewExercise("Bench Press")
	require.NoError(t, db.CreateExercise(bench))

	clk := &stepClock{t: time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)}
	return ledger.New(db, clk), bench
}

func intPtr(v int) *int { return &v }

func TestAppendThenLatest(t *testing.T) {
	l, bench := setupLedger(t)

	w, err := l.Append(bench.ID, 60, intPtr(8), nil)
	require.NoError(t, err)

	latest, ok, err := l.Latest(bench.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, w.ID, latest.ID)
	assert.Equal(t, 60.0, latest.Amount)
	require.NotNil(t, latest.Reps)
	assert.Equal(t, 8, *latest.Reps)
	assert.Nil(t, latest.Sets, "absent sets must stay absent")
}

func TestBenchPressScenario(t *testing.T) {
	l, bench := setupLedger(t)

	_, err := l.Append(bench.ID, 60, nil, nil)
	require.NoError(t, err)
	top, err := l.Append(bench.ID, 62.5, nil, nil)
	require.NoError(t, err)

	latest, ok, err := l.Latest(bench.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 62.5, latest.Amount)

	require.NoError(t, l.Delete(bench.ID, top.ID))

	latest, ok, err = l.Latest(bench.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 60.0, latest.Amount)
}

func TestDeleteLastLeavesNoHistory(t *testing.T) {
	l, bench := setupLedger(t)

	w, err := l.Append(bench.ID, 40, nil, nil)
	require.NoError(t, err)
	require.NoError(t, l.Delete(bench.ID, w.ID))
	require.NoError(t, l.Delete(bench.ID, w.ID), "repeat delete is a no-op")

	_, ok, err := l.Latest(bench.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAppendUnknownExercise(t *testing.T) {
	l, _ := setupLedger(t)

	_, err := l.Append(uuid.New(), 10, nil, nil)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, _, err = l.Latest(uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRecentIsSnapshot(t *testing.T) {
	l, bench := setupLedger(t)

	for _, amount := range []float64{50, 52.5, 55} {
		_, err := l.Append(bench.ID, amount, intPtr(5), nil)
		require.NoError(t, err)
	}

	recent, err := l.Recent(bench.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 55.0, recent[0].Amount)
	assert.Equal(t, 52.5, recent[1].Amount)

	_, err = l.Append(bench.ID, 57.5, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 55.0, recent[0].Amount, "earlier snapshot is unaffected by later appends")

	none, err := l.Recent(bench.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAppendStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockweightStore(ctrl)
	l := ledger.New(store, &stepClock{})

	exID := uuid.New()
	boom := errors.New("disk on fire")
	store.EXPECT().GetExercise(exID.String()).Return(&models.Exercise{ID: exID}, nil)
	store.EXPECT().AppendWeight(gomock.Any()).Return(boom)

	_, err := l.Append(exID, 100, nil, nil)
	assert.ErrorIs(t, err, boom)
	assert.True(t, storage.IsCollaboratorFailure(err))
}

func TestAppendStampsClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockweightStore(ctrl)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := ledger.New(store, &stepClock{t: start})

	exID := uuid.New()
	store.EXPECT().GetExercise(gomock.Any()).Return(&models.Exercise{ID: exID}, nil)
	store.EXPECT().AppendWeight(gomock.Any()).DoAndReturn(func(w *models.Weight) error {
		assert.Equal(t, start.Add(time.Minute), w.CreatedAt)
		assert.Equal(t, exID, w.ExerciseID)
		require.NotNil(t, w.Sets)
		assert.Equal(t, 0, *w.Sets)
		return nil
	})

	_, err := l.Append(exID, 20, nil, intPtr(0))
	require.NoError(t, err)
}

func TestLatestStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockweightStore(ctrl)
	l := ledger.New(store, &stepClock{})

	boom := errors.New("timeout")
	store.EXPECT().LatestWeight(gomock.Any()).Return(nil, boom)

	_, ok, err := l.Latest(uuid.New())
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}
