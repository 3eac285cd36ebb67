// ABOUTME: Tests for the step function and the progression session state machine.
// ABOUTME: Ledger interactions are mocked to exercise commit success and failure.
package progression_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/harperreed/liftlog/internal/progression"
	"github.com/harperreed/liftlog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestAdjust(t *testing.T) {
	tests := []struct {
		in         float64
		increasing bool
		want       float64
	}{
		{0, true, 2.5},
		{0, false, 0},
		{1, false, 0},
		{2.5, false, 0},
		{60, true, 62.5},
		{62.5, false, 60},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v/%v", tt.in, tt.increasing), func(t *testing.T) {
			assert.Equal(t, tt.want, progression.Adjust(tt.in, tt.increasing))
		})
	}
}

func TestAdjustRoundTrip(t *testing.T) {
	for _, v := range []float64{2.5, 3, 10, 62.5, 100.25, 1000} {
		assert.Equal(t, v, progression.Adjust(progression.Adjust(v, true), false), "v=%v", v)
	}
}

func TestRoundHalf(t *testing.T) {
	assert.Equal(t, 62.5, progression.RoundHalf(62.4))
	assert.Equal(t, 62.0, progression.RoundHalf(62.2))
	assert.Equal(t, 0.0, progression.RoundHalf(0.1))
}

func TestStartSeedsFromLatest(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewMockweightLedger(ctrl)
	exID := uuid.New()

	l.EXPECT().Latest(exID).Return(models.Weight{ExerciseID: exID, Amount: 80}, true, nil)

	s, err := progression.Start(l, exID, 0)
	require.NoError(t, err)
	assert.Equal(t, 80.0, s.Value())
	assert.Equal(t, progression.Idle, s.State())
	require.NotNil(t, s.Committed())
}

func TestStartUsesDefaultWithoutHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewMockweightLedger(ctrl)
	exID := uuid.New()

	l.EXPECT().Latest(exID).Return(models.Weight{}, false, nil)

	s, err := progression.Start(l, exID, 20)
	require.NoError(t, err)
	assert.Equal(t, 20.0, s.Value())
	assert.Nil(t, s.Committed())
}

func TestStartPropagatesNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewMockweightLedger(ctrl)

	l.EXPECT().Latest(gomock.Any()).Return(models.Weight{}, false, storage.ErrNotFound)

	_, err := progression.Start(l, uuid.New(), 0)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAdjustmentsDoNotWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewMockweightLedger(ctrl) // no Append expected

	s := progression.NewSession(l, uuid.New(), 60)
	s.Increment()
	s.Increment()
	s.Decrement()

	assert.Equal(t, progression.Adjusting, s.State())
	assert.Equal(t, 62.5, s.Value())
}

func TestDecrementClampsAtZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := progression.NewSession(NewMockweightLedger(ctrl), uuid.New(), 2.5)

	s.Decrement()
	s.Decrement()
	assert.Equal(t, 0.0, s.Value())
}

func TestCommitAppendsAndReturnsToIdle(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewMockweightLedger(ctrl)
	exID := uuid.New()
	reps := 5

	l.EXPECT().Append(exID, 62.5, &reps, nil).
		DoAndReturn(func(id uuid.UUID, amount float64, r, s *int) (*models.Weight, error) {
			return models.NewWeight(id, amount).WithReps(*r), nil
		})

	s := progression.NewSession(l, exID, 60)
	s.Increment()
	s.SetReps(&reps)

	w, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, progression.Idle, s.State())
	assert.Equal(t, 62.5, s.Value())
	assert.Equal(t, w, s.Committed())
	assert.Nil(t, s.Reps(), "pending reps are consumed by the commit")
}

func TestCommitFailureKeepsAdjustment(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewMockweightLedger(ctrl)
	exID := uuid.New()
	sets := 3
	boom := errors.New("connection reset")

	gomock.InOrder(
		l.EXPECT().Append(exID, 65.0, nil, &sets).Return(nil, boom),
		l.EXPECT().Append(exID, 65.0, nil, &sets).Return(models.NewWeight(exID, 65), nil),
	)

	s := progression.NewSession(l, exID, 60)
	s.Increment()
	s.Increment()
	s.SetSets(&sets)

	_, err := s.Commit()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, progression.Adjusting, s.State())
	assert.Equal(t, 65.0, s.Value())
	require.NotNil(t, s.Sets())
	assert.Equal(t, 3, *s.Sets())

	// Retry without re-entering the adjustment.
	_, err = s.Commit()
	require.NoError(t, err)
	assert.Equal(t, progression.Idle, s.State())
}

func TestCommitNotFoundKeepsAdjustment(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewMockweightLedger(ctrl)

	l.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("append weight: %w", storage.ErrNotFound))

	s := progression.NewSession(l, uuid.New(), 10)
	s.Decrement()

	_, err := s.Commit()
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Equal(t, progression.Adjusting, s.State())
	assert.Equal(t, 7.5, s.Value())
}

func TestResetDiscardsAdjustment(t *testing.T) {
	ctrl := gomock.NewController(t)
	l := NewMockweightLedger(ctrl)
	squat, bench := uuid.New(), uuid.New()

	s := progression.NewSession(l, squat, 100)
	s.Increment()
	reps := 3
	s.SetReps(&reps)

	s.Reset(bench, 60)

	assert.Equal(t, progression.Idle, s.State())
	assert.Equal(t, bench, s.ExerciseID())
	assert.Equal(t, 60.0, s.Value(), "squat adjustment must not leak into bench")
	assert.Nil(t, s.Reps())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", progression.Idle.String())
	assert.Equal(t, "adjusting", progression.Adjusting.String())
}
