package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordsrs/internal/logging"
)

type fakeRepairer struct {
	calls atomic.Int32
	n     int
	err   error
}

func (f *fakeRepairer) RepairAll(context.Context) (int, error) {
	f.calls.Add(1)
	return f.n, f.err
}

func TestRunRepairNow(t *testing.T) {
	repairer := &fakeRepairer{n: 4}
	s := New(repairer, "03:00", time.UTC, logging.Discard())

	n, err := s.RunRepairNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, int32(1), repairer.calls.Load())
}

func TestRunRepairNow_Error(t *testing.T) {
	boom := errors.New("boom")
	s := New(&fakeRepairer{err: boom}, "03:00", time.UTC, logging.Discard())

	_, err := s.RunRepairNow(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestStart_SchedulesDailyRepair(t *testing.T) {
	repairer := &fakeRepairer{}
	s := New(repairer, "03:00", time.UTC, logging.Discard())

	require.NoError(t, s.Start())
	defer s.Stop()

	next := s.NextRun().UTC()
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
	assert.WithinDuration(t, time.Now(), next, 24*time.Hour)
}

func TestStart_InvalidTime(t *testing.T) {
	s := New(&fakeRepairer{}, "25:99", time.UTC, logging.Discard())
	assert.Error(t, s.Start())
}
