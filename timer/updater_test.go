package timer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/graphdeco/metric"
)

func TestScheduleRunsImmediately(t *testing.T) {
	u := New(nil)
	defer u.Stop()

	ran := make(chan struct{})
	var once atomic.Bool
	err := u.Schedule("poll", time.Hour, func(context.Context) error {
		if once.CompareAndSwap(false, true) {
			close(ran)
		}
		return nil
	})
	require.NoError(t, err)

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run")
	}
	assert.Equal(t, 1, u.Size())
	assert.Equal(t, []string{"poll"}, u.TaskNames())
}

func TestScheduleRepeats(t *testing.T) {
	u := New(nil)
	defer u.Stop()

	var count atomic.Int64
	require.NoError(t, u.Schedule("tick", 10*time.Millisecond, func(context.Context) error {
		count.Add(1)
		return nil
	}))

	assert.Eventually(t, func() bool { return count.Load() >= 3 },
		2*time.Second, 5*time.Millisecond)
}

func TestScheduleValidation(t *testing.T) {
	u := New(nil)
	defer u.Stop()

	assert.Error(t, u.Schedule("", time.Second, func(context.Context) error { return nil }))
	assert.Error(t, u.Schedule("x", 0, func(context.Context) error { return nil }))
	assert.Error(t, u.Schedule("x", time.Second, nil))
}

func TestScheduleAfterStop(t *testing.T) {
	u := New(nil)
	u.Stop()

	err := u.Schedule("late", time.Second, func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestStopCancelsTaskContext(t *testing.T) {
	u := New(nil)

	canceled := make(chan struct{})
	require.NoError(t, u.Schedule("blocker", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		close(canceled)
		return ctx.Err()
	}))

	u.Stop()

	select {
	case <-canceled:
	case <-time.After(2 * time.Second):
		t.Fatal("task context was not canceled")
	}
}

func TestStopIdempotent(t *testing.T) {
	u := New(nil)
	u.Stop()
	u.Stop() // must not panic or block
}

func TestFailureCounting(t *testing.T) {
	u := New(nil)
	defer u.Stop()

	done := make(chan struct{})
	var once atomic.Bool
	require.NoError(t, u.Schedule("fails", time.Hour, func(context.Context) error {
		if once.CompareAndSwap(false, true) {
			defer close(done)
		}
		return errors.New("feed down")
	}))

	<-done
	assert.Eventually(t, func() bool {
		runs, failures := u.Stats()
		return runs >= 1 && failures >= 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestPanicContained(t *testing.T) {
	u := New(nil)
	defer u.Stop()

	done := make(chan struct{})
	var once atomic.Bool
	require.NoError(t, u.Schedule("panics", time.Hour, func(context.Context) error {
		if once.CompareAndSwap(false, true) {
			defer close(done)
		}
		panic("boom")
	}))

	<-done
	assert.Eventually(t, func() bool {
		_, failures := u.Stats()
		return failures >= 1
	}, 2*time.Second, 5*time.Millisecond)
}

func TestWithMetrics(t *testing.T) {
	registry := metric.NewRegistry()
	u := New(nil, WithMetrics(registry))
	defer u.Stop()

	ran := make(chan struct{})
	var once atomic.Bool
	require.NoError(t, u.Schedule("metered", time.Hour, func(context.Context) error {
		if once.CompareAndSwap(false, true) {
			close(ran)
		}
		return nil
	}))
	<-ran

	families, err := registry.Prometheus().Gather()
	require.NoError(t, err)

	var sawTasks bool
	for _, mf := range families {
		if mf.GetName() == "graphdeco_timer_tasks" {
			sawTasks = true
		}
	}
	assert.True(t, sawTasks)
}
