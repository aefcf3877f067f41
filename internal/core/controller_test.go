package core

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// largeBudget keeps a task running for the duration of a test unless it is
// stopped explicitly.
const largeBudget = int64(1) << 60

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func waitDone(t *testing.T, task *Task) {
	t.Helper()
	select {
	case <-task.done:
	case <-time.After(5 * time.Second):
		t.Fatal("task did not finish in time")
	}
}

func TestControllerIdle(t *testing.T) {
	c := NewController(100, quietLogger())

	snap := c.Snapshot()
	assert.False(t, snap.Active)
	assert.False(t, snap.TaskAlive)
	assert.Equal(t, int64(100), snap.DefaultIterations)
}

func TestControllerStartRunsToCompletion(t *testing.T) {
	c := NewController(100, quietLogger())

	task, err := c.Start(50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), task.Iterations())

	waitDone(t, task)

	snap := c.Snapshot()
	assert.False(t, snap.Active)
	assert.False(t, snap.TaskAlive)
}

func TestControllerStartUsesDefaultBudget(t *testing.T) {
	c := NewController(42, quietLogger())

	task, err := c.Start(0)
	require.NoError(t, err)
	assert.Equal(t, int64(42), task.Iterations())
	waitDone(t, task)
}

func TestControllerRejectsSecondStart(t *testing.T) {
	c := NewController(largeBudget, quietLogger())

	task, err := c.Start(largeBudget)
	require.NoError(t, err)

	_, err = c.Start(10)
	assert.ErrorIs(t, err, ErrAlreadyActive)

	// The rejected budget must be discarded, not queued: stopping the
	// winner leaves the controller idle.
	require.True(t, c.Stop())
	waitDone(t, task)
	assert.False(t, c.Snapshot().Active)
}

func TestControllerStopWhenIdleIsNoop(t *testing.T) {
	c := NewController(100, quietLogger())

	assert.False(t, c.Stop())
	assert.False(t, c.Stop())

	snap := c.Snapshot()
	assert.False(t, snap.Active)
	assert.False(t, snap.TaskAlive)
}

func TestControllerStopIsObserved(t *testing.T) {
	c := NewController(largeBudget, quietLogger())

	task, err := c.Start(0)
	require.NoError(t, err)
	require.True(t, c.Snapshot().Active)

	require.True(t, c.Stop())

	// Stop only signals; the burner must observe the token at its next
	// iteration boundary and return promptly.
	waitDone(t, task)
	snap := c.Snapshot()
	assert.False(t, snap.Active)
	assert.False(t, snap.TaskAlive)
}

func TestControllerStopDoesNotBlock(t *testing.T) {
	c := NewController(largeBudget, quietLogger())

	task, err := c.Start(0)
	require.NoError(t, err)

	start := time.Now()
	c.Stop()
	assert.Less(t, time.Since(start), time.Second)

	// Cancelled-but-running is a legal window: no longer active, handle
	// possibly still alive.
	assert.False(t, c.Snapshot().Active)
	waitDone(t, task)
}

func TestControllerRestartAfterStop(t *testing.T) {
	c := NewController(largeBudget, quietLogger())

	first, err := c.Start(0)
	require.NoError(t, err)
	require.True(t, c.Stop())
	waitDone(t, first)

	second, err := c.Start(0)
	require.NoError(t, err)
	assert.True(t, c.Snapshot().Active)

	require.True(t, c.Stop())
	waitDone(t, second)
}

func TestControllerConcurrentStarts(t *testing.T) {
	c := NewController(largeBudget, quietLogger())

	const n = 64
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted []*Task
		rejected int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := c.Start(largeBudget)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rejected++
				return
			}
			accepted = append(accepted, task)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, len(accepted), "exactly one start may win")
	assert.Equal(t, n-1, rejected)

	require.True(t, c.Stop())
	waitDone(t, accepted[0])
}

func TestTaskLivenessQueries(t *testing.T) {
	var nilTask *Task
	assert.False(t, nilTask.Running())

	c := NewController(100, quietLogger())
	task, err := c.Start(largeBudget)
	require.NoError(t, err)

	assert.True(t, task.Running())
	assert.True(t, task.Active())

	require.True(t, c.Stop())
	assert.False(t, task.Active())

	waitDone(t, task)
	assert.False(t, task.Running())
}

func TestNewControllerValidation(t *testing.T) {
	assert.Panics(t, func() { NewController(0, quietLogger()) })
	assert.Panics(t, func() { NewController(-5, quietLogger()) })
}
