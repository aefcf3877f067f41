package core

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// ErrAlreadyActive is returned by Start while a load task is active.
// Competing start requests are rejected, never queued.
var ErrAlreadyActive = errors.New("cpu load already active")

// Task is the handle for one background burner run. A task is single-pass
// and non-restartable: once its goroutine returns, the handle only answers
// liveness queries. Tasks are never joined; process exit reclaims them.
type Task struct {
	iterations int64

	// cancel is the cooperative stop token. The burner reads it once per
	// iteration boundary; setting it does not interrupt the iteration in
	// progress, so observed stop latency is bounded by one step's cost.
	cancel atomic.Bool

	// done is closed by the burner goroutine on return, whether the
	// iteration budget was exhausted or the cancel token was observed.
	done chan struct{}
}

// Iterations returns the budget the task was started with.
func (t *Task) Iterations() int64 { return t.iterations }

// Running reports whether the burner goroutine behind this task is still
// executing. Non-blocking; safe on a nil handle.
func (t *Task) Running() bool {
	if t == nil {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Active reports whether the task is both still running and not yet
// signalled to stop. A cancelled task that has not reached its next
// iteration boundary is alive but no longer active; that window is part of
// the cooperative-cancellation contract, not an inconsistency.
func (t *Task) Active() bool {
	return t.Running() && !t.cancel.Load()
}

// Snapshot is a point-in-time read model of the controller, consumed by
// the API layer. Plain values only; safe to retain without locking.
type Snapshot struct {
	Active            bool
	TaskAlive         bool
	DefaultIterations int64
}

// Controller owns the agent's one piece of mutable state: the handle of
// the most recently started load task. It enforces the at-most-one-active
// invariant and is the only place burner goroutines are spawned.
//
// All methods are safe for concurrent use. The mutex is held only for
// flag checks and handle swaps, never across the burner's work.
type Controller struct {
	defaultIterations int64
	logger            logrus.FieldLogger

	mu   sync.Mutex
	task *Task // most recently started task; nil until the first Start
}

// NewController constructs an idle controller. defaultIterations is used
// when Start is called with a non-positive budget and must be positive.
func NewController(defaultIterations int64, logger logrus.FieldLogger) *Controller {
	if defaultIterations <= 0 {
		panic("core.NewController: defaultIterations must be positive")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Controller{
		defaultIterations: defaultIterations,
		logger:            logger,
	}
}

// DefaultIterations returns the configured default budget.
func (c *Controller) DefaultIterations() int64 { return c.defaultIterations }

// Start spawns a burner goroutine with the given iteration budget and
// returns its handle immediately; it never waits for any work. A budget
// <= 0 means "use the configured default". While a task is active the
// call fails with ErrAlreadyActive and the requested budget is discarded.
func (c *Controller) Start(iterations int64) (*Task, error) {
	if iterations <= 0 {
		iterations = c.defaultIterations
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.task.Active() {
		return nil, ErrAlreadyActive
	}

	t := &Task{
		iterations: iterations,
		done:       make(chan struct{}),
	}
	c.task = t
	go t.run(c.logger)

	c.logger.WithField("iterations", iterations).Info("core: cpu load task started")
	return t, nil
}

// Stop signals the active task to terminate at its next iteration boundary
// and returns true. It does not wait for the task to observe the signal.
// With no active task it returns false and changes nothing.
func (c *Controller) Stop() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.task.Active() {
		return false
	}
	c.task.cancel.Store(true)
	c.logger.Info("core: stop signal sent to cpu load task")
	return true
}

// Snapshot returns the controller's current view for status reporting.
// Purely observational; never blocks on the burner.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Active:            c.task.Active(),
		TaskAlive:         c.task.Running(),
		DefaultIterations: c.defaultIterations,
	}
}

// run advances a two-term Fibonacci-style recurrence for the task's budget,
// checking the cancel token at every iteration boundary. The numbers exist
// only to keep the CPU busy: uint64 wrap-around is accepted silently and
// the final value is logged, then discarded.
func (t *Task) run(logger logrus.FieldLogger) {
	defer close(t.done)

	var a, b uint64 = 0, 1
	for i := int64(0); i < t.iterations; i++ {
		if t.cancel.Load() {
			logger.WithFields(logrus.Fields{
				"completed": i,
				"requested": t.iterations,
			}).Info("core: cpu load task stopped early")
			return
		}
		a, b = b, a+b
	}
	_ = a
	logger.WithFields(logrus.Fields{
		"iterations": t.iterations,
		"final":      b,
	}).Info("core: cpu load task completed")
}
