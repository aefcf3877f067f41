// Package core owns the agent's load-task state and lifecycle.
//
// Overview
//
// The core package models the agent as a controller holding at most one
// background "burner" task. A task runs a bounded, CPU-only recurrence in
// its own goroutine and stops cooperatively: a stop request sets a cancel
// token that the burner checks once per iteration boundary. There is no
// pre-emptive interruption, so a stop is observed at the next boundary,
// not instantly.
//
// Concurrency & Safety
//
// Controller is safe for concurrent use. Start, Stop and Snapshot hold an
// internal mutex briefly; none of them ever waits on the burner goroutine.
// The cancel token is an atomic boolean shared between the HTTP side and
// the burner, which makes the stop/check race data-race free while keeping
// its benign timing window (a task may report "not active" for a moment
// before the burner actually returns).
//
// Lifecycle
//
//	idle -> running -> idle
//
// Start fires only when no task is active; a second start while running is
// rejected with ErrAlreadyActive, never queued. A task leaves the running
// state either by exhausting its iteration budget or by observing the
// cancel token. There is no failure state: the computation cannot fail,
// and integer wrap-around is accepted silently. Tasks are daemon-style:
// never joined, abandoned at process exit.
package core
