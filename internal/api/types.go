package api

// Public JSON types returned by the API. These are intentionally decoupled
// from the internal core types to preserve API stability and allow internal
// refactors without breaking clients. Field names and message strings are
// part of the external contract consumed by probe and autoscaler tooling.

// HealthResponse is the payload for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// MessageResponse is the informational payload used by the start and stop
// endpoints for acceptance, conflict and no-op outcomes alike.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the validation-error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the payload for GET /status_cpu_load.
type StatusResponse struct {
	Status                  string  `json:"status"` // "active" or "inactive"
	Message                 string  `json:"message"`
	FibIterationsConfigured int64   `json:"fib_iterations_configured"`
	CurrentThreadAlive      bool    `json:"current_thread_alive"`
	CPUUtilizationPercent   float64 `json:"cpu_utilization_percent"`
	UptimeSec               int64   `json:"uptime_sec"`
}

// Contract strings. Clients match on these verbatim.
const (
	statusOK       = "OK"
	statusActive   = "active"
	statusInactive = "inactive"

	msgAlreadyActive  = "CPU load already active."
	msgNoLoadActive   = "No CPU load active."
	msgStopSignalSent = "Signal sent to stop CPU-intensive task."
	msgStatusActive   = "CPU load is currently active."
	msgStatusInactive = "No CPU load is currently active."

	errIterationsNotInteger  = "Invalid 'iterations' value. Must be an integer."
	errIterationsNotPositive = "Iterations must be a positive integer."
	errMethodNotAllowed      = "method not allowed"
)
