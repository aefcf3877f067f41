// Package api exposes a small HTTP control-plane for the agent.
//
// Separation of Concerns
//
// The api package defines public JSON types (decoupled from core), maps
// core snapshots to JSON, and hosts an HTTP server with minimal middleware.
// The core package remains unaware of HTTP or JSON.
//
// Server
//
// NewServer wires handlers onto a ServeMux and configures timeouts. Start()
// runs ListenAndServe() in a goroutine; Stop() performs graceful shutdown
// without waiting for a running load task. Middleware sets JSON content
// type and logs method/path/status/duration.
//
// Endpoints
//
//   - GET  /health:              liveness/readiness; always {"status":"OK"}
//   - POST /start_cpu_intensive: spawn the burner (202), reject while one
//     is active (409), reject bad iterations (400)
//   - POST /stop_cpu_intensive:  signal cooperative stop; stopping with
//     nothing active is a 200 no-op by contract
//   - GET  /status_cpu_load:     active/inactive, configured default budget,
//     task liveness, host CPU utilization
//
// Paths are unversioned because they are the exact strings existing probe
// and autoscaler tooling is configured with.
//
// Error Model
//
// Validation errors use ErrorResponse ({"error": ...}); conflict and no-op
// outcomes use MessageResponse ({"message": ...}). Handlers validate
// methods and respond with 405 where appropriate. All validation happens
// before any state mutation; the burner never reports errors back.
package api
