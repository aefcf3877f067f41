// Command agent runs the CPU load generator's HTTP control server.
//
// Usage:
//
//	PORT=5000 FIB_ITERATIONS=500000 agent -shutdown-secs 5
//
// Environment:
//
//	PORT            HTTP listen port (default 5000)
//	FIB_ITERATIONS  default iteration budget for load tasks (default 500000)
//
// Flags:
//
//	-shutdown-secs   graceful shutdown timeout in seconds (default 5)
//
// Behavior:
//
// Loads configuration from the environment, wires the load controller and
// CPU sampler into the API server, and blocks on SIGINT/SIGTERM for
// graceful shutdown. A load task running at shutdown is abandoned, not
// joined; process exit reclaims it. Nothing persists across restarts.
package main
