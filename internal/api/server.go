package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opsbench/cpuload-agent/internal/core"
)

// DefaultAddress matches the default PORT of the agent's configuration.
const DefaultAddress = ":5000"

// UtilizationSource reports host CPU busy percentage without blocking.
// Implemented by cpustat.Sampler; stubbed in tests.
type UtilizationSource interface {
	UtilizationPercent() float64
}

// ServerOptions configures the HTTP server.
// Timeouts are conservative defaults suitable for a local control-plane server.
type ServerOptions struct {
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	Logger            *logrus.Logger
	CPU               UtilizationSource
}

// Server hosts the HTTP API for the agent.
type Server struct {
	http      *http.Server
	ctrl      *core.Controller
	cpu       UtilizationSource
	logger    *logrus.Logger
	opts      ServerOptions
	startedAt time.Time
}

// nopUtilization is the fallback when no sampler is wired (tests mostly).
type nopUtilization struct{}

func (nopUtilization) UtilizationPercent() float64 { return 0 }

// NewServer constructs a new API server bound to the provided Controller.
// The server does not start listening until Start is called.
func NewServer(ctrl *core.Controller, opts ServerOptions) *Server {
	if ctrl == nil {
		panic("api.NewServer: controller is nil")
	}
	if opts.Addr == "" {
		opts.Addr = DefaultAddress
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 5 * time.Second
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 2 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = 60 * time.Second
	}
	if opts.ShutdownTimeout == 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.CPU == nil {
		opts.CPU = nopUtilization{}
	}

	mux := http.NewServeMux()
	s := &Server{
		ctrl:      ctrl,
		cpu:       opts.CPU,
		logger:    opts.Logger,
		opts:      opts,
		startedAt: time.Now(),
		http: &http.Server{
			Addr:              opts.Addr,
			Handler:           withBasicMiddleware(mux, opts.Logger),
			ReadTimeout:       opts.ReadTimeout,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
			ErrorLog:          log.New(opts.Logger.WriterLevel(logrus.ErrorLevel), "", 0),
			BaseContext: func(l net.Listener) context.Context {
				return context.Background()
			},
		},
	}

	// Routes. Paths are unversioned: they are the contract probe tooling
	// is already pointed at.
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/start_cpu_intensive", s.handleStart)
	mux.HandleFunc("/stop_cpu_intensive", s.handleStop)
	mux.HandleFunc("/status_cpu_load", s.handleStatus)

	return s
}

// Start begins serving HTTP in a background goroutine.
// It returns immediately; use Stop for graceful shutdown.
func (s *Server) Start() {
	go func() {
		s.logger.WithField("addr", s.http.Addr).Info("api: listening")
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("api: ListenAndServe error")
		}
	}()
}

// Stop gracefully shuts down the server, waiting up to ShutdownTimeout.
// A running load task is not waited for; it is abandoned daemon-style.
func (s *Server) Stop(ctx context.Context) error {
	timeout := s.opts.ShutdownTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.http.Shutdown(ctx)
}

// handleHealth is a simple readiness/liveness endpoint. No preconditions,
// no side effects beyond the access log line.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: errMethodNotAllowed})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK})
}

// handleStart accepts a CPU load request.
// Method: POST
// Request: optional {"iterations": <int>}; an unreadable body means "use
// the configured default".
// Response (202): MessageResponse confirming the resolved budget; the work
// itself proceeds in the background (fire-and-forget).
// Errors:
//   - 400 for a present but non-integer or non-positive iterations value
//   - 409 while a load task is already active; the request's budget is
//     discarded, not queued
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: errMethodNotAllowed})
		return
	}

	iterations, apiErr := resolveIterations(r.Body, s.ctrl.DefaultIterations())
	if apiErr != nil {
		writeJSON(w, http.StatusBadRequest, *apiErr)
		return
	}

	task, err := s.ctrl.Start(iterations)
	if err != nil {
		if errors.Is(err, core.ErrAlreadyActive) {
			writeJSON(w, http.StatusConflict, MessageResponse{Message: msgAlreadyActive})
			return
		}
		// No other start failure exists today.
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, MessageResponse{
		Message: fmt.Sprintf("CPU-intensive task started with %d iterations.", task.Iterations()),
	})
}

// handleStop signals the active load task to terminate.
// Method: POST
// Response (200): MessageResponse. Stopping with nothing active is a
// success, not an error, which keeps the endpoint idempotent. The handler
// never waits for the task to observe the signal.
func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: errMethodNotAllowed})
		return
	}

	if !s.ctrl.Stop() {
		writeJSON(w, http.StatusOK, MessageResponse{Message: msgNoLoadActive})
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msgStopSignalSent})
}

// handleStatus reports the current load state. Purely observational.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: errMethodNotAllowed})
		return
	}

	snap := s.ctrl.Snapshot()
	resp := FromCoreSnapshot(snap, s.cpu.UtilizationPercent(), int64(time.Since(s.startedAt).Seconds()))
	writeJSON(w, http.StatusOK, resp)
}

// Basic middleware: sets JSON content type and very lightweight logging.
// No CORS or auth because this is a local control-plane service.
func withBasicMiddleware(next http.Handler, logger *logrus.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("api: request")
	})
}

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}
