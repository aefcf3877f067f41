package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opsbench/cpuload-agent/internal/api"
	"github.com/opsbench/cpuload-agent/internal/config"
	"github.com/opsbench/cpuload-agent/internal/core"
	"github.com/opsbench/cpuload-agent/internal/cpustat"
)

func main() {
	shutdownSecs := flag.Int("shutdown-secs", 5, "graceful shutdown timeout in seconds")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.FromEnv()
	if err != nil {
		logger.WithError(err).Fatal("agent: invalid configuration")
	}

	// Load controller
	ctrl := core.NewController(cfg.FibIterations, logger)

	// API server
	srv := api.NewServer(ctrl, api.ServerOptions{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   time.Duration(*shutdownSecs) * time.Second,
		Logger:            logger,
		CPU:               cpustat.NewSampler(),
	})

	logger.WithFields(logrus.Fields{
		"port":           cfg.Port,
		"fib_iterations": cfg.FibIterations,
	}).Info("agent: starting")

	srv.Start()

	// Handle shutdown signals
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	sig := <-signals
	logger.WithField("signal", sig.String()).Info("agent: shutting down")

	// A running load task is daemon-style: shutdown abandons it.
	ctx := context.Background()
	if err := srv.Stop(ctx); err != nil {
		logger.WithError(err).Warn("agent: graceful shutdown error")
	}
	logger.Info("agent: stopped")
}
