// Package fishadm manages the daemons of a fishd distributed filesystem
// cluster: it probes PID files on each daemon's host and starts, stops
// or reports the daemons a cluster configuration file describes.
package fishadm

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cfg "fishadm/internal/config"
	"fishadm/internal/daemon"
	"fishadm/internal/history"
	"fishadm/internal/history/factory"
	"fishadm/internal/launcher"
	"fishadm/internal/logger"
	"fishadm/internal/metrics"
	iapi "fishadm/internal/server"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Daemon = daemon.Daemon

type Kind = daemon.Kind

const (
	KindMDS = daemon.KindMDS
	KindOSD = daemon.KindOSD
)

type Selector = daemon.Selector

type Result = launcher.Result

type Config = cfg.Config

type HistorySink = history.Sink

type LoggerConfig = logger.Config

// Launcher is a thin facade over internal/launcher bound to a fixed
// daemon list. It provides a stable public API for embedding.
type Launcher struct {
	inner   *launcher.Launcher
	daemons []Daemon
}

func New(daemons []Daemon) *Launcher {
	return &Launcher{inner: launcher.New(), daemons: daemons}
}

func (l *Launcher) SetLogger(lg *slog.Logger) { l.inner.SetLogger(lg) }
func (l *Launcher) SetSink(s HistorySink)     { l.inner.SetSink(s) }

// Daemons returns the configured daemon list in iteration order.
func (l *Launcher) Daemons() []Daemon { return l.daemons }

func (l *Launcher) Start(ctx context.Context, sel *Selector) ([]Result, error) {
	return l.inner.StartAll(ctx, daemon.NewIter(l.daemons, sel))
}

func (l *Launcher) Stop(ctx context.Context, sel *Selector) ([]Result, error) {
	return l.inner.StopAll(ctx, daemon.NewIter(l.daemons, sel))
}

func (l *Launcher) Status(ctx context.Context, sel *Selector) ([]Result, error) {
	return l.inner.StatusAll(ctx, daemon.NewIter(l.daemons, sel))
}

// LoadConfig parses and validates a cluster configuration file.
func LoadConfig(path string) (*Config, error) { return cfg.Load(path) }

// NewLogger builds the tool logger from a [log] section.
func NewLogger(c LoggerConfig) (*slog.Logger, io.Closer) { return logger.New(c) }

// NewHistorySink creates a launch-history sink from a DSN
// (sqlite, postgres or clickhouse).
func NewHistorySink(dsn string) (HistorySink, error) { return factory.NewSinkFromDSN(dsn) }

// NewHTTPServer starts an HTTP server exposing the cluster API for the
// given launcher.
func NewHTTPServer(addr, basePath string, l *Launcher) (*http.Server, error) {
	return iapi.NewServer(addr, basePath, l.inner, l.daemons)
}

// Metrics helpers (public facade)

func RegisterMetrics(r prometheus.Registerer) error { return metrics.Register(r) }
func RegisterMetricsDefault() error                 { return metrics.Register(prometheus.DefaultRegisterer) }

// ServeMetrics starts an HTTP server on addr exposing /metrics using the
// default registry. It blocks in the caller goroutine.
func ServeMetrics(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}
