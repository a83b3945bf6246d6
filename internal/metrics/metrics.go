package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Package-level Prometheus collectors. They are registered via Register.
var (
	regOK atomic.Bool

	daemonProbes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fishadm",
			Subsystem: "daemon",
			Name:      "probes_total",
			Help:      "Number of PID-file liveness probes by outcome.",
		}, []string{"outcome"},
	)
	daemonLaunches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fishadm",
			Subsystem: "daemon",
			Name:      "launches_total",
			Help:      "Number of daemon start commands issued.",
		}, []string{"kind"},
	)
	daemonStops = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fishadm",
			Subsystem: "daemon",
			Name:      "stops_total",
			Help:      "Number of daemon stop commands issued.",
		}, []string{"kind"},
	)
	daemonsRunning = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fishadm",
			Subsystem: "daemon",
			Name:      "running",
			Help:      "Daemons found running per kind at the last status sweep.",
		}, []string{"kind"},
	)
)

// Register registers all metrics with the provided registerer.
// It is safe to call multiple times; subsequent calls after success are no-ops.
func Register(r prometheus.Registerer) error {
	if regOK.Load() {
		return nil
	}
	cs := []prometheus.Collector{daemonProbes, daemonLaunches, daemonStops, daemonsRunning}
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			// If already registered, ignore (allows double Register with default registry)
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Handler returns an http.Handler serving Prometheus metrics for the
// DefaultGatherer. The caller wires the route and server.
func Handler() http.Handler { return promhttp.Handler() }

// Helpers below no-op until Register has been called.

func IncProbe(outcome string) {
	if regOK.Load() {
		daemonProbes.WithLabelValues(outcome).Inc()
	}
}
func IncLaunch(kind string) {
	if regOK.Load() {
		daemonLaunches.WithLabelValues(kind).Inc()
	}
}
func IncStop(kind string) {
	if regOK.Load() {
		daemonStops.WithLabelValues(kind).Inc()
	}
}
func SetRunning(kind string, n int) {
	if regOK.Load() {
		daemonsRunning.WithLabelValues(kind).Set(float64(n))
	}
}
