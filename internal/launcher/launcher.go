// Package launcher implements the sequential visit/probe/launch loop
// over a cluster's configured daemons.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fishadm/internal/daemon"
	"fishadm/internal/history"
	"fishadm/internal/metrics"
	"fishadm/internal/probe"
	"fishadm/internal/remote"
)

// RunnerFactory resolves the execution target for a daemon.
type RunnerFactory func(daemon.Daemon) remote.Runner

// State classifies what happened to one daemon during an operation.
type State string

const (
	StateLaunched       State = "launched"
	StateAlreadyRunning State = "already-running"
	StateRunning        State = "running"
	StateNotRunning     State = "not-running"
	StateStopped        State = "stopped"
	StateError          State = "error"
)

// Result is the per-daemon outcome of an operation.
type Result struct {
	Daemon daemon.Daemon `json:"daemon"`
	Seq    int           `json:"seq"`
	State  State         `json:"state"`
	PID    int           `json:"pid,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Launcher drives start/stop/status sweeps over daemon iterators.
// It processes one daemon at a time, in iteration order.
type Launcher struct {
	runnerFor RunnerFactory
	logger    *slog.Logger
	sink      history.Sink
}

func New() *Launcher {
	return &Launcher{runnerFor: remote.ForDaemon, logger: slog.Default()}
}

// SetRunnerFactory overrides how execution targets are resolved.
func (l *Launcher) SetRunnerFactory(f RunnerFactory) {
	if f != nil {
		l.runnerFor = f
	}
}

func (l *Launcher) SetLogger(lg *slog.Logger) {
	if lg != nil {
		l.logger = lg
	}
}

// SetSink attaches an optional history sink. Sink failures are logged,
// never propagated: audit export must not break cluster operations.
func (l *Launcher) SetSink(s history.Sink) { l.sink = s }

// StartAll visits every daemon the iterator yields, probes its PID file
// and launches it unless it is already running.
//
// Probe errors and launch spawn failures abort the remaining daemons:
// there is no retry and no partial-failure isolation in this sweep.
func (l *Launcher) StartAll(ctx context.Context, it *daemon.Iter) ([]Result, error) {
	var results []Result
	seq := 0
	for d, ok := it.Next(); ok; d, ok = it.Next() {
		seq++
		l.logger.Info(fmt.Sprintf("processing daemon %d", seq), "descriptor", d.Describe())
		r := l.runnerFor(d)

		pr, err := probe.Run(ctx, r, d.PIDFile)
		if err != nil {
			metrics.IncProbe("error")
			return results, err
		}
		if pr.Status == probe.StatusRunning {
			metrics.IncProbe("running")
			l.logger.Error(fmt.Sprintf("daemon %d is still running as process %d", seq, pr.PID), "daemon", d.Name())
			l.record(ctx, history.EventAlreadyRunning, d, pr.PID)
			results = append(results, Result{Daemon: d, Seq: seq, State: StateAlreadyRunning, PID: pr.PID})
			continue
		}
		metrics.IncProbe("not-running")

		if err := r.Start(ctx, d.StartCommand()); err != nil {
			return results, fmt.Errorf("launch %s: %w", d.Name(), err)
		}
		metrics.IncLaunch(string(d.Kind))
		l.record(ctx, history.EventLaunch, d, 0)
		l.logger.Info("launched", "daemon", d.Name(), "command", d.StartCommand(), "target", r.Describe())
		results = append(results, Result{Daemon: d, Seq: seq, State: StateLaunched})
	}
	return results, nil
}

// StopAll kills every running selected daemon and removes its PID file.
// Unlike StartAll, failures are isolated per daemon; the accumulated
// errors are returned joined after the sweep finishes.
func (l *Launcher) StopAll(ctx context.Context, it *daemon.Iter) ([]Result, error) {
	var results []Result
	var errs []error
	seq := 0
	for d, ok := it.Next(); ok; d, ok = it.Next() {
		seq++
		r := l.runnerFor(d)

		pr, err := probe.Run(ctx, r, d.PIDFile)
		if err != nil {
			metrics.IncProbe("error")
			results = append(results, Result{Daemon: d, Seq: seq, State: StateError, Error: err.Error()})
			errs = append(errs, err)
			continue
		}
		if pr.Status != probe.StatusRunning {
			metrics.IncProbe("not-running")
			l.logger.Info("daemon is not running", "daemon", d.Name())
			results = append(results, Result{Daemon: d, Seq: seq, State: StateNotRunning})
			continue
		}
		metrics.IncProbe("running")

		cmd := fmt.Sprintf("kill %d && rm -f %s", pr.PID, d.PIDFile)
		if _, err := r.Output(ctx, cmd); err != nil {
			err = fmt.Errorf("stop %s: %w", d.Name(), err)
			results = append(results, Result{Daemon: d, Seq: seq, State: StateError, PID: pr.PID, Error: err.Error()})
			errs = append(errs, err)
			continue
		}
		metrics.IncStop(string(d.Kind))
		l.record(ctx, history.EventStop, d, pr.PID)
		l.logger.Info("stopped", "daemon", d.Name(), "pid", pr.PID)
		results = append(results, Result{Daemon: d, Seq: seq, State: StateStopped, PID: pr.PID})
	}
	return results, errors.Join(errs...)
}

// StatusAll probes every selected daemon and reports its liveness.
// Probe errors are recorded per daemon and returned joined.
func (l *Launcher) StatusAll(ctx context.Context, it *daemon.Iter) ([]Result, error) {
	var results []Result
	var errs []error
	running := make(map[daemon.Kind]int)
	seq := 0
	for d, ok := it.Next(); ok; d, ok = it.Next() {
		seq++
		r := l.runnerFor(d)

		pr, err := probe.Run(ctx, r, d.PIDFile)
		if err != nil {
			metrics.IncProbe("error")
			results = append(results, Result{Daemon: d, Seq: seq, State: StateError, Error: err.Error()})
			errs = append(errs, err)
			continue
		}
		// Every kind probed this sweep gets its gauge set, zero included.
		// Otherwise a kind whose daemons all stopped would keep the
		// previous sweep's value.
		if _, ok := running[d.Kind]; !ok {
			running[d.Kind] = 0
		}
		if pr.Status == probe.StatusRunning {
			metrics.IncProbe("running")
			running[d.Kind]++
			results = append(results, Result{Daemon: d, Seq: seq, State: StateRunning, PID: pr.PID})
		} else {
			metrics.IncProbe("not-running")
			results = append(results, Result{Daemon: d, Seq: seq, State: StateNotRunning})
		}
	}
	for kind, n := range running {
		metrics.SetRunning(string(kind), n)
	}
	return results, errors.Join(errs...)
}

func (l *Launcher) record(ctx context.Context, t history.EventType, d daemon.Daemon, pid int) {
	if l.sink == nil {
		return
	}
	e := history.Event{
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Record: history.Record{
			Daemon: d.Name(),
			Kind:   string(d.Kind),
			Host:   d.Host,
			PID:    pid,
		},
	}
	if err := l.sink.Send(ctx, e); err != nil {
		l.logger.Warn("history sink send failed", "daemon", d.Name(), "error", err)
	}
}
