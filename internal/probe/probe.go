// Package probe determines daemon liveness by reading PID files.
package probe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fishadm/internal/remote"
)

// Status is the tagged outcome of a liveness probe.
type Status int

const (
	StatusNotRunning Status = iota
	StatusRunning
)

func (s Status) String() string {
	if s == StatusRunning {
		return "running"
	}
	return "not-running"
}

// Result carries the probe outcome. PID is set only for StatusRunning.
type Result struct {
	Status Status
	PID    int
}

// Run reads pidFile on the daemon's host through r.
//
// A non-zero exit of the read command means the file is absent and the
// daemon is not running; that is the expected negative signal, not an
// error. Everything else (spawn failures, ssh transport failures with
// exit 255, a PID file without a parsable PID) is a probe error and
// must not be treated as safe-to-launch.
func Run(ctx context.Context, r remote.Runner, pidFile string) (Result, error) {
	out, err := r.Output(ctx, "cat "+pidFile)
	if err != nil {
		if code, ok := remote.ExitStatus(err); ok && code != remote.SSHExitStatus {
			return Result{Status: StatusNotRunning}, nil
		}
		return Result{}, fmt.Errorf("probe %s on %s: %w", pidFile, r.Describe(), err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return Result{}, fmt.Errorf("probe %s on %s: unparsable pid %q", pidFile, r.Describe(), strings.TrimSpace(string(out)))
	}
	return Result{Status: StatusRunning, PID: pid}, nil
}
