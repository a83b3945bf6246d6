package remote

import (
	"context"
	"errors"
	"os/exec"

	"fishadm/internal/daemon"
)

// Runner executes commands on a daemon's host. Implementations exist per
// execution target: the local shell and a remote shell reached over ssh.
type Runner interface {
	// Output runs command synchronously and returns its combined output.
	// A non-zero exit is reported as an error recognizable by ExitStatus.
	Output(ctx context.Context, command string) ([]byte, error)
	// Start launches command without capturing output or waiting for it
	// to finish. Only spawn failures are reported.
	Start(ctx context.Context, command string) error
	// Describe identifies the execution target for log output.
	Describe() string
}

// ForDaemon picks the runner for d: local execution for daemons on this
// host, ssh for everything else.
func ForDaemon(d daemon.Daemon) Runner {
	if d.Local() {
		return Local{}
	}
	return SSH{Host: d.Host, User: d.User}
}

// ExitStatus extracts the exit code from a command failure.
// It returns ok=false when err does not represent a non-zero exit
// (spawn failures, context cancellation and the like).
func ExitStatus(err error) (code int, ok bool) {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode(), true
	}
	return 0, false
}
