package remote

import (
	"context"
	"os/exec"
)

// SSHExitStatus is the exit code the ssh client reserves for its own
// failures (connection refused, host key problems). Remote commands
// cannot normally produce it, so callers use it to tell transport
// errors apart from a remote non-zero exit.
const SSHExitStatus = 255

// SSH executes commands on a remote host through the ssh binary.
// BatchMode keeps a missing key or prompt from hanging the run.
type SSH struct {
	Host string
	User string
}

func (s SSH) target() string {
	if s.User != "" {
		return s.User + "@" + s.Host
	}
	return s.Host
}

func (s SSH) command(ctx context.Context, command string) *exec.Cmd {
	// #nosec G204 -- host and user come from the operator's cluster config
	return exec.CommandContext(ctx, "ssh", "-o", "BatchMode=yes", s.target(), command)
}

func (s SSH) Output(ctx context.Context, command string) ([]byte, error) {
	return s.command(ctx, command).CombinedOutput()
}

func (s SSH) Start(ctx context.Context, command string) error {
	cmd := s.command(ctx, command)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func (s SSH) Describe() string { return "ssh:" + s.target() }
