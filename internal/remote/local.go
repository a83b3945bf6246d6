package remote

import (
	"context"
	"os/exec"
	"strings"
)

// Local executes commands directly on this host.
type Local struct{}

// buildShellAwareCommand constructs an *exec.Cmd for a command string.
// Avoids invoking a shell unless obvious shell metacharacters are present
// (G204 mitigation).
func buildShellAwareCommand(ctx context.Context, cmdStr string) *exec.Cmd {
	cmdStr = strings.TrimSpace(cmdStr)
	if cmdStr == "" {
		return exec.CommandContext(ctx, "true")
	}
	if strings.ContainsAny(cmdStr, "|&;<>*?`$\"'(){}[]~") {
		return exec.CommandContext(ctx, "/bin/sh", "-c", cmdStr)
	}
	parts := strings.Fields(cmdStr)
	name := parts[0]
	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}
	// #nosec G204
	return exec.CommandContext(ctx, name, args...)
}

func (Local) Output(ctx context.Context, command string) ([]byte, error) {
	cmd := buildShellAwareCommand(ctx, command)
	return cmd.CombinedOutput()
}

func (Local) Start(ctx context.Context, command string) error {
	cmd := buildShellAwareCommand(ctx, command)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap in the background so the child never lingers as a zombie.
	// The exit status is deliberately not reported.
	go func() { _ = cmd.Wait() }()
	return nil
}

func (Local) Describe() string { return "local" }
