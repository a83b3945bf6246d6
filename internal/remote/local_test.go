package remote

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires Unix-like environment")
	}
}

func TestBuildShellAwareCommand(t *testing.T) {
	requireUnix(t)
	ctx := context.Background()
	// empty -> true
	c := buildShellAwareCommand(ctx, "")
	if !strings.Contains(c.String(), "true") {
		t.Fatalf("expected true, got %q", c.String())
	}
	// simple no metachar -> direct exec
	c = buildShellAwareCommand(ctx, "echo hello")
	if len(c.Args) == 0 || c.Args[0] != "echo" {
		t.Fatalf("expected direct exec echo, got %#v", c.Args)
	}
	// with shell meta -> sh -c
	c = buildShellAwareCommand(ctx, "echo hi | cat")
	if len(c.Args) < 2 || c.Args[0] != "/bin/sh" || c.Args[1] != "-c" {
		t.Fatalf("expected /bin/sh -c, got %#v", c.Args)
	}
}

func TestLocalOutputCapturesAndFailsOnNonZero(t *testing.T) {
	requireUnix(t)
	ctx := context.Background()

	out, err := Local{}.Output(ctx, "echo fishd")
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if strings.TrimSpace(string(out)) != "fishd" {
		t.Fatalf("unexpected output %q", out)
	}

	_, err = Local{}.Output(ctx, "cat "+filepath.Join(t.TempDir(), "missing.pid"))
	if err == nil {
		t.Fatalf("cat of missing file must fail")
	}
	code, ok := ExitStatus(err)
	if !ok || code == 0 {
		t.Fatalf("expected non-zero exit status, got code=%d ok=%v", code, ok)
	}
}

func TestLocalStartFireAndForget(t *testing.T) {
	requireUnix(t)
	ctx := context.Background()

	marker := filepath.Join(t.TempDir(), "started")
	if err := (Local{}).Start(ctx, "touch "+marker); err != nil {
		t.Fatalf("start: %v", err)
	}
	deadline := time.Now().Add(3 * time.Second)
	for {
		if _, err := os.Stat(marker); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("marker file never appeared")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestLocalStartSpawnFailure(t *testing.T) {
	requireUnix(t)
	if err := (Local{}).Start(context.Background(), "/nonexistent/fishd/binary -c /etc/fishd/fishd.conf"); err == nil {
		t.Fatalf("spawn of missing binary must fail")
	}
}

func TestExitStatusNonExitError(t *testing.T) {
	if _, ok := ExitStatus(os.ErrNotExist); ok {
		t.Fatalf("plain errors must not report an exit status")
	}
}
