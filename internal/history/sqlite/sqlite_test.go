package sqlite

import (
	"context"
	"testing"
	"time"

	"fishadm/internal/history"
)

func testEvent(tpe history.EventType, pid int) history.Event {
	return history.Event{
		Type:       tpe,
		OccurredAt: time.Now().UTC(),
		Record: history.Record{
			Daemon: "mds.0",
			Kind:   "mds",
			Host:   "mds0.example.com",
			PID:    pid,
		},
	}
}

func TestSQLiteSink_Integration(t *testing.T) {
	dbPath := t.TempDir() + "/history.db"

	sink, err := New("sqlite://" + dbPath)
	if err != nil {
		t.Fatalf("failed to create sink: %v", err)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			t.Errorf("failed to close sink: %v", err)
		}
	}()

	ctx := context.Background()

	if err := sink.Send(ctx, testEvent(history.EventLaunch, 0)); err != nil {
		t.Fatalf("failed to send launch event: %v", err)
	}
	if err := sink.Send(ctx, testEvent(history.EventAlreadyRunning, 123)); err != nil {
		t.Fatalf("failed to send already-running event: %v", err)
	}
	if err := sink.Send(ctx, testEvent(history.EventStop, 123)); err != nil {
		t.Fatalf("failed to send stop event: %v", err)
	}

	var count int
	if err := sink.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM launch_history").Scan(&count); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rows, got %d", count)
	}

	var daemonName, event string
	var pid int
	row := sink.db.QueryRowContext(ctx,
		"SELECT daemon, pid, event FROM launch_history WHERE event = ?", string(history.EventAlreadyRunning))
	if err := row.Scan(&daemonName, &pid, &event); err != nil {
		t.Fatalf("row query: %v", err)
	}
	if daemonName != "mds.0" || pid != 123 {
		t.Fatalf("row mismatch: daemon=%q pid=%d", daemonName, pid)
	}
}

func TestSQLiteSinkInMemory(t *testing.T) {
	sink, err := New(":memory:")
	if err != nil {
		t.Fatalf("in-memory sink: %v", err)
	}
	defer func() { _ = sink.Close() }()
	if err := sink.Send(context.Background(), testEvent(history.EventLaunch, 0)); err != nil {
		t.Fatalf("send: %v", err)
	}
}

func TestSQLiteSinkEmptyDSN(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatalf("empty DSN must fail")
	}
}
