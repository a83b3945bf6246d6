package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"fishadm/internal/history"
)

// Sink sends launcher events to ClickHouse using the official Go client.
type Sink struct {
	conn  driver.Conn
	table string
}

// New connects to ClickHouse at addr ("host:port") and writes into table.
func New(addr, table string) (*Sink, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: "default",
			Username: "default",
			Password: "",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}
	if err := conn.Ping(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	sink := &Sink{conn: conn, table: table}
	if err := sink.ensureSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return sink, nil
}

func (s *Sink) ensureSchema(ctx context.Context) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		timestamp DateTime DEFAULT now(),
		daemon String,
		kind String,
		host String,
		pid Int64,
		event String
	) ENGINE = MergeTree() ORDER BY timestamp`, s.table)
	return s.conn.Exec(ctx, stmt)
}

func (s *Sink) Send(ctx context.Context, e history.Event) error {
	query := fmt.Sprintf(`INSERT INTO %s (timestamp, daemon, kind, host, pid, event) VALUES (?, ?, ?, ?, ?, ?)`, s.table)
	return s.conn.Exec(ctx, query,
		e.OccurredAt,
		e.Record.Daemon,
		e.Record.Kind,
		e.Record.Host,
		int64(e.Record.PID),
		string(e.Type),
	)
}

func (s *Sink) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
