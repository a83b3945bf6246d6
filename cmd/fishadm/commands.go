package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fishadm"
	"fishadm/internal/launcher"
)

// command implements the subcommand bodies over the fishadm facade.
type command struct{}

// setup loads the cluster configuration and builds a launcher wired
// with the configured logger, metrics and history sink.
// The returned cleanup closes the log file and sink; it is never nil.
func (command) setup(flags GlobalFlags) (*fishadm.Config, *fishadm.Launcher, *slog.Logger, func(), error) {
	cfg, err := fishadm.LoadConfig(flags.ClusterConfig)
	if err != nil {
		return nil, nil, nil, func() {}, fmt.Errorf("error loading cluster config: %w", err)
	}

	lg, logCloser := fishadm.NewLogger(cfg.LoggerConfig())
	l := fishadm.New(cfg.Daemons)
	l.SetLogger(lg)

	if cfg.Metrics != nil && cfg.Metrics.Enabled {
		if err := fishadm.RegisterMetricsDefault(); err != nil {
			lg.Warn("failed to register metrics", "error", err)
		}
	}

	var sinkCloser io.Closer
	if cfg.History != nil && cfg.History.DSN != "" {
		sink, err := fishadm.NewHistorySink(cfg.History.DSN)
		if err != nil {
			closeQuiet(logCloser)
			return nil, nil, nil, func() {}, fmt.Errorf("error opening history sink: %w", err)
		}
		l.SetSink(sink)
		if c, ok := sink.(io.Closer); ok {
			sinkCloser = c
		}
	}

	cleanup := func() {
		closeQuiet(sinkCloser)
		closeQuiet(logCloser)
	}
	return cfg, l, lg, cleanup, nil
}

func closeQuiet(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

func (c command) Start(flags GlobalFlags, selFlags SelectorFlags) error {
	sel, err := selFlags.Selector()
	if err != nil {
		return err
	}
	_, l, _, cleanup, err := c.setup(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := l.Start(context.Background(), sel)
	printResults(results)
	return err
}

func (c command) Stop(flags GlobalFlags, selFlags SelectorFlags) error {
	sel, err := selFlags.Selector()
	if err != nil {
		return err
	}
	_, l, _, cleanup, err := c.setup(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := l.Stop(context.Background(), sel)
	printResults(results)
	return err
}

func (c command) Status(flags GlobalFlags, selFlags SelectorFlags) error {
	sel, err := selFlags.Selector()
	if err != nil {
		return err
	}
	_, l, _, cleanup, err := c.setup(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := l.Status(context.Background(), sel)
	printResults(results)
	return err
}

func (c command) Serve(flags GlobalFlags, serveFlags ServeFlags) error {
	cfg, l, lg, cleanup, err := c.setup(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	listen := serveFlags.Listen
	basePath := serveFlags.BasePath
	if cfg.Server != nil {
		if listen == "" {
			listen = cfg.Server.Listen
		}
		if basePath == "" {
			basePath = cfg.Server.BasePath
		}
	}
	if listen == "" {
		return fmt.Errorf("serve requires a listen address ([server].listen or --listen)")
	}

	if cfg.Metrics != nil && cfg.Metrics.Enabled && cfg.Metrics.Listen != "" {
		go func() {
			if err := fishadm.ServeMetrics(cfg.Metrics.Listen); err != nil {
				lg.Warn("metrics server error", "listen", cfg.Metrics.Listen, "error", err)
			}
		}()
	}

	server, err := fishadm.NewHTTPServer(listen, basePath, l)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}
	fmt.Printf("Starting fishadm server on %s%s\n", listen, basePath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("Shutting down...")
	return server.Close()
}

// printResults writes one line per daemon to stdout.
func printResults(results []launcher.Result) {
	for _, r := range results {
		switch {
		case r.PID > 0 && r.Error == "":
			fmt.Printf("%s\t%s\tpid=%d\n", r.Daemon.Name(), r.State, r.PID)
		case r.Error != "":
			fmt.Printf("%s\t%s\t%s\n", r.Daemon.Name(), r.State, r.Error)
		default:
			fmt.Printf("%s\t%s\n", r.Daemon.Name(), r.State)
		}
	}
}
