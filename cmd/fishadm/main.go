package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := buildRoot()
	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildRoot creates the root command and wires the subcommands.
func buildRoot() *cobra.Command {
	globalFlags := &GlobalFlags{}
	selectorFlags := &SelectorFlags{}

	fishadmCommand := command{}

	root := createRootCommand(globalFlags)
	root.AddCommand(
		createStartCommand(fishadmCommand, globalFlags, selectorFlags),
		createStopCommand(fishadmCommand, globalFlags, selectorFlags),
		createStatusCommand(fishadmCommand, globalFlags, selectorFlags),
		createServeCommand(fishadmCommand, globalFlags),
	)
	return root
}

// createRootCommand creates the root command with the persistent
// cluster-config flag every subcommand requires.
func createRootCommand(flags *GlobalFlags) *cobra.Command {
	root := &cobra.Command{
		Use:   "fishadm",
		Short: "Cluster daemon administration for fishd",
		Long: `fishadm launches, stops and inspects the daemons of a fishd cluster.
Daemon liveness is decided by the PID file on each daemon's host.

Examples:
  fishadm start -c cluster.toml
  fishadm status -c cluster.toml --kind=osd
  fishadm stop -c cluster.toml --kind=mds --id=0
  fishadm serve -c cluster.toml`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flags.ClusterConfig, "cluster-config", "c", "", "path to cluster configuration file (required)")
	if err := root.MarkPersistentFlagRequired("cluster-config"); err != nil {
		panic(err)
	}
	return root
}

// addSelectorFlags registers the optional kind/id selector flags.
func addSelectorFlags(cmd *cobra.Command, flags *SelectorFlags) {
	cmd.Flags().StringVar(&flags.Kind, "kind", "", "restrict to a daemon kind (mds or osd)")
	cmd.Flags().IntVar(&flags.ID, "id", -1, "restrict to a single daemon id")
}

func createStartCommand(fishadmCommand command, globalFlags *GlobalFlags, selectorFlags *SelectorFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Launch every configured daemon not already running",
		Long: `Visit each daemon in the cluster configuration, probe its PID file on
its host and launch it unless it is already running. Daemons found
running are reported and skipped. A probe or launch failure aborts the
remaining daemons.

Examples:
  fishadm start -c cluster.toml
  fishadm start -c cluster.toml --kind=osd --id=2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fishadmCommand.Start(*globalFlags, *selectorFlags)
		},
	}
	addSelectorFlags(cmd, selectorFlags)
	return cmd
}

func createStopCommand(fishadmCommand command, globalFlags *GlobalFlags, selectorFlags *SelectorFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop running daemons and remove their PID files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fishadmCommand.Stop(*globalFlags, *selectorFlags)
		},
	}
	addSelectorFlags(cmd, selectorFlags)
	return cmd
}

func createStatusCommand(fishadmCommand command, globalFlags *GlobalFlags, selectorFlags *SelectorFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report which daemons are running",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fishadmCommand.Status(*globalFlags, *selectorFlags)
		},
	}
	addSelectorFlags(cmd, selectorFlags)
	return cmd
}

func createServeCommand(fishadmCommand command, globalFlags *GlobalFlags) *cobra.Command {
	serveFlags := &ServeFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the cluster operations over HTTP",
		Long: `Start an HTTP server offering the start/stop/status operations and the
daemon list. The listen address comes from the [server] section of the
cluster configuration unless overridden with --listen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fishadmCommand.Serve(*globalFlags, *serveFlags)
		},
	}
	cmd.Flags().StringVar(&serveFlags.Listen, "listen", "", "listen address override (e.g. :8080)")
	cmd.Flags().StringVar(&serveFlags.BasePath, "base-path", "", "base path override (e.g. /api)")
	return cmd
}
