package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/passage/internal/cli"
	"github.com/spf13/cobra"
)

var globalOpts cli.GlobalOptions

var rootCmd = &cobra.Command{
	Use:   "passage",
	Short: "Passage answers which travel documents and visas a trip needs",
	Long: `Passage derives the document checklist for an international trip from the
traveller's citizenship, the destination, the length of stay and the purpose.

Run a one-off query with 'passage check', or expose the engine to agents and
services with 'passage mcp' and 'passage serve'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Rejected queries have already been reported on stdout.
		if !errors.Is(err, cli.ErrQueryRejected) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// newRuntime resolves configuration from the persistent flags and wires the service.
func newRuntime(ctx context.Context) (*cli.Runtime, error) {
	cfg, err := cli.LoadConfig(globalOpts)
	if err != nil {
		return nil, err
	}
	return cli.NewRuntime(ctx, cfg, os.Stderr)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalOpts.ConfigPath, "config", "", "Path to a YAML config file")
	flags.StringVar(&globalOpts.PolicyFile, "policies", "", "Path to a YAML or JSON policy catalog (defaults to the built-in catalog)")
	flags.StringVar(&globalOpts.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&globalOpts.CacheBackend, "cache", "", "Report cache backend: none, memory or redis")
	flags.StringVar(&globalOpts.RedisAddr, "redis-addr", "", "Redis address for the redis cache backend")
}
