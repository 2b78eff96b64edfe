package main

import (
	"os"
	"strings"

	"github.com/aretw0/passage"
	"github.com/aretw0/passage/internal/cli"
	"github.com/aretw0/passage/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP JSON API",
	Long: `Starts Passage as an HTTP server exposing the requirements API, the policy
catalog, a health probe and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := cli.NewShutdownContext(cmd.Context())
		defer sc.Stop()

		rt, err := newRuntime(sc)
		if err != nil {
			return err
		}
		defer rt.Close()

		port := rt.Config.HTTP.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}

		if tui.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr, strings.TrimSpace(passage.Version))
		}
		if err := cli.ServeHTTP(sc, rt, port); err != nil {
			return err
		}
		if sig := sc.Signal(); sig != nil {
			rt.Logger.Info("Passage server stopped", "signal", sig.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides config)")
}
