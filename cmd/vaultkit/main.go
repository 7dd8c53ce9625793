package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkit/cmd/vaultkit/commands"
	"github.com/systmms/vaultkit/internal/config"
	"github.com/systmms/vaultkit/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "vaultkit",
		Short: "Typed client for a Vault-style secret service",
		Long: `vaultkit reads and writes secrets, manages tokens, and drives the
transit and response-wrapping features of a Vault-compatible server,
with automatic failover across the configured addresses.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.Path = configFile
			cfg.Logger = logging.New(debug, noColor)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to vaultkit.yaml (default: ./vaultkit.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		commands.NewGetCommand(cfg),
		commands.NewSetCommand(cfg),
		commands.NewDeleteCommand(cfg),
		commands.NewListCommand(cfg),
		commands.NewTokenCommand(cfg),
		commands.NewTransitCommand(cfg),
		commands.NewWrapCommand(cfg),
		commands.NewUnwrapCommand(cfg),
		commands.NewLoginCommand(cfg),
		commands.NewLogoutCommand(cfg),
		commands.NewDoctorCommand(cfg),
		commands.NewCallCommand(cfg),
	)

	return rootCmd.Execute()
}
