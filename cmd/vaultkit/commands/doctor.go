package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkit/internal/config"
)

func NewDoctorCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration, connectivity, and token validity",
		Long: `Verify that vaultkit can talk to the configured service.

This command checks:
- Configuration file validity
- Reachability of the configured addresses (with failover)
- Service health (initialized, sealed)
- Whether the resolved token passes a lookup-self probe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Logger.Info("Checking vaultkit configuration...")
			if err := cfg.Load(); err != nil {
				cfg.Logger.Error("Configuration error: %v", err)
				return err
			}
			cfg.Logger.Info("Configuration loaded (%d address(es))", len(cfg.Definition.Addresses))

			client, err := unverifiedClient(cfg)
			if err != nil {
				return err
			}
			health, err := client.Health(cmd.Context())
			if err != nil {
				cfg.Logger.Error("Health check failed: %v", err)
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintf(w, "initialized\t%t\n", health.Initialized)
			fmt.Fprintf(w, "sealed\t%t\n", health.Sealed)
			fmt.Fprintf(w, "standby\t%t\n", health.Standby)
			if health.Version != "" {
				fmt.Fprintf(w, "version\t%s\n", health.Version)
			}
			if health.ClusterName != "" {
				fmt.Fprintf(w, "cluster\t%s\n", health.ClusterName)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if health.Sealed {
				cfg.Logger.Warn("The service is sealed; requests will fail until it is unsealed")
			}

			// Token check is best-effort: doctor stays useful before login.
			if _, err := newVaultClient(cmd.Context(), cfg); err != nil {
				cfg.Logger.Warn("Token check failed: %v", err)
			} else {
				cfg.Logger.Info("Token accepted by lookup-self")
			}
			return nil
		},
	}
}
