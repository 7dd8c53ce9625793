package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/internal/logging"
)

func NewSetCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a secret value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if err := client.SetSecret(cmd.Context(), args[0], args[1]); err != nil {
				return vkerrors.VaultError("set", err)
			}
			cfg.Logger.Info("Stored secret %s (value: %s)", args[0], logging.Secret(args[1]))
			return nil
		},
	}
	return cmd
}
