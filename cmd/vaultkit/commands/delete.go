package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
)

func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if err := client.DeleteSecret(cmd.Context(), args[0]); err != nil {
				return vkerrors.VaultError("delete", err)
			}
			cfg.Logger.Info("Deleted secret %s", args[0])
			return nil
		},
	}
	return cmd
}
