package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
)

func NewListCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [prefix]",
		Short: "List secret keys under a prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}

			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			keys, err := client.ListSecrets(cmd.Context(), prefix)
			if err != nil {
				return vkerrors.VaultError("list", err)
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
	return cmd
}
