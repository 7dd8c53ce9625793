package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
)

func NewGetCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a secret value",
		Long: `Retrieve a secret from the generic backend and print its value.

Only the raw value is written to stdout, making the command suitable
for scripting:

  export DB_PASSWORD=$(vaultkit get prod/db-password)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			value, err := client.GetSecret(cmd.Context(), args[0])
			if err != nil {
				return vkerrors.VaultError("get", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	return cmd
}
