package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/internal/logging"
	"github.com/systmms/vaultkit/pkg/vault"
)

func NewTokenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect and manage the client token",
	}
	cmd.AddCommand(
		newTokenLookupCommand(cfg),
		newTokenRenewCommand(cfg),
		newTokenRevokeCommand(cfg),
		newTokenCreateCommand(cfg),
	)
	return cmd
}

func newTokenLookupCommand(cfg *config.Config) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Describe the current token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			data, err := client.LookupSelf(cmd.Context())
			if err != nil {
				return vkerrors.VaultError("token lookup", err)
			}

			if jsonOutput {
				out, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "accessor:      %s\n", data.Accessor)
			fmt.Fprintf(cmd.OutOrStdout(), "display name:  %s\n", data.DisplayName)
			fmt.Fprintf(cmd.OutOrStdout(), "created:       %s\n", data.CreationTime.Format("2006-01-02 15:04:05 MST"))
			fmt.Fprintf(cmd.OutOrStdout(), "ttl:           %s\n", data.TTL.Std())
			fmt.Fprintf(cmd.OutOrStdout(), "renewable:     %t\n", data.Renewable)
			fmt.Fprintf(cmd.OutOrStdout(), "policies:      %s\n", strings.Join(data.Policies, ", "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the full token data as JSON")
	return cmd
}

func newTokenRenewCommand(cfg *config.Config) *cobra.Command {
	var increment int

	cmd := &cobra.Command{
		Use:   "renew",
		Short: "Renew the current token's lease",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			auth, err := client.RenewSelf(cmd.Context(), increment)
			if err != nil {
				return vkerrors.VaultError("token renew", err)
			}
			cfg.Logger.Info("Token renewed, lease %s, renewable=%t", auth.LeaseDuration.Std(), auth.Renewable)
			return nil
		},
	}
	cmd.Flags().IntVar(&increment, "increment", 0, "Requested lease extension in seconds (0 lets the server choose)")
	return cmd
}

func newTokenRevokeCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke",
		Short: "Revoke the current token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if err := client.RevokeSelf(cmd.Context()); err != nil {
				return vkerrors.VaultError("token revoke", err)
			}
			cfg.Logger.Info("Token revoked")
			return nil
		},
	}
}

func newTokenCreateCommand(cfg *config.Config) *cobra.Command {
	var (
		policies    []string
		ttl         string
		displayName string
		numUses     int
		noParent    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a child token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			auth, err := client.CreateToken(cmd.Context(), &vault.TokenCreateRequest{
				Policies:    policies,
				TTL:         ttl,
				DisplayName: displayName,
				NumUses:     numUses,
				NoParent:    noParent,
			})
			if err != nil {
				return vkerrors.VaultError("token create", err)
			}

			cfg.Logger.Info("Created token %s with policies [%s]", logging.Secret(auth.ClientToken), strings.Join(auth.Policies, ", "))
			// The token itself goes to stdout so it can be captured.
			fmt.Fprintln(cmd.OutOrStdout(), auth.ClientToken)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&policies, "policy", nil, "Policy to attach (repeatable)")
	cmd.Flags().StringVar(&ttl, "ttl", "", "Token TTL, e.g. 1h")
	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name for the token")
	cmd.Flags().IntVar(&numUses, "num-uses", 0, "Maximum number of uses (0 = unlimited)")
	cmd.Flags().BoolVar(&noParent, "no-parent", false, "Create an orphan token")
	return cmd
}
