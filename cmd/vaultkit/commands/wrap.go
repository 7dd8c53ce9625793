package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/pkg/vault"
)

func NewWrapCommand(cfg *config.Config) *cobra.Command {
	var (
		ttl    string
		method string
	)

	cmd := &cobra.Command{
		Use:   "wrap <endpoint>",
		Short: "Call an endpoint with response wrapping",
		Long: `Issue a call with response wrapping requested. Instead of the real
response, the server returns a single-use token that a later
'vaultkit unwrap' exchanges for the payload:

  vaultkit wrap /v1/secret/app --ttl 15m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			wrapTTL := ttl
			if wrapTTL == "" && cfg.Definition.WrapTTL != "" {
				wrapTTL = cfg.Definition.WrapTTL
			}
			if wrapTTL == "" {
				wrapTTL = "300"
			}

			info, err := client.RequestWrapped(cmd.Context(), method, args[0], nil, wrapTTL)
			if err != nil {
				return vkerrors.VaultError("wrap", err)
			}

			cfg.Logger.Info("Wrapped response, valid for %s (created %s)",
				info.TTL.Std(), info.CreationTime.Format("15:04:05 MST"))
			// The single-use token goes to stdout for capture.
			fmt.Fprintln(cmd.OutOrStdout(), info.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&ttl, "ttl", "", "Wrap TTL: seconds or <n>{s,m,h} (default: wrap_ttl from config, then 300)")
	cmd.Flags().StringVar(&method, "method", "GET", "HTTP method for the wrapped call")
	return cmd
}

func NewUnwrapCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unwrap <token>",
		Short: "Exchange a single-use wrapping token for its payload",
		Long: `Exchange a wrapping token for the envelope it hides. The token is
valid for exactly one exchange; a second attempt fails server-side.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			inner, err := vault.Unwrap[map[string]string](cmd.Context(), client, args[0])
			if err != nil {
				return vkerrors.VaultError("unwrap", err)
			}

			out, err := json.MarshalIndent(inner.Data, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	return cmd
}
