package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/pkg/vault"
)

func NewCallCommand(cfg *config.Config) *cobra.Command {
	var (
		method  string
		body    string
		wrapTTL string
	)

	cmd := &cobra.Command{
		Use:   "call <endpoint>",
		Short: "Call any endpoint (escape hatch)",
		Long: `Issue a raw call against any endpoint and print the decoded envelope.
This is the generic path every named command is built on; use it for
backends vaultkit has no dedicated command for:

  vaultkit call /v1/postgresql/creds/readonly
  vaultkit call /v1/secret/app --method DELETE
  vaultkit call /v1/secret/ --method LIST`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			method = strings.ToUpper(method)

			var payload interface{}
			if body != "" {
				if err := json.Unmarshal([]byte(body), &payload); err != nil {
					return vkerrors.UserError{
						Message:    "Request body is not valid JSON",
						Details:    err.Error(),
						Suggestion: "Pass a JSON object, e.g. --body '{\"value\": \"x\"}'",
					}
				}
			}

			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			res, err := vault.Call[map[string]interface{}](cmd.Context(), client, method, args[0], &vault.CallOptions{
				Body:    payload,
				WrapTTL: wrapTTL,
			})
			if err != nil {
				return vkerrors.VaultError("call", err)
			}
			if res.Empty {
				cfg.Logger.Info("Empty response (success)")
				return nil
			}

			out, err := json.MarshalIndent(res.Secret, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&method, "method", "GET", "HTTP method: GET, POST, PUT, DELETE, or LIST")
	cmd.Flags().StringVar(&body, "body", "", "JSON request body")
	cmd.Flags().StringVar(&wrapTTL, "wrap-ttl", "", "Request response wrapping with this TTL")
	return cmd
}
