package commands

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
)

func NewTransitCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transit",
		Short: "Server-side encryption through the transit backend",
	}
	cmd.AddCommand(newTransitEncryptCommand(cfg), newTransitDecryptCommand(cfg))
	return cmd
}

func newTransitEncryptCommand(cfg *config.Config) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt stdin, writing base64 ciphertext to stdout",
		Long: `Read plaintext from stdin and encrypt it server-side under the named
transit key. The raw ciphertext is base64-encoded for stdout:

  echo -n "payload" | vaultkit transit encrypt --key app > payload.enc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			name, err := transitKey(cfg, key)
			if err != nil {
				return err
			}

			plaintext, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			ciphertext, err := client.TransitEncrypt(cmd.Context(), name, plaintext)
			if err != nil {
				return vkerrors.VaultError("transit encrypt", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(ciphertext))
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "Transit key name (default: transit_key from config)")
	return cmd
}

func newTransitDecryptCommand(cfg *config.Config) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt base64 ciphertext from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newVaultClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			name, err := transitKey(cfg, key)
			if err != nil {
				return err
			}

			encoded, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(encoded)))
			if err != nil {
				return vkerrors.UserError{
					Message:    "Ciphertext is not valid base64",
					Suggestion: "Pass the output of 'vaultkit transit encrypt' unmodified",
					Err:        err,
				}
			}

			plaintext, err := client.TransitDecrypt(cmd.Context(), name, ciphertext)
			if err != nil {
				return vkerrors.VaultError("transit decrypt", err)
			}
			_, err = cmd.OutOrStdout().Write(plaintext)
			return err
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "Transit key name (default: transit_key from config)")
	return cmd
}
