package commands

import (
	"context"
	"crypto/tls"
	"net/http"

	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/internal/metrics"
	"github.com/systmms/vaultkit/pkg/vault"
)

// newVaultClient loads configuration, resolves the token out of its
// protected buffer, and constructs a verified client. The token plaintext
// is wiped as soon as construction finishes.
func newVaultClient(ctx context.Context, cfg *config.Config) (*vault.Client, error) {
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	buf, err := cfg.ResolveToken()
	if err != nil {
		return nil, err
	}
	defer buf.Destroy()

	var client *vault.Client
	err = buf.WithToken(func(token string) error {
		c, err := vault.NewClient(ctx, cfg.Definition.Addresses, token, clientOptions(cfg)...)
		if err != nil {
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, vkerrors.VaultError("connect", err)
	}
	return client, nil
}

// unverifiedClient builds a client without the lookup-self probe, for
// calls that need no valid prior token: logins and health checks.
func unverifiedClient(cfg *config.Config) (*vault.Client, error) {
	if err := cfg.Load(); err != nil {
		return nil, err
	}
	client, err := vault.NewUnverifiedClient(cfg.Definition.Addresses, "", clientOptions(cfg)...)
	if err != nil {
		return nil, vkerrors.VaultError("connect", err)
	}
	return client, nil
}

func clientOptions(cfg *config.Config) []vault.Option {
	opts := []vault.Option{
		vault.WithLogger(cfg.Logger),
		vault.WithObserver(metrics.NewTransportMetrics()),
	}
	if cfg.Definition.TLSSkip {
		opts = append(opts, vault.WithHTTPClient(&http.Client{
			Timeout: vault.DefaultTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}))
	}
	return opts
}

// transitKey picks the transit key name from the flag or the config file.
func transitKey(cfg *config.Config, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Definition != nil && cfg.Definition.TransitKey != "" {
		return cfg.Definition.TransitKey, nil
	}
	return "", vkerrors.UserError{
		Message:    "No transit key specified",
		Suggestion: "Use --key <name> or set transit_key in vaultkit.yaml",
	}
}
