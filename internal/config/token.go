package config

import (
	"errors"
	"os"

	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/internal/secure"
	"github.com/zalando/go-keyring"
)

// keyringService namespaces vaultkit entries in the OS keyring.
const keyringService = "vaultkit"

// keyringUser is the account label the token is stored under.
const keyringUser = "vault-token"

// ResolveToken finds the bearer token according to the configured source
// and returns it inside a protected buffer. Lookup order for the default
// "env" source: VAULT_TOKEN, then the OS keyring.
func (c *Config) ResolveToken() (*secure.TokenBuffer, error) {
	def := c.Definition

	switch def.TokenSource {
	case "inline":
		if def.Token == "" {
			return nil, vkerrors.ConfigError{
				Field:      "token",
				Message:    "token_source is 'inline' but no token is set",
				Suggestion: "Add 'token' to the config file, or switch token_source to env or keyring",
			}
		}
		return secure.NewTokenBuffer([]byte(def.Token)), nil

	case "keyring":
		return tokenFromKeyring()

	default: // "env" or unset
		if token := os.Getenv("VAULT_TOKEN"); token != "" {
			return secure.NewTokenBuffer([]byte(token)), nil
		}
		if buf, err := tokenFromKeyring(); err == nil {
			return buf, nil
		}
		return nil, vkerrors.UserError{
			Message:    "No Vault token found",
			Suggestion: "Set VAULT_TOKEN or run 'vaultkit login'",
		}
	}
}

func tokenFromKeyring() (*secure.TokenBuffer, error) {
	token, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, vkerrors.UserError{
				Message:    "No Vault token stored in the system keyring",
				Suggestion: "Run 'vaultkit login' to store one",
			}
		}
		return nil, vkerrors.UserError{
			Message: "Cannot read the system keyring",
			Err:     err,
		}
	}
	return secure.NewTokenBuffer([]byte(token)), nil
}

// StoreToken saves the token in the OS keyring for later sessions.
func StoreToken(token string) error {
	return keyring.Set(keyringService, keyringUser, token)
}

// ClearToken removes the stored token from the OS keyring. A missing entry
// is not an error.
func ClearToken() error {
	err := keyring.Delete(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
