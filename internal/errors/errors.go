package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/systmms/vaultkit/pkg/vault"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// VaultError wraps a client-library error with user-facing context
func VaultError(operation string, err error) error {
	return UserError{
		Message:    fmt.Sprintf("Vault error during %s", operation),
		Suggestion: getVaultSuggestion(err),
		Err:        err,
	}
}

// getVaultSuggestion returns helpful suggestions based on the error
func getVaultSuggestion(err error) string {
	switch {
	case errors.Is(err, vault.ErrForbidden):
		return "The token was rejected. Check VAULT_TOKEN or run 'vaultkit login' again"
	case errors.Is(err, vault.ErrNoHosts):
		return "No Vault addresses configured. Set VAULT_ADDR or add 'addresses' to vaultkit.yaml"
	case errors.Is(err, vault.ErrMissingWrapInfo):
		return "The server ignored the wrap request. Check that response wrapping is enabled on this endpoint"
	}

	var unreachable *vault.UnreachableError
	if errors.As(err, &unreachable) {
		return "No Vault host could be reached. Check the addresses and that the service is running"
	}

	var api *vault.APIError
	if errors.As(err, &api) {
		switch api.StatusCode {
		case 403:
			return "Permission denied. Check the token's policies for this path"
		case 404:
			return "Path not found. Check the secret path and that the backend is mounted"
		case 503:
			return "The Vault service is sealed or unavailable. Run 'vaultkit doctor' to check its health"
		}
		return "The server rejected the request. Inspect the response body for details"
	}

	var dec *vault.DecodeError
	if errors.As(err, &dec) {
		return "The response could not be decoded. Check that the address points at a Vault API, not a UI or proxy"
	}

	return ""
}
