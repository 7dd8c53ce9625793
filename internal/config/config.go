package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/internal/logging"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "vaultkit.yaml"

// Config holds the runtime configuration
type Config struct {
	Path           string
	Logger         *logging.Logger
	NonInteractive bool
	Definition     *Definition
}

// Definition represents the vaultkit.yaml structure
type Definition struct {
	Version     int      `yaml:"version" json:"version"`
	Addresses   []string `yaml:"addresses" json:"addresses"`
	Token       string   `yaml:"token,omitempty" json:"token,omitempty"`             // inline token (discouraged, use env or keyring)
	TokenSource string   `yaml:"token_source,omitempty" json:"token_source,omitempty"` // env, keyring, or inline
	TransitKey  string   `yaml:"transit_key,omitempty" json:"transit_key,omitempty"`
	WrapTTL     string   `yaml:"wrap_ttl,omitempty" json:"wrap_ttl,omitempty"`
	TLSSkip     bool     `yaml:"tls_skip,omitempty" json:"tls_skip,omitempty"`
}

// definitionSchema is the structural contract for vaultkit.yaml. The YAML
// document is re-marshaled to JSON and validated against it before use.
const definitionSchema = `{
  "type": "object",
  "required": ["version", "addresses"],
  "properties": {
    "version": {"type": "integer", "enum": [1]},
    "addresses": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string", "pattern": "^https?://"}
    },
    "token": {"type": "string"},
    "token_source": {"type": "string", "enum": ["env", "keyring", "inline"]},
    "transit_key": {"type": "string"},
    "wrap_ttl": {"type": "string", "pattern": "^[0-9]+[smh]?$"},
    "tls_skip": {"type": "boolean"}
  },
  "additionalProperties": false
}`

// Load reads, validates, and applies environment overrides to the
// configuration file. A missing file is only an error when no VAULT_ADDR
// override is present.
func (c *Config) Load() error {
	if c.Definition != nil {
		return nil // already loaded
	}
	path := c.Path
	if path == "" {
		path = DefaultPath
	}

	def := &Definition{Version: 1}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(def); err != nil {
			return vkerrors.ConfigError{
				Field:      "file",
				Value:      path,
				Message:    fmt.Sprintf("invalid YAML: %v", err),
				Suggestion: "Check the syntax of " + path,
			}
		}
		if err := validateDefinition(def); err != nil {
			return err
		}
	case os.IsNotExist(err) && os.Getenv("VAULT_ADDR") != "":
		// Config file is optional when the address comes from the environment.
	default:
		return vkerrors.ConfigError{
			Field:      "file",
			Value:      path,
			Message:    fmt.Sprintf("cannot read configuration: %v", err),
			Suggestion: "Create " + DefaultPath + " or set VAULT_ADDR",
		}
	}

	applyEnvOverrides(def)

	if len(def.Addresses) == 0 {
		return vkerrors.ConfigError{
			Field:      "addresses",
			Message:    "at least one Vault address is required",
			Suggestion: "Add 'addresses' to " + DefaultPath + " or set VAULT_ADDR",
		}
	}

	c.Definition = def
	return nil
}

// validateDefinition checks the parsed document against definitionSchema.
func validateDefinition(def *Definition) error {
	jsonData, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal config for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(definitionSchema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var messages []string
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return vkerrors.ConfigError{
			Field:      "file",
			Message:    "schema validation failed:\n  - " + strings.Join(messages, "\n  - "),
			Suggestion: "Compare your file against the documented vaultkit.yaml format",
		}
	}
	return nil
}

func applyEnvOverrides(def *Definition) {
	if addr := os.Getenv("VAULT_ADDR"); addr != "" {
		def.Addresses = nil
		for _, a := range strings.Split(addr, ",") {
			if a = strings.TrimSpace(a); a != "" {
				def.Addresses = append(def.Addresses, a)
			}
		}
	}
	if skip := os.Getenv("VAULT_SKIP_VERIFY"); skip == "1" || strings.ToLower(skip) == "true" {
		def.TLSSkip = true
	}
}
