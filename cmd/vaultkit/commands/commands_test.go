package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/vaultkit/internal/config"
	vkerrors "github.com/systmms/vaultkit/internal/errors"
	"github.com/systmms/vaultkit/internal/logging"
)

// testEnv points the CLI at a fake server through environment overrides,
// the same way CI environments drive vaultkit.
func testEnv(t *testing.T, srvURL string) *config.Config {
	t.Helper()
	t.Setenv("VAULT_ADDR", srvURL)
	t.Setenv("VAULT_TOKEN", "test-token")
	return &config.Config{
		Path:   filepath.Join(t.TempDir(), "absent.yaml"),
		Logger: logging.New(false, true),
	}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// secretVault answers lookup-self and the generic secret backend.
func secretVault(t *testing.T) *httptest.Server {
	t.Helper()
	store := map[string]string{"prod/db-password": "hunter2"}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/auth/token/lookup-self", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	})
	mux.HandleFunc("/v1/secret/", func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path[len("/v1/secret/"):]
		switch r.Method {
		case http.MethodGet:
			value, ok := store[key]
			if !ok {
				http.Error(w, `{"errors":[]}`, http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]string{"value": value},
			})
		case http.MethodPost:
			var data struct {
				Value string `json:"value"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&data))
			store[key] = data.Value
			w.WriteHeader(http.StatusNoContent)
		case "LIST":
			keys := make([]string, 0, len(store))
			for k := range store {
				keys = append(keys, k)
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"data": map[string]interface{}{"keys": keys},
			})
		}
	})
	return httptest.NewServer(mux)
}

func TestGetCommand_PrintsRawValue(t *testing.T) {
	srv := secretVault(t)
	defer srv.Close()
	cfg := testEnv(t, srv.URL)

	out, err := execute(t, NewGetCommand(cfg), "prod/db-password")
	require.NoError(t, err)
	assert.Equal(t, "hunter2\n", out)
}

func TestGetCommand_MissingKeyHasSuggestion(t *testing.T) {
	srv := secretVault(t)
	defer srv.Close()
	cfg := testEnv(t, srv.URL)

	_, err := execute(t, NewGetCommand(cfg), "prod/absent")
	require.Error(t, err)

	var userErr vkerrors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, err.Error(), "Path not found")
}

func TestSetThenGetCommand(t *testing.T) {
	srv := secretVault(t)
	defer srv.Close()
	cfg := testEnv(t, srv.URL)

	_, err := execute(t, NewSetCommand(cfg), "staging/api-key", "abc123")
	require.NoError(t, err)

	out, err := execute(t, NewGetCommand(cfg), "staging/api-key")
	require.NoError(t, err)
	assert.Equal(t, "abc123\n", out)
}

func TestListCommand(t *testing.T) {
	srv := secretVault(t)
	defer srv.Close()
	cfg := testEnv(t, srv.URL)

	out, err := execute(t, NewListCommand(cfg))
	require.NoError(t, err)
	assert.Contains(t, out, "prod/db-password")
}

func TestCallCommand_RejectsBadBodyBeforeNetwork(t *testing.T) {
	cfg := testEnv(t, "http://127.0.0.1:1")

	_, err := execute(t, NewCallCommand(cfg), "/v1/secret/app", "--method", "POST", "--body", "{not json")
	require.Error(t, err)

	var userErr vkerrors.UserError
	assert.ErrorAs(t, err, &userErr)
}

func TestTransitKeyHelper(t *testing.T) {
	cfg := &config.Config{Definition: &config.Definition{TransitKey: "from-config"}}

	key, err := transitKey(cfg, "from-flag")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", key)

	key, err = transitKey(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "from-config", key)

	cfg.Definition.TransitKey = ""
	_, err = transitKey(cfg, "")
	require.Error(t, err)
}
