package vault

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresqlCredentials(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/postgresql/creds/readonly", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"lease_id": "postgresql/creds/readonly/abc123",
			"renewable": true,
			"lease_duration": 3600,
			"data": {"username": "v-readonly-x7q", "password": "A1a-secret"}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	secret, err := c.PostgresqlCredentials(context.Background(), "readonly")
	require.NoError(t, err)

	assert.Equal(t, "v-readonly-x7q", secret.Data.Username)
	assert.Equal(t, "A1a-secret", secret.Data.Password)
	assert.Equal(t, "postgresql/creds/readonly/abc123", secret.LeaseID)
	assert.True(t, secret.Renewable)
	assert.Equal(t, time.Hour, time.Duration(secret.LeaseDuration))
}

func TestPostgresqlCredentials_NoData(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"lease_duration": 0}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.PostgresqlCredentials(context.Background(), "readonly")
	require.Error(t, err)

	var vErr *VaultError
	assert.ErrorAs(t, err, &vErr)
}

func TestListSecrets_NoKeys(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.ListSecrets(context.Background(), "empty/")
	require.Error(t, err)

	var vErr *VaultError
	assert.ErrorAs(t, err, &vErr)
}
