package vault

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wrappingVault simulates the response-wrapping protocol: a wrapped call
// stores the real envelope and hands out a single-use token; unwrap
// exchanges the token exactly once.
func wrappingVault(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var unwrapCalls atomic.Int64
	wrapped := map[string]string{} // token -> inner envelope JSON

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/secret/app", func(w http.ResponseWriter, r *http.Request) {
		ttl := r.Header.Get("X-Vault-Wrap-TTL")
		if ttl == "" {
			http.Error(w, `{"errors":["expected wrapped request"]}`, http.StatusBadRequest)
			return
		}
		inner, err := json.Marshal(map[string]interface{}{
			"lease_duration": 3600,
			"data":           map[string]string{"value": "wrapped-world"},
		})
		require.NoError(t, err)
		wrapped["hvs.wrap-once"] = string(inner)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"wrap_info": map[string]interface{}{
				"ttl":           300,
				"token":         "hvs.wrap-once",
				"creation_time": "2024-01-15T09:00:00+01:00",
			},
		})
	})
	mux.HandleFunc("/v1/sys/wrapping/unwrap", func(w http.ResponseWriter, r *http.Request) {
		unwrapCalls.Add(1)
		token := r.Header.Get("X-Vault-Token")
		inner, ok := wrapped[token]
		if !ok {
			http.Error(w, `{"errors":["wrapping token is not valid or does not exist"]}`, http.StatusBadRequest)
			return
		}
		delete(wrapped, token) // single use, server enforced
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"response": inner},
		})
	})
	mux.HandleFunc("/v1/auth/token/lookup-self", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Vault-Token") == "hvs.wrap-once" {
			// A probe with the wrap token would consume it; the client
			// must never get here during unwrap.
			t.Error("unwrap client performed a lookup-self probe")
		}
		_, _ = w.Write([]byte(`{"data":{}}`))
	})
	return httptest.NewServer(mux), &unwrapCalls
}

func TestRequestWrapped_ThenUnwrap(t *testing.T) {
	t.Parallel()

	srv, unwrapCalls := wrappingVault(t)
	defer srv.Close()
	ctx := context.Background()

	c := newTestClient(t, srv.URL)
	info, err := c.RequestWrapped(ctx, http.MethodGet, "/v1/secret/app", nil, "15s")
	require.NoError(t, err)
	assert.Equal(t, "hvs.wrap-once", info.Token)
	assert.Equal(t, int64(300), info.TTL.Seconds())
	_, offset := info.CreationTime.Zone()
	assert.Equal(t, 3600, offset)

	inner, err := Unwrap[SecretData](ctx, c, info.Token)
	require.NoError(t, err)
	require.NotNil(t, inner.Data)
	assert.Equal(t, "wrapped-world", inner.Data.Value)
	assert.Equal(t, int64(3600), inner.LeaseDuration.Seconds())
	assert.Equal(t, int64(1), unwrapCalls.Load())
}

func TestUnwrap_SecondUseFailsServerSide(t *testing.T) {
	t.Parallel()

	srv, _ := wrappingVault(t)
	defer srv.Close()
	ctx := context.Background()

	c := newTestClient(t, srv.URL)
	info, err := c.RequestWrapped(ctx, http.MethodGet, "/v1/secret/app", nil, "300")
	require.NoError(t, err)

	_, err = Unwrap[SecretData](ctx, c, info.Token)
	require.NoError(t, err)

	// The client does not cache the token; a second exchange is the
	// server's rejection to surface.
	_, err = Unwrap[SecretData](ctx, c, info.Token)
	var api *APIError
	require.ErrorAs(t, err, &api)
	assert.Equal(t, http.StatusBadRequest, api.StatusCode)
}

func TestRequestWrapped_EmptyTTLFailsBeforeNetwork(t *testing.T) {
	t.Parallel()

	// Without a TTL the wrap header would never be sent; the error must
	// name the missing TTL, not the server's (correct) lack of wrap_info.
	c := newTestClient(t, refusedAddr(t))
	_, err := c.RequestWrapped(context.Background(), http.MethodGet, "/v1/secret/app", nil, "")
	require.Error(t, err)

	var vErr *VaultError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "wrap TTL")
	assert.NotErrorIs(t, err, ErrMissingWrapInfo)
}

func TestRequestWrapped_MissingWrapInfo(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Protocol violation: wrap was requested but not honored.
		_, _ = w.Write([]byte(`{"data": {"value": "in the clear"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.RequestWrapped(context.Background(), http.MethodGet, "/v1/secret/app", nil, "60")
	assert.ErrorIs(t, err, ErrMissingWrapInfo)
}

func TestUnwrap_MissingWrappedPayload(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := Unwrap[SecretData](context.Background(), c, "hvs.wrap-once")
	require.Error(t, err)

	var vErr *VaultError
	assert.ErrorAs(t, err, &vErr)
}

func TestUnwrap_MalformedInnerEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"response": "not json at all"},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := Unwrap[SecretData](context.Background(), c, "hvs.wrap-once")
	require.Error(t, err)

	var dec *DecodeError
	assert.ErrorAs(t, err, &dec)
}
