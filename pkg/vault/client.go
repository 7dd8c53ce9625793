// Package vault is a typed client for a HashiCorp Vault style
// secret-management HTTP API.
//
// The client authenticates with a bearer token, walks an ordered list of
// candidate hosts with failover on connection failure, and decodes the
// generic response envelope into caller-chosen payload types. Named
// operations (secrets, tokens, transit) are thin layers over the generic
// Call dispatch, which accepts any verb and endpoint.
package vault

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"
)

// DefaultTimeout bounds a single HTTP exchange, including the response
// body read. Individual operations do not take caller timeouts.
const DefaultTimeout = 30 * time.Second

const lookupSelfEndpoint = "/v1/auth/token/lookup-self"

// Logger is the minimal logging surface the client needs. It is satisfied
// by the vaultkit logging package; the default discards everything.
type Logger interface {
	Debug(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// Observer receives transport-level events so callers can wire request
// metrics without the client depending on a metrics registry.
type Observer interface {
	ObserveRequest(method string, status int)
	ObserveFailover(host string)
	ObserveExhausted()
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, int) {}
func (nopObserver) ObserveFailover(string)     {}
func (nopObserver) ObserveExhausted()          {}

// Client talks to one logical Vault service reachable through one or more
// hosts. Hosts and token are immutable after construction; the cached auth
// block from renew/create-token calls is the only mutable state and is
// guarded by its own mutex, so a single Client is safe for concurrent use.
type Client struct {
	hosts    []string
	token    string
	httpc    *http.Client
	logger   Logger
	observer Observer

	mu   sync.Mutex
	auth *Auth
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to install TLS
// settings or a custom transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger sets a logger for transport diagnostics. Secret material is
// never logged.
func WithLogger(l Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithObserver sets a transport metrics hook.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient builds a client and verifies the token with a lookup-self probe
// across the host walk. A 403 from the server is ErrForbidden; any other
// non-2xx is an APIError. An empty host list fails with ErrNoHosts before
// any network IO.
func NewClient(ctx context.Context, hosts []string, token string, opts ...Option) (*Client, error) {
	c, err := newClient(hosts, token, opts...)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, http.MethodGet, lookupSelfEndpoint, "", nil)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return c, nil
}

// NewUnverifiedClient builds a client without the lookup-self probe. Two
// callers need this: unwrap, where the probe would consume the single-use
// wrapping token, and login flows that hold no valid token yet.
func NewUnverifiedClient(hosts []string, token string, opts ...Option) (*Client, error) {
	return newClient(hosts, token, opts...)
}

func newClient(hosts []string, token string, opts ...Option) (*Client, error) {
	if len(hosts) == 0 {
		return nil, ErrNoHosts
	}
	c := &Client{
		hosts:    hosts,
		token:    token,
		httpc:    &http.Client{Timeout: DefaultTimeout},
		logger:   nopLogger{},
		observer: nopObserver{},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Token returns the bearer token the client was constructed with.
func (c *Client) Token() string {
	return c.token
}

// Auth returns the auth block cached by the most recent renew, login, or
// create-token call, or nil if none has run.
func (c *Client) Auth() *Auth {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auth
}

func (c *Client) setAuth(a *Auth) {
	c.mu.Lock()
	c.auth = a
	c.mu.Unlock()
}
