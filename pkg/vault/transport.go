package vault

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"syscall"
)

const (
	headerToken   = "X-Vault-Token"
	headerWrapTTL = "X-Vault-Wrap-TTL"

	contentTypeJSON = "application/json"
)

// send walks the configured hosts in order and performs one HTTP exchange.
// A connection-level failure (refused, unreachable, dial timeout) moves on
// to the next host; any received response terminates the walk regardless of
// status, since a non-2xx from a reachable host is an application-level
// answer, not a transport fault.
func (c *Client) send(ctx context.Context, method, endpoint, wrapTTL string, body []byte) (*http.Response, error) {
	var lastErr error
	for _, host := range c.hosts {
		target, err := url.JoinPath(host, endpoint)
		if err != nil {
			return nil, &VaultError{Message: "invalid endpoint " + endpoint + ": " + err.Error()}
		}

		var reader *bytes.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		} else {
			reader = bytes.NewReader(nil)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set(headerToken, c.token)
		req.Header.Set("Content-Type", contentTypeJSON)
		if wrapTTL != "" {
			req.Header.Set(headerWrapTTL, wrapTTL)
		}

		resp, err := c.httpc.Do(req)
		if err == nil {
			c.observer.ObserveRequest(method, resp.StatusCode)
			return resp, nil
		}
		if !isConnError(err) {
			return nil, err
		}
		c.logger.Debug("host %s unreachable, trying next: %v", host, err)
		c.observer.ObserveFailover(host)
		lastErr = err
	}
	c.observer.ObserveExhausted()
	return nil, &UnreachableError{Hosts: c.hosts, LastErr: lastErr}
}

// isConnError reports whether err is a connection-level failure that should
// trigger failover to the next host. Context cancellation and anything that
// happened after a connection was established do not qualify.
func isConnError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op == "dial" || opErr.Timeout()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// validWrapTTL reports whether s is a legal X-Vault-Wrap-TTL value: bare
// seconds ("300") or a short-unit duration ("15s", "20m", "25h").
func validWrapTTL(s string) bool {
	digits := s
	if strings.HasSuffix(s, "s") || strings.HasSuffix(s, "m") || strings.HasSuffix(s, "h") {
		digits = s[:len(s)-1]
	}
	if digits == "" {
		return false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	return err == nil && n >= 0
}
