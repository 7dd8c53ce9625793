package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// MethodList is the non-standard HTTP method token the service defines for
// list operations. It is sent verbatim on the wire.
const MethodList = "LIST"

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	MethodList:        true,
}

// CallOptions carries the optional parts of an escape-hatch call.
type CallOptions struct {
	// Body is marshaled to JSON as the request body. nil sends no body.
	Body interface{}

	// WrapTTL, when set, requests response wrapping with the given TTL.
	// Accepted forms: bare seconds ("300") or short-unit ("15s", "20m", "25h").
	WrapTTL string
}

// Call performs a request against any endpoint and decodes the response
// envelope with payload type D. This is the uniform path every named
// operation on Client goes through.
//
// A zero-length 2xx body yields Result.Empty; a non-2xx response yields an
// APIError; a non-empty body that does not parse yields a DecodeError.
func Call[D any](ctx context.Context, c *Client, method, endpoint string, opts *CallOptions) (Result[D], error) {
	if !allowedMethods[method] {
		return Result[D]{}, &VaultError{Message: fmt.Sprintf("unsupported method %q", method)}
	}
	if opts == nil {
		opts = &CallOptions{}
	}
	if opts.WrapTTL != "" && !validWrapTTL(opts.WrapTTL) {
		return Result[D]{}, &VaultError{Message: fmt.Sprintf("invalid wrap TTL %q: want seconds or <n>{s,m,h}", opts.WrapTTL)}
	}

	var body []byte
	if opts.Body != nil {
		var err error
		body, err = json.Marshal(opts.Body)
		if err != nil {
			return Result[D]{}, fmt.Errorf("marshal request body: %w", err)
		}
	}

	resp, err := c.send(ctx, method, endpoint, opts.WrapTTL, body)
	if err != nil {
		return Result[D]{}, err
	}
	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return Result[D]{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result[D]{}, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if len(raw) == 0 {
		return Result[D]{Empty: true}, nil
	}
	s, err := decodeSecret[D](raw)
	if err != nil {
		return Result[D]{}, err
	}
	return Result[D]{Secret: s}, nil
}
