package vault

import (
	"context"
	"net/http"
)

const unwrapEndpoint = "/v1/sys/wrapping/unwrap"

// wrappedResponse is the payload of an unwrap call: the real envelope,
// JSON-encoded a second time into a string field.
type wrappedResponse struct {
	Response string `json:"response"`
}

// RequestWrapped issues a call with response wrapping requested and returns
// the wrap_info block. The real payload stays behind WrapInfo.Token until
// an Unwrap call exchanges it. A 2xx response without wrap_info is a
// protocol violation by the server and fails with ErrMissingWrapInfo.
func (c *Client) RequestWrapped(ctx context.Context, method, endpoint string, body interface{}, wrapTTL string) (*WrapInfo, error) {
	// Without a TTL no wrap header is sent and the server answers plain,
	// which would surface as a confusing ErrMissingWrapInfo.
	if wrapTTL == "" {
		return nil, &VaultError{Message: "wrap TTL is required for a wrapped request"}
	}
	res, err := Call[struct{}](ctx, c, method, endpoint, &CallOptions{Body: body, WrapTTL: wrapTTL})
	if err != nil {
		return nil, err
	}
	if res.Empty || res.Secret.WrapInfo == nil {
		return nil, ErrMissingWrapInfo
	}
	return res.Secret.WrapInfo, nil
}

// Unwrap exchanges a single-use wrapping token for the envelope it hides.
// A short-lived client scoped to the token is built without the usual
// lookup-self probe, which would consume the token. The outer response
// carries the real envelope JSON-encoded inside data.response; both layers
// are decoded here. The token is void after one successful exchange and is
// never cached or retried.
func Unwrap[D any](ctx context.Context, c *Client, token string) (*Secret[D], error) {
	uc, err := NewUnverifiedClient(c.hosts, token,
		WithHTTPClient(c.httpc), WithLogger(c.logger), WithObserver(c.observer))
	if err != nil {
		return nil, err
	}

	res, err := Call[wrappedResponse](ctx, uc, http.MethodPost, unwrapEndpoint, nil)
	if err != nil {
		return nil, err
	}
	if res.Empty || res.Secret.Data == nil || res.Secret.Data.Response == "" {
		return nil, &VaultError{Message: "unwrap response carried no wrapped payload"}
	}
	return decodeSecret[D]([]byte(res.Secret.Data.Response))
}
