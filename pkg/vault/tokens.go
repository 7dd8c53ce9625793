package vault

import (
	"context"
	"net/http"
)

// TokenCreateRequest holds the optional fields of a token-creation call.
// Zero values are omitted from the wire body.
type TokenCreateRequest struct {
	ID          string            `json:"id,omitempty"`
	Policies    []string          `json:"policies,omitempty"`
	Meta        map[string]string `json:"meta,omitempty"`
	NoParent    bool              `json:"no_parent,omitempty"`
	Lease       string            `json:"lease,omitempty"`
	TTL         string            `json:"ttl,omitempty"`
	DisplayName string            `json:"display_name,omitempty"`
	NumUses     int               `json:"num_uses,omitempty"`
	Renewable   *bool             `json:"renewable,omitempty"`
}

// TokenData is the payload of a token lookup. creation_time is epoch
// seconds on the wire; the TTL fields are integer seconds.
type TokenData struct {
	Accessor     string            `json:"accessor"`
	CreationTime EpochTime         `json:"creation_time"`
	CreationTTL  Duration          `json:"creation_ttl"`
	DisplayName  string            `json:"display_name"`
	ID           string            `json:"id"`
	Meta         map[string]string `json:"meta"`
	NumUses      int               `json:"num_uses"`
	Orphan       bool              `json:"orphan"`
	Path         string            `json:"path"`
	Policies     []string          `json:"policies"`
	TTL          Duration          `json:"ttl"`
	Renewable    bool              `json:"renewable"`
}

type renewRequest struct {
	Increment int `json:"increment,omitempty"`
}

// LookupSelf describes the token the client holds.
func (c *Client) LookupSelf(ctx context.Context) (*TokenData, error) {
	res, err := Call[TokenData](ctx, c, http.MethodGet, lookupSelfEndpoint, nil)
	if err != nil {
		return nil, err
	}
	if res.Empty || res.Secret.Data == nil {
		return nil, &VaultError{Message: "no token data returned by lookup-self"}
	}
	return res.Secret.Data, nil
}

// RenewSelf extends the lease on the client's token. increment is a
// requested extension in seconds; zero lets the server choose. The returned
// auth block is cached on the client.
func (c *Client) RenewSelf(ctx context.Context, increment int) (*Auth, error) {
	res, err := Call[struct{}](ctx, c, http.MethodPost, "/v1/auth/token/renew-self", &CallOptions{
		Body: renewRequest{Increment: increment},
	})
	if err != nil {
		return nil, err
	}
	if res.Empty || res.Secret.Auth == nil {
		return nil, &VaultError{Message: "no auth data returned after renew"}
	}
	c.setAuth(res.Secret.Auth)
	return res.Secret.Auth, nil
}

// RevokeSelf revokes the client's token. Calls made through the client
// afterwards will be rejected by the server.
func (c *Client) RevokeSelf(ctx context.Context) error {
	_, err := Call[struct{}](ctx, c, http.MethodPost, "/v1/auth/token/revoke-self", nil)
	return err
}

// CreateToken creates a child token with the given options and returns its
// auth block. The envelope allows an absent auth block; this operation does
// not.
func (c *Client) CreateToken(ctx context.Context, req *TokenCreateRequest) (*Auth, error) {
	if req == nil {
		req = &TokenCreateRequest{}
	}
	res, err := Call[struct{}](ctx, c, http.MethodPost, "/v1/auth/token/create", &CallOptions{Body: req})
	if err != nil {
		return nil, err
	}
	if res.Empty || res.Secret.Auth == nil {
		return nil, &VaultError{Message: "no auth data returned by token create"}
	}
	return res.Secret.Auth, nil
}
