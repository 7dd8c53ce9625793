package vault

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Password string `json:"password"`
}

// LoginUserpass logs in against the userpass auth backend and returns the
// resulting auth block, which is also cached on the client. The token the
// client was constructed with is still used for the transport header; the
// returned ClientToken is the caller's to adopt.
func (c *Client) LoginUserpass(ctx context.Context, username, password string) (*Auth, error) {
	return c.login(ctx, "/v1/auth/userpass/login/"+username, password)
}

// LoginLDAP logs in against the LDAP auth backend.
func (c *Client) LoginLDAP(ctx context.Context, username, password string) (*Auth, error) {
	return c.login(ctx, "/v1/auth/ldap/login/"+username, password)
}

func (c *Client) login(ctx context.Context, endpoint, password string) (*Auth, error) {
	res, err := Call[struct{}](ctx, c, http.MethodPost, endpoint, &CallOptions{
		Body: loginRequest{Password: password},
	})
	if err != nil {
		return nil, err
	}
	if res.Empty || res.Secret.Auth == nil {
		return nil, &VaultError{Message: "no auth data returned by login"}
	}
	c.setAuth(res.Secret.Auth)
	return res.Secret.Auth, nil
}
