package vault

import (
	"context"
	"net/http"
)

// SecretData is the payload shape of the generic key/value secret backend.
type SecretData struct {
	Value string `json:"value"`
}

// listKeys is the payload of a LIST call.
type listKeys struct {
	Keys []string `json:"keys"`
}

// SetSecret stores value under key in the generic secret backend.
func (c *Client) SetSecret(ctx context.Context, key, value string) error {
	_, err := Call[struct{}](ctx, c, http.MethodPost, "/v1/secret/"+key, &CallOptions{
		Body: SecretData{Value: value},
	})
	return err
}

// GetSecret fetches the value stored under key. An envelope without a data
// block is legal at the decode level but a contract violation for this
// operation.
func (c *Client) GetSecret(ctx context.Context, key string) (string, error) {
	res, err := Call[SecretData](ctx, c, http.MethodGet, "/v1/secret/"+key, nil)
	if err != nil {
		return "", err
	}
	if res.Empty || res.Secret.Data == nil {
		return "", &VaultError{Message: "no secret data returned for " + key}
	}
	return res.Secret.Data.Value, nil
}

// DeleteSecret removes the secret stored under key. The server answers with
// an empty body, which is not an error.
func (c *Client) DeleteSecret(ctx context.Context, key string) error {
	_, err := Call[struct{}](ctx, c, http.MethodDelete, "/v1/secret/"+key, nil)
	return err
}

// ListSecrets returns the key names under prefix, using the service's
// custom LIST verb.
func (c *Client) ListSecrets(ctx context.Context, prefix string) ([]string, error) {
	res, err := Call[listKeys](ctx, c, MethodList, "/v1/secret/"+prefix, nil)
	if err != nil {
		return nil, err
	}
	if res.Empty || res.Secret.Data == nil {
		return nil, &VaultError{Message: "no keys returned for list of " + prefix}
	}
	return res.Secret.Data.Keys, nil
}

// PostgresqlCreds is the payload of a dynamic database credential read.
type PostgresqlCreds struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PostgresqlCredentials requests a dynamic credential pair from the
// postgresql backend role name. The lease fields live on the returned
// envelope.
func (c *Client) PostgresqlCredentials(ctx context.Context, name string) (*Secret[PostgresqlCreds], error) {
	res, err := Call[PostgresqlCreds](ctx, c, http.MethodGet, "/v1/postgresql/creds/"+name, nil)
	if err != nil {
		return nil, err
	}
	if res.Empty || res.Secret.Data == nil {
		return nil, &VaultError{Message: "no credentials returned for role " + name}
	}
	return res.Secret, nil
}
