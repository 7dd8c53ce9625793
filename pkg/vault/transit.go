package vault

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
)

// transitCiphertextPrefix is the version prefix the transit backend puts on
// every ciphertext. Its absence means the server broke the wire contract.
const transitCiphertextPrefix = "vault:v1:"

type transitEncryptRequest struct {
	Plaintext string `json:"plaintext"`
}

type transitDecryptRequest struct {
	Ciphertext string `json:"ciphertext"`
}

type transitEncryptData struct {
	Ciphertext string `json:"ciphertext"`
}

type transitDecryptData struct {
	Plaintext string `json:"plaintext"`
}

// TransitEncrypt encrypts plaintext server-side under the named transit
// key. The returned bytes are the raw ciphertext with the "vault:v1:"
// prefix validated and stripped.
func (c *Client) TransitEncrypt(ctx context.Context, key string, plaintext []byte) ([]byte, error) {
	res, err := Call[transitEncryptData](ctx, c, http.MethodPost, "/v1/transit/encrypt/"+key, &CallOptions{
		Body: transitEncryptRequest{Plaintext: base64.StdEncoding.EncodeToString(plaintext)},
	})
	if err != nil {
		return nil, err
	}
	if res.Empty || res.Secret.Data == nil {
		return nil, &VaultError{Message: "no ciphertext returned by transit encrypt"}
	}
	ct := res.Secret.Data.Ciphertext
	if !strings.HasPrefix(ct, transitCiphertextPrefix) {
		return nil, &VaultError{Message: "transit ciphertext missing " + transitCiphertextPrefix + " prefix"}
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(ct, transitCiphertextPrefix))
	if err != nil {
		return nil, &DecodeError{Snippet: snippet([]byte(ct)), Err: err}
	}
	return raw, nil
}

// TransitDecrypt is the mirror of TransitEncrypt: raw ciphertext bytes are
// base64-encoded, the version prefix is prepended, and the returned
// plaintext field is base64-decoded. Plaintext carries no prefix.
func (c *Client) TransitDecrypt(ctx context.Context, key string, ciphertext []byte) ([]byte, error) {
	res, err := Call[transitDecryptData](ctx, c, http.MethodPost, "/v1/transit/decrypt/"+key, &CallOptions{
		Body: transitDecryptRequest{Ciphertext: transitCiphertextPrefix + base64.StdEncoding.EncodeToString(ciphertext)},
	})
	if err != nil {
		return nil, err
	}
	if res.Empty || res.Secret.Data == nil {
		return nil, &VaultError{Message: "no plaintext returned by transit decrypt"}
	}
	raw, err := base64.StdEncoding.DecodeString(res.Secret.Data.Plaintext)
	if err != nil {
		return nil, &DecodeError{Snippet: snippet([]byte(res.Secret.Data.Plaintext)), Err: err}
	}
	return raw, nil
}
