package vault

import (
	"encoding/json"
	"errors"
)

// Secret is the generic response envelope every Vault endpoint returns.
// The payload type D varies per endpoint; Data is nil when the endpoint
// returns no payload (pure-auth responses), which is not a decode failure.
// Unknown fields are ignored for forward compatibility.
type Secret[D any] struct {
	LeaseID       string    `json:"lease_id"`
	Renewable     bool      `json:"renewable"`
	LeaseDuration Duration  `json:"lease_duration"`
	Data          *D        `json:"data"`
	Warnings      []string  `json:"warnings"`
	Auth          *Auth     `json:"auth"`
	WrapInfo      *WrapInfo `json:"wrap_info"`
}

// Auth is the side channel produced by login, renew, and token-creation
// calls. Policy order is preserved as sent by the server.
type Auth struct {
	ClientToken   string            `json:"client_token"`
	Accessor      string            `json:"accessor"`
	Policies      []string          `json:"policies"`
	Metadata      map[string]string `json:"metadata"`
	LeaseDuration Duration          `json:"lease_duration"`
	Renewable     bool              `json:"renewable"`
}

// WrapInfo describes a response-wrapped result. Token is single-use: it is
// void after one successful unwrap and must never be cached or retried.
type WrapInfo struct {
	TTL             Duration    `json:"ttl"`
	Token           string      `json:"token"`
	CreationTime    RFC3339Time `json:"creation_time"`
	WrappedAccessor string      `json:"wrapped_accessor"`
}

// decodeSecret parses an envelope body into a Secret[D]. Malformed bodies
// fail with a DecodeError carrying a snippet of the original bytes.
func decodeSecret[D any](body []byte) (*Secret[D], error) {
	var s Secret[D]
	if err := json.Unmarshal(body, &s); err != nil {
		var dec *DecodeError
		var ts *TimestampError
		if errors.As(err, &dec) || errors.As(err, &ts) {
			return nil, err
		}
		return nil, &DecodeError{Snippet: snippet(body), Err: err}
	}
	return &s, nil
}

// Result is the outcome of an escape-hatch call: either a decoded envelope
// or an empty body (some endpoints, DELETE among them, legitimately return
// nothing).
type Result[D any] struct {
	Empty  bool
	Secret *Secret[D]
}
