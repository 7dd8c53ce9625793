package vault

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// HealthStatus is the bare (non-envelope) response of the health endpoint.
type HealthStatus struct {
	Initialized bool   `json:"initialized"`
	Sealed      bool   `json:"sealed"`
	Standby     bool   `json:"standby"`
	Version     string `json:"version"`
	ClusterName string `json:"cluster_name"`
}

// Health reads the service health endpoint. The health body is not wrapped
// in the usual envelope, so this goes straight through the transport. Any
// status the server chooses to signal state with (200, 429, 503) is decoded
// rather than treated as an APIError.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.send(ctx, http.MethodGet, "/v1/sys/health", "", nil)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	var hs HealthStatus
	if err := json.Unmarshal(body, &hs); err != nil {
		return nil, &DecodeError{Snippet: snippet(body), Err: err}
	}
	return &hs, nil
}
