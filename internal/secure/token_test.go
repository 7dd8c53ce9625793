package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBuffer_RoundTrip(t *testing.T) {
	buf := NewTokenBuffer([]byte("hvs.test-token"))

	var seen string
	err := buf.WithToken(func(token string) error {
		seen = string([]byte(token)) // copy out for the assertion only
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hvs.test-token", seen)
}

func TestTokenBuffer_DestroyIsIdempotent(t *testing.T) {
	buf := NewTokenBuffer([]byte("hvs.test-token"))
	buf.Destroy()
	buf.Destroy()

	locked, err := buf.Open()
	require.NoError(t, err)
	defer locked.Destroy()
	assert.Empty(t, locked.Bytes())
}
