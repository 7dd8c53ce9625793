package vault

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSecret_FullEnvelope(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"lease_id": "secret/app/abc123",
		"renewable": true,
		"lease_duration": 3600,
		"data": {"value": "hunter2"},
		"warnings": ["deprecated path", "check policy"]
	}`)

	s, err := decodeSecret[SecretData](body)
	require.NoError(t, err)

	assert.Equal(t, "secret/app/abc123", s.LeaseID)
	assert.True(t, s.Renewable)
	assert.Equal(t, int64(3600), s.LeaseDuration.Seconds())
	require.NotNil(t, s.Data)
	assert.Equal(t, "hunter2", s.Data.Value)
	assert.Equal(t, []string{"deprecated path", "check policy"}, s.Warnings)
	assert.Nil(t, s.Auth)
	assert.Nil(t, s.WrapInfo)
}

func TestDecodeSecret_IgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	body := []byte(`{"data": {"value": "x"}, "request_id": "abc", "mount_type": "kv", "future_field": [1,2,3]}`)
	s, err := decodeSecret[SecretData](body)
	require.NoError(t, err)
	require.NotNil(t, s.Data)
	assert.Equal(t, "x", s.Data.Value)
}

func TestDecodeSecret_AbsentDataIsNotAnError(t *testing.T) {
	t.Parallel()

	body := []byte(`{"auth": {"client_token": "hvs.child", "policies": ["root", "default", "root"], "renewable": true, "lease_duration": 60}}`)
	s, err := decodeSecret[struct{}](body)
	require.NoError(t, err)

	assert.Nil(t, s.Data)
	require.NotNil(t, s.Auth)
	assert.Equal(t, "hvs.child", s.Auth.ClientToken)
	// Order preserved, duplicates kept: display semantics only.
	assert.Equal(t, []string{"root", "default", "root"}, s.Auth.Policies)
	assert.Equal(t, int64(60), s.Auth.LeaseDuration.Seconds())
}

func TestDecodeSecret_WrapInfo(t *testing.T) {
	t.Parallel()

	body := []byte(`{"wrap_info": {
		"ttl": 300,
		"token": "hvs.wrap-once",
		"creation_time": "2016-06-07T15:52:10-04:00",
		"wrapped_accessor": "abcd-1234"
	}}`)

	s, err := decodeSecret[struct{}](body)
	require.NoError(t, err)
	require.NotNil(t, s.WrapInfo)

	assert.Equal(t, "hvs.wrap-once", s.WrapInfo.Token)
	assert.Equal(t, 5*time.Minute, s.WrapInfo.TTL.Std())
	_, offset := s.WrapInfo.CreationTime.Zone()
	assert.Equal(t, -4*3600, offset)
	assert.Equal(t, "abcd-1234", s.WrapInfo.WrappedAccessor)
}

func TestDecodeSecret_MalformedCarriesSnippet(t *testing.T) {
	t.Parallel()

	_, err := decodeSecret[SecretData]([]byte(`<html>not json</html>`))
	require.Error(t, err)

	var dec *DecodeError
	require.ErrorAs(t, err, &dec)
	assert.Contains(t, dec.Snippet, "<html>")
}

func TestDecodeSecret_BadTimestampSurfacesTimestampError(t *testing.T) {
	t.Parallel()

	body := []byte(`{"wrap_info": {"ttl": 300, "token": "x", "creation_time": "not a time"}}`)
	_, err := decodeSecret[struct{}](body)
	require.Error(t, err)

	var tsErr *TimestampError
	assert.ErrorAs(t, err, &tsErr)
}

func TestDecodeSecret_SnippetIsBounded(t *testing.T) {
	t.Parallel()

	long := make([]byte, 4096)
	for i := range long {
		long[i] = 'x'
	}
	_, err := decodeSecret[SecretData](long)
	require.Error(t, err)

	var dec *DecodeError
	require.ErrorAs(t, err, &dec)
	assert.LessOrEqual(t, len(dec.Snippet), snippetLen+3)
}

func TestSnippet_NeverSplitsARune(t *testing.T) {
	t.Parallel()

	// Fill past the bound with multi-byte runes so a byte-offset cut
	// would land mid-rune.
	long := []byte(strings.Repeat("é", snippetLen))
	require.Greater(t, len(long), snippetLen)

	s := snippet(long)
	assert.True(t, utf8.ValidString(s), "snippet %q is not valid UTF-8", s)
	assert.True(t, strings.HasSuffix(s, "..."))
	assert.LessOrEqual(t, len(s), snippetLen+3)
}
