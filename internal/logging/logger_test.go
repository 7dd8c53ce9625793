package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecret_AlwaysRedacted(t *testing.T) {
	t.Parallel()

	token := Secret("hvs.CAESIJ0example")
	assert.Equal(t, "[REDACTED]", token.String())
	assert.Equal(t, "[REDACTED]", token.GoString())
	assert.Equal(t, "token=[REDACTED]", fmt.Sprintf("token=%s", token))
	assert.Equal(t, "token=[REDACTED]", fmt.Sprintf("token=%v", token))
}

func TestRedact_ReplacesKnownSecrets(t *testing.T) {
	t.Parallel()

	out := Redact("sending token hvs.abc123 to host", []string{"hvs.abc123"})
	assert.Equal(t, "sending token [REDACTED] to host", out)
}

func TestRedact_SkipsTrivialValues(t *testing.T) {
	t.Parallel()

	// Values of three characters or fewer would redact half the message.
	out := Redact("get /v1/secret/app", []string{"app", ""})
	assert.Equal(t, "get /v1/secret/app", out)
}
