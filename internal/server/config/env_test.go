package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("WORKOUT_HTTP_ADDR", ":8181")
	t.Setenv("WORKOUT_SECRET_KEY", "env-secret")
	t.Setenv("WORKOUT_ACCESS_TOKEN_TTL", "45m")
	t.Setenv("WORKOUT_REJECT_INACTIVE_LOGINS", "true")

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseEnv(c))

	assert.Equal(t, ":8181", c.EndpointAddrHTTP)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 45*time.Minute, c.AccessTokenValidityDuration)
	assert.True(t, c.RejectInactiveLogins)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC, "unset variables keep their value")
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("WORKOUT_BCRYPT_COST", "lots")

	c := &Config{}
	require.Error(t, parseEnv(c))
}
