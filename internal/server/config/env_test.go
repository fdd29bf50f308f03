package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysSetVariables(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("GRPC_ADDR", ":6000")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("BCRYPT_COST", "11")
	t.Setenv("STORE_TIMEOUT", "1500ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("LOG_LEVEL", "warn")

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseEnv(&c))

	assert.Equal(t, "postgres://env", c.DatabaseDSN)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, ":3000", c.HTTPAddr, "unset variables keep defaults")
	assert.Equal(t, ":6000", c.GRPCAddr)
	assert.Equal(t, 2*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, 11, c.BcryptCost)
	assert.Equal(t, 1500*time.Millisecond, c.StoreTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSAllowedOrigins)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestParseEnv_HTTPAddrBeatsPort(t *testing.T) {
	t.Setenv("PORT", "8080")

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseEnv(&c))
	assert.Equal(t, ":8080", c.HTTPAddr)

	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	require.NoError(t, parseEnv(&c))
	assert.Equal(t, "127.0.0.1:9000", c.HTTPAddr)
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("BCRYPT_COST", "lots")

	var c Config
	err := parseEnv(&c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
