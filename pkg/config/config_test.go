package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func validEnv() map[string]string {
	return map[string]string{
		"JWT_SECRET":   "secret",
		"JWT_EXPIRES":  "1d",
		"DATABASE_URL": "sqlite://todos.db",
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(validEnv()))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpires)
	assert.Equal(t, "sqlite://todos.db", cfg.DatabaseURL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.RateLimitEnabled)
	assert.False(t, cfg.IsRelease())
}

func TestFromEnvOverrides(t *testing.T) {
	env := validEnv()
	env["PORT"] = "8080"
	env["GIN_MODE"] = "release"
	env["RATE_LIMIT_ENABLED"] = "false"

	cfg, err := FromEnv(lookupFrom(env))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, cfg.IsRelease())
	assert.False(t, cfg.RateLimitEnabled)
}

func TestFromEnvCollectsEveryProblem(t *testing.T) {
	_, err := FromEnv(lookupFrom(map[string]string{
		"JWT_SECRET":  "ab",
		"JWT_EXPIRES": "soon",
		"PORT":        "70000",
	}))
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "Invalid configuration: ")
	assert.Contains(t, msg, "JWT_SECRET must be at least 3 characters long")
	assert.Contains(t, msg, "DATABASE_URL is required")
	assert.Contains(t, msg, "PORT must be at most 65535")
	assert.Contains(t, msg, "JWT_EXPIRES must be a duration")
	assert.True(t, msg[len(msg)-1] == '.')
}

func TestFromEnvTrustedProxies(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(validEnv()))
	require.NoError(t, err)
	assert.Empty(t, cfg.TrustedProxies)

	env := validEnv()
	env["TRUSTED_PROXIES"] = "10.0.0.1, 172.16.0.0/12,"

	cfg, err = FromEnv(lookupFrom(env))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.TrustedProxies)
}

func TestFromEnvRejectsBadTrustedProxy(t *testing.T) {
	env := validEnv()
	env["TRUSTED_PROXIES"] = "10.0.0.1,proxy.local"

	_, err := FromEnv(lookupFrom(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRUSTED_PROXIES")
}

func TestFromEnvRejectsNonNumericPort(t *testing.T) {
	env := validEnv()
	env["PORT"] = "http"

	_, err := FromEnv(lookupFrom(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT must be an integer")
}

func TestParseExpires(t *testing.T) {
	cases := map[string]time.Duration{
		"1h30m":      90 * time.Minute,
		"7d":         7 * 24 * time.Hour,
		"2 hours":    2 * time.Hour,
		"10m":        10 * time.Minute,
		"15 minutes": 15 * time.Minute,
		"60000":      time.Minute,
		"1w":         7 * 24 * time.Hour,
		"30s":        30 * time.Second,
		"500ms":      500 * time.Millisecond,
	}

	for in, want := range cases {
		got, err := ParseExpires(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "soon", "0", "-1h", "1 fortnight"} {
		_, err := ParseExpires(in)
		assert.Error(t, err, in)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	for _, key := range []string{"JWT_SECRET", "JWT_EXPIRES", "DATABASE_URL"} {
		if _, set := os.LookupEnv(key); set {
			t.Skipf("%s already set in the environment", key)
		}
	}

	file := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(file, []byte("JWT_SECRET=from-file\nJWT_EXPIRES=2h\nDATABASE_URL=sqlite://test.db\n"), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("JWT_EXPIRES")
		os.Unsetenv("DATABASE_URL")
	})

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpires)
}

func TestLoadIgnoresMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		assert.Contains(t, err.Error(), "Invalid configuration")
	}
}
