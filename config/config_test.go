package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":        "postgres://localhost/zonecup",
		"JWT_SECRET_KEY":      "secret",
		"ADMIN_PASSWORD_HASH": "$2a$12$hash",
	}
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 8, cfg.ZoneCount)
	assert.Equal(t, 2, cfg.MinSeededZones)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.R2.Enabled())
}

func TestFromLookupOverrides(t *testing.T) {
	env := baseEnv()
	env["DATABASE_DRIVER"] = "sqlite"
	env["SERVER_PORT"] = "9000"
	env["ZONE_COUNT"] = "8"
	env["MIN_SEEDED_ZONES"] = "3"
	env["CORS_ALLOWED_ORIGINS"] = "https://a.example, https://b.example,"
	env["R2_ACCOUNT_ID"] = "acc"
	env["R2_ACCESS_KEY_ID"] = "key"
	env["R2_SECRET_ACCESS_KEY"] = "secret"
	env["R2_BUCKET_NAME"] = "logos"
	env["R2_PUBLIC_BASE_URL"] = "https://cdn.example"

	cfg, err := FromLookup(lookupFrom(env))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, 8, cfg.ZoneCount)
	assert.Equal(t, 3, cfg.MinSeededZones)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.R2.Enabled())
	assert.Equal(t, "logos", cfg.R2.BucketName)
}

func TestFromLookupErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(env map[string]string)
		errMsg string
	}{
		{"missing database url", func(env map[string]string) { delete(env, "DATABASE_URL") }, "DATABASE_URL"},
		{"missing jwt secret", func(env map[string]string) { delete(env, "JWT_SECRET_KEY") }, "JWT_SECRET_KEY"},
		{"missing admin hash", func(env map[string]string) { delete(env, "ADMIN_PASSWORD_HASH") }, "ADMIN_PASSWORD_HASH"},
		{"unknown driver", func(env map[string]string) { env["DATABASE_DRIVER"] = "mysql" }, "DATABASE_DRIVER"},
		{"port not a number", func(env map[string]string) { env["SERVER_PORT"] = "abc" }, "SERVER_PORT"},
		{"port out of range", func(env map[string]string) { env["SERVER_PORT"] = "70000" }, "SERVER_PORT"},
		{"zero zones", func(env map[string]string) { env["ZONE_COUNT"] = "0" }, "ZONE_COUNT"},
		{"too many zones", func(env map[string]string) { env["ZONE_COUNT"] = "27" }, "ZONE_COUNT"},
		{"min seeded zones", func(env map[string]string) { env["MIN_SEEDED_ZONES"] = "0" }, "MIN_SEEDED_ZONES"},
		{"partial r2", func(env map[string]string) { env["R2_BUCKET_NAME"] = "logos" }, "R2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			tt.modify(env)
			_, err := FromLookup(lookupFrom(env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
