package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "FIXTURE_SOURCE", "FIXTURE_DIR", "DATABASE_URL", "JWT_SECRET", "ROLE_ORDER_SEED", "READ_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}
	t.Setenv("PORT", "8000")
	t.Setenv("FIXTURE_SOURCE", "dir")
	t.Setenv("FIXTURE_DIR", "fixtures")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, FixtureSourceDir, cfg.FixtureSource)
	assert.Equal(t, "fixtures", cfg.FixtureDir)
	assert.False(t, cfg.AuthEnabled())
	assert.Equal(t, int64(0), cfg.RoleOrderSeed)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FIXTURE_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/fixtures")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ROLE_ORDER_SEED", "42")
	t.Setenv("READ_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, FixtureSourcePostgres, cfg.FixtureSource)
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, int64(42), cfg.RoleOrderSeed)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "dir source", cfg: Config{FixtureSource: FixtureSourceDir, FixtureDir: "tests"}},
		{name: "dir source without dir", cfg: Config{FixtureSource: FixtureSourceDir}, wantErr: true},
		{name: "postgres source", cfg: Config{FixtureSource: FixtureSourcePostgres, DatabaseURL: "postgres://x"}},
		{name: "postgres source without url", cfg: Config{FixtureSource: FixtureSourcePostgres}, wantErr: true},
		{name: "unknown source", cfg: Config{FixtureSource: "s3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
