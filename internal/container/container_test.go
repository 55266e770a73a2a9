package container

import (
	"context"
	"testing"

	"devimpact/internal/config"
	"devimpact/internal/service"
	"devimpact/pkg/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(redisURL string) *config.Config {
	return &config.Config{
		Environment:       "test",
		Port:              "8080",
		RedisURL:          redisURL,
		SupabaseURL:       "https://project.supabase.co",
		SupabaseJWTSecret: "secret",
		AdminEmails:       []string{"admin@ncs.club"},
		EmailFunction:     "send-email",
		EmailEnabled:      true,
		Scoring:           config.DefaultScoringConfig(),
	}
}

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name        string
		redisURL    string
		expectRedis bool
	}{
		{name: "Container with Redis configured", redisURL: "redis://" + mr.Addr(), expectRedis: true},
		{name: "Container without Redis configured", redisURL: "", expectRedis: false},
		// Redis client initialization fails but container creation succeeds
		{name: "Container with invalid Redis URL", redisURL: "invalid://redis-url", expectRedis: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.redisURL)
			log := logger.NewNop()

			c, err := New(cfg, log, nil)
			require.NoError(t, err)
			require.NotNil(t, c)
			t.Cleanup(func() {
				if c.RedisClient != nil {
					_ = c.RedisClient.Close()
				}
			})

			assert.Equal(t, cfg, c.Config)
			assert.Equal(t, log, c.Logger)
			require.NotNil(t, c.Services)
			assert.NotNil(t, c.Services.Auth)
			assert.NotNil(t, c.Services.Registration)
			assert.NotNil(t, c.Services.Team)
			assert.NotNil(t, c.Services.Notifier)
			assert.Equal(t, tt.expectRedis, c.HasRedis())
			assert.Equal(t, tt.expectRedis, c.Services.Cache.Enabled())
		})
	}
}

func TestContainer_ScorerUsesConfig(t *testing.T) {
	cfg := testConfig("")
	cfg.Scoring.MaxTeamSize = 4

	c, err := New(cfg, logger.NewNop(), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, c.Scorer.MaxTeamSize())
}

func TestContainer_GetAuthService(t *testing.T) {
	c, err := New(testConfig(""), logger.NewNop(), nil)
	require.NoError(t, err)

	authService := c.GetAuthService()
	assert.NotNil(t, authService)
	assert.Implements(t, (*service.AuthService)(nil), authService)
}

func TestContainer_HealthChecks(t *testing.T) {
	mr := miniredis.RunT(t)

	withoutRedis, err := New(testConfig(""), logger.NewNop(), nil)
	require.NoError(t, err)
	assert.Empty(t, withoutRedis.HealthChecks())

	withRedis, err := New(testConfig("redis://"+mr.Addr()), logger.NewNop(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = withRedis.RedisClient.Close() })

	checks := withRedis.HealthChecks()
	require.Len(t, checks, 1)
	assert.Equal(t, "cache", checks[0].Name)
	assert.False(t, checks[0].Critical)
	assert.NoError(t, checks[0].Check(context.Background()))
}

func TestContainer_Drain_NoPendingEmails(t *testing.T) {
	c, err := New(testConfig(""), logger.NewNop(), nil)
	require.NoError(t, err)

	c.Drain()
}
