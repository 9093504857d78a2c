package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "5000", cfg.Server.Port)
	require.Equal(t, "0.0.0.0:5000", cfg.Addr())
	require.Equal(t, "t5-base", cfg.Model.Name)
	require.Equal(t, "summarize: ", cfg.Model.TaskPrefix)
	require.Equal(t, int64(512), cfg.Model.MaxTokens)
	require.Equal(t, int64(1), cfg.Model.NumBeams, "greedy decoding by default")
	require.Equal(t, 120*time.Second, cfg.Model.Timeout)
	require.Empty(t, cfg.MongoDB.URI)
	require.Equal(t, "simplifications", cfg.MongoDB.Collection)
	require.Equal(t, 30*time.Second, cfg.MongoDB.ReconnectInterval)
	require.Equal(t, 5*time.Second, cfg.MongoDB.Timeout)
	require.Empty(t, cfg.Redis.Host)
	require.Equal(t, time.Hour, cfg.Cache.TTL)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("SERVER_ENVIRONMENT", "Production")
	t.Setenv("MODEL_NAME", "t5-small")
	t.Setenv("MODEL_ACCELERATED_URL", "http://gpu:8000/v1")
	t.Setenv("MODEL_NUM_BEAMS", "0")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_TIMEOUT", "2")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "8081", cfg.Server.Port)
	require.True(t, cfg.IsProduction())
	require.Equal(t, "t5-small", cfg.Model.Name)
	require.Equal(t, "http://gpu:8000/v1", cfg.Model.AcceleratedURL)
	require.Equal(t, int64(1), cfg.Model.NumBeams, "beam width is clamped to greedy decoding")
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	require.Equal(t, 2*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "localhost", cfg.Redis.Host)
	require.True(t, cfg.MinIO.UseSSL)
}

func TestLoadConfig_RejectsInvalidModel(t *testing.T) {
	t.Setenv("MODEL_NAME", "  ")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("MODEL_NAME", "t5-base")
	t.Setenv("MODEL_MAX_TOKENS", "-1")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_NonPositiveMongoDurationsFallBack(t *testing.T) {
	for _, v := range []string{"0", "-3"} {
		t.Setenv("MONGODB_TIMEOUT", v)
		t.Setenv("MONGODB_RECONNECT_INTERVAL", v)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, 5*time.Second, cfg.MongoDB.Timeout, "MONGODB_TIMEOUT=%s", v)
		require.Equal(t, 30*time.Second, cfg.MongoDB.ReconnectInterval, "MONGODB_RECONNECT_INTERVAL=%s", v)
	}
}
