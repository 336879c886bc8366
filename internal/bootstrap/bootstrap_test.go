package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"ezypc-storefront/internal/common/config"
	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	return &config.Config{
		GenAI: config.GenAIConfig{Provider: "gemini", Model: "gemini-3-flash-preview"},
		Cache: config.CacheConfig{Backend: config.CacheBackendMemory, Key: "popularProducts", TTLHours: 24},
	}
}

func TestBuild_MemoryBackends(t *testing.T) {
	c, err := Build(context.Background(), memoryConfig(), logger.NewTestLogger(t), true)
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.Catalog)
	require.NotNil(t, c.UsedParts)
	require.NotNil(t, c.Questions)

	parts, err := c.UsedParts.List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, parts)

	questions, err := c.Questions.Questions(models.UseCaseGaming)
	require.NoError(t, err)
	assert.Len(t, questions, 4)
}

func TestBuild_WithoutUsedParts(t *testing.T) {
	c, err := Build(context.Background(), memoryConfig(), logger.NewNoOpLogger(), false)
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.Catalog)
	assert.Nil(t, c.UsedParts)
}

func TestBuild_RedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := memoryConfig()
	cfg.Cache.Backend = config.CacheBackendRedis
	cfg.Database.Redis.Address = mr.Addr()

	c, err := Build(context.Background(), cfg, logger.NewTestLogger(t), false)
	require.NoError(t, err)
	assert.NotNil(t, c.Catalog)
	assert.NoError(t, c.Close())
}

func TestBuild_RedisUnreachable(t *testing.T) {
	cfg := memoryConfig()
	cfg.Cache.Backend = config.CacheBackendRedis
	cfg.Database.Redis.Address = "127.0.0.1:1"

	_, err := Build(context.Background(), cfg, logger.NewNoOpLogger(), false)
	assert.Error(t, err)
}

func TestBuild_MissingRegistryFile(t *testing.T) {
	cfg := memoryConfig()
	cfg.Wizard.RegistryPath = filepath.Join(t.TempDir(), "questions.json")

	_, err := Build(context.Background(), cfg, logger.NewNoOpLogger(), false)
	assert.Error(t, err)
}

func TestBuildNotifier_Disabled(t *testing.T) {
	n, err := buildNotifier(context.Background(), memoryConfig())
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestGatewayConfig(t *testing.T) {
	gc := GatewayConfig(config.GenAIConfig{Provider: "openai", APIKey: "k", BaseURL: "http://llm.local/v1", Model: "gpt-4o-mini"})
	assert.Equal(t, "openai", gc.Provider)
	assert.Equal(t, "k", gc.APIKey)
	assert.Equal(t, "http://llm.local/v1", gc.BaseURL)
	assert.Equal(t, "gpt-4o-mini", gc.Model)
}
