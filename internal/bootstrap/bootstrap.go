// Package bootstrap wires configuration into the storefront components shared
// by the API server and the worker manager.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"ezypc-storefront/internal/cache"
	"ezypc-storefront/internal/catalog"
	"ezypc-storefront/internal/common/aws"
	"ezypc-storefront/internal/common/config"
	"ezypc-storefront/internal/common/database"
	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/gateway"
	"ezypc-storefront/internal/usedparts"
	"ezypc-storefront/pkg/registry"
)

const pingTimeout = 5 * time.Second

type Components struct {
	Catalog   *catalog.Service
	UsedParts *usedparts.Service
	Questions *registry.QuestionRegistry

	closers []func() error
}

// Close releases connections in reverse order of creation.
func (c *Components) Close() error {
	var first error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

// Build assembles the catalog, the question registry and, when withUsedParts
// is set, the used-parts marketplace.
func Build(ctx context.Context, cfg *config.Config, log logger.Logger, withUsedParts bool) (*Components, error) {
	c := &Components{}

	questions, err := registry.Load(cfg.Wizard.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("load question registry: %w", err)
	}
	c.Questions = questions

	store, err := c.cacheStore(ctx, cfg, log)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	provider := gateway.Default(GatewayConfig(cfg.GenAI))
	resultCache := cache.NewResultCache(store, cache.Config{
		Key: cfg.Cache.Key,
		TTL: cfg.Cache.TTL(),
	}, log)
	c.Catalog = catalog.NewService(gateway.New(provider, log), resultCache, log)

	if withUsedParts {
		svc, err := c.usedParts(ctx, cfg, log)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.UsedParts = svc
	}

	return c, nil
}

func GatewayConfig(cfg config.GenAIConfig) gateway.Config {
	return gateway.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
	}
}

func (c *Components) cacheStore(ctx context.Context, cfg *config.Config, log logger.Logger) (cache.Store, error) {
	if cfg.Cache.Backend == config.CacheBackendMemory {
		log.Info("result cache using in-process memory store", nil)
		return cache.NewMemoryStore(), nil
	}

	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	c.closers = append(c.closers, rdb.Close)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Database.Redis.Address, err)
	}

	log.Info("result cache using redis", map[string]interface{}{
		"address": cfg.Database.Redis.Address,
	})
	return cache.NewRedisStore(rdb.GetClient()), nil
}

func (c *Components) usedParts(ctx context.Context, cfg *config.Config, log logger.Logger) (*usedparts.Service, error) {
	repo, err := c.partsRepository(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	notifier, err := buildNotifier(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return usedparts.NewService(repo, notifier, log), nil
}

func (c *Components) partsRepository(ctx context.Context, cfg *config.Config, log logger.Logger) (usedparts.Repository, error) {
	if !cfg.Database.Postgres.Enabled() {
		log.Warn("postgres not configured, used parts served from memory", nil)
		return usedparts.NewMemoryRepository(usedparts.SeedParts), nil
	}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, pg.Close)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pg.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	repo := usedparts.NewPostgresRepository(pg.GetDB())
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	if cfg.UsedParts.SeedOnStart {
		if err := repo.Seed(ctx, usedparts.SeedParts); err != nil {
			return nil, err
		}
		log.Info("used parts seeded", map[string]interface{}{"count": len(usedparts.SeedParts)})
	}
	return repo, nil
}

// buildNotifier returns nil when both channels are off.
func buildNotifier(ctx context.Context, cfg *config.Config) (*usedparts.Notifier, error) {
	n := cfg.Notifications
	if !n.Email.Enabled && !n.SMS.Enabled {
		return nil, nil
	}

	clients, err := aws.NewClients(ctx, n.AWS.Region, n.Email.Enabled, n.SMS.Enabled)
	if err != nil {
		return nil, err
	}

	// Typed nil pointers would make the interfaces non-nil.
	var sesClient usedparts.SESService
	if clients.SES != nil {
		sesClient = clients.SES
	}
	var snsClient usedparts.SNSService
	if clients.SNS != nil {
		snsClient = clients.SNS
	}

	return usedparts.NewNotifier(usedparts.NotifierConfig{
		EmailEnabled: n.Email.Enabled,
		FromEmail:    n.Email.FromEmail,
		StoreEmail:   n.Email.StoreEmail,
		SMSEnabled:   n.SMS.Enabled,
		StorePhone:   n.SMS.StorePhone,
	}, sesClient, snsClient), nil
}
