package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/common/metrics"
	"ezypc-storefront/internal/models"
)

const (
	DefaultKey = "popularProducts"
	DefaultTTL = 24 * time.Hour
)

type Config struct {
	Key string
	TTL time.Duration
}

// Entry is the persisted record. Timestamp is epoch milliseconds.
type Entry struct {
	Timestamp int64        `json:"timestamp"`
	Data      models.Batch `json:"data"`
}

// ResultCache holds a single batch under a fixed key. Entries older than the
// TTL read as absent but stay in the store until the next successful write.
type ResultCache struct {
	store  Store
	key    string
	ttl    time.Duration
	now    func() time.Time
	logger logger.Logger
}

func NewResultCache(store Store, cfg Config, log logger.Logger) *ResultCache {
	if cfg.Key == "" {
		cfg.Key = DefaultKey
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &ResultCache{
		store: store,
		key:   cfg.Key,
		ttl:   cfg.TTL,
		now:   time.Now,
		logger: log.WithFields(map[string]interface{}{
			"component": "result-cache",
			"key":       cfg.Key,
		}),
	}
}

// WithClock replaces the time source.
func (c *ResultCache) WithClock(now func() time.Time) *ResultCache {
	c.now = now
	return c
}

// Read returns the cached batch if present and fresh. Missing, expired,
// undecodable entries and store failures all read as absent.
func (c *ResultCache) Read(ctx context.Context) (*models.Batch, bool) {
	raw, err := c.store.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("cache read failed", map[string]interface{}{"error": err.Error()})
			metrics.CacheLookups.WithLabelValues("error").Inc()
		} else {
			metrics.CacheLookups.WithLabelValues("miss").Inc()
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Data.Recommendations == nil {
		c.logger.Warn("cache entry undecodable", map[string]interface{}{"bytes": len(raw)})
		metrics.CacheLookups.WithLabelValues("corrupt").Inc()
		return nil, false
	}

	age := c.now().UnixMilli() - entry.Timestamp
	if age >= c.ttl.Milliseconds() {
		c.logger.Debug("cache entry expired", map[string]interface{}{"ageMs": age})
		metrics.CacheLookups.WithLabelValues("expired").Inc()
		return nil, false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	c.logger.Debug("serving from cache", map[string]interface{}{"ageMs": age})
	return &entry.Data, true
}

// Write overwrites the entry with batch stamped at the current time.
func (c *ResultCache) Write(ctx context.Context, batch *models.Batch) error {
	if batch == nil {
		return fmt.Errorf("cache write: nil batch")
	}

	payload, err := json.Marshal(Entry{
		Timestamp: c.now().UnixMilli(),
		Data:      *batch,
	})
	if err != nil {
		return fmt.Errorf("cache write: marshal: %w", err)
	}

	if err := c.store.Set(ctx, c.key, payload); err != nil {
		return fmt.Errorf("cache write: %w", err)
	}
	return nil
}
