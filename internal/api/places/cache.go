package places

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/go-route-planner/app/observability/metrics"
)

// Cache stores raw provider responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}

var _ Cache = (*TwoLayerCache)(nil)

// TwoLayerCache keeps entries in process memory in front of an optional
// badger store on disk. Disk hits are promoted to memory for the rest of
// their lifetime.
type TwoLayerCache struct {
	mem    *gocache.Cache
	disk   *badger.DB
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache opens the cache. An empty dir keeps it in memory only.
func NewCache(ttl time.Duration, dir string, logger *slog.Logger) (*TwoLayerCache, error) {
	c := &TwoLayerCache{
		mem:    gocache.New(ttl, 2*ttl),
		ttl:    ttl,
		logger: logger,
	}
	if dir == "" {
		return c, nil
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache dir %s: %w", dir, err)
	}
	c.disk = db
	return c, nil
}

func (c *TwoLayerCache) Get(ctx context.Context, key string) ([]byte, bool) {
	m := metrics.Get()
	if v, ok := c.mem.Get(key); ok {
		m.CacheHitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("layer", "memory")))
		return v.([]byte), true
	}
	if c.disk == nil {
		m.CacheMissesTotal.Add(ctx, 1)
		return nil, false
	}

	var (
		value     []byte
		expiresAt uint64
	)
	err := c.disk.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		expiresAt = item.ExpiresAt()
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.WarnContext(ctx, "Cache read failed", slog.String("key", key), slog.Any("error", err))
		}
		m.CacheMissesTotal.Add(ctx, 1)
		return nil, false
	}

	remaining := c.ttl
	if expiresAt > 0 {
		remaining = time.Until(time.Unix(int64(expiresAt), 0))
	}
	if remaining > 0 {
		c.mem.Set(key, value, remaining)
	}
	m.CacheHitsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("layer", "disk")))
	return value, true
}

func (c *TwoLayerCache) Set(ctx context.Context, key string, value []byte) error {
	c.mem.Set(key, value, c.ttl)
	if c.disk == nil {
		return nil
	}
	err := c.disk.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Close releases the disk store.
func (c *TwoLayerCache) Close() error {
	if c.disk == nil {
		return nil
	}
	return c.disk.Close()
}

// MakeKey derives a stable key from an endpoint name and its parameters.
// Map keys are sorted by encoding/json, so parameter order does not matter.
func MakeKey(endpoint string, params map[string]any) string {
	payload, err := json.Marshal(map[string]any{"endpoint": endpoint, "params": params})
	if err != nil {
		// params only ever hold strings and numbers
		panic(fmt.Sprintf("cache key for %s: %v", endpoint, err))
	}
	sum := sha1.Sum(payload)
	return hex.EncodeToString(sum[:])
}
