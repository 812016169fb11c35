// Package cache stores computed views in Badger with a time-to-live.
//
// Entries are JSON values under "<view>:<key>" keys. A nil *Cache is valid
// and behaves as a disabled cache: every lookup misses and writes are dropped.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/reelhouse/reelhouse-server/internal/domain"
)

const channelStatsPrefix = "channel_stats:"

// Options configures the cache.
type Options struct {
	Path     string // Directory for the Badger files; ignored when InMemory
	InMemory bool
	TTL      time.Duration
	Logger   *slog.Logger
}

// Cache is a TTL view cache backed by Badger.
type Cache struct {
	db     *badger.DB
	ttl    time.Duration
	logger *slog.Logger
}

// Open opens or creates the cache.
func Open(opts Options) (*Cache, error) {
	if opts.TTL <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", opts.TTL)
	}

	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger cache: %w", err)
	}

	if opts.Logger != nil {
		opts.Logger.Info("view cache opened", "path", opts.Path, "in_memory", opts.InMemory, "ttl", opts.TTL)
	}
	return &Cache{db: db, ttl: opts.TTL, logger: opts.Logger}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// get decodes the value at key into dest. It reports false on a miss.
func (c *Cache) get(key []byte, dest any) (bool, error) {
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// set stores value at key with the cache TTL.
func (c *Cache) set(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, data).WithTTL(c.ttl))
	})
}

func (c *Cache) delete(key []byte) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// ChannelStats returns cached stats for a channel.
// Decode and read failures are logged and reported as a miss.
func (c *Cache) ChannelStats(channelID string) (*domain.ChannelStats, bool) {
	if c == nil {
		return nil, false
	}
	var stats domain.ChannelStats
	ok, err := c.get([]byte(channelStatsPrefix+channelID), &stats)
	if err != nil {
		c.warn("channel stats lookup failed", channelID, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &stats, true
}

// PutChannelStats caches stats for their channel.
func (c *Cache) PutChannelStats(stats *domain.ChannelStats) error {
	if c == nil || stats == nil {
		return nil
	}
	if err := c.set([]byte(channelStatsPrefix+stats.ChannelID), stats); err != nil {
		return fmt.Errorf("caching channel stats for %s: %w", stats.ChannelID, err)
	}
	return nil
}

// InvalidateChannel drops every cached view of the given channels.
func (c *Cache) InvalidateChannel(channelIDs ...string) error {
	if c == nil {
		return nil
	}
	var errs []error
	for _, id := range channelIDs {
		if err := c.delete([]byte(channelStatsPrefix + id)); err != nil {
			errs = append(errs, fmt.Errorf("invalidating channel %s: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Cache) warn(msg, key string, err error) {
	if c.logger != nil {
		c.logger.Warn(msg, "key", key, "error", err)
	}
}
