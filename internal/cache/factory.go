// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"
)

// Options selects and configures the cache backend.
type Options struct {
	RedisURL        string // empty selects the memory backend
	Prefix          string
	DefaultTTL      time.Duration
	MaxSize         int
	CleanupInterval time.Duration
}

// NewBackend returns a Redis backend when RedisURL is set and reachable,
// otherwise a memory backend. The second return value names the backend.
func NewBackend(ctx context.Context, opts Options) (Cacher, string) {
	if opts.RedisURL != "" {
		rc, err := NewRedisCache(ctx, RedisOptions{
			URL:        opts.RedisURL,
			Prefix:     opts.Prefix,
			DefaultTTL: opts.DefaultTTL,
		})
		if err == nil {
			return rc, "redis"
		}
		slog.Warn("redis unavailable, falling back to memory cache", "error", err)
	}

	if opts.CleanupInterval == 0 {
		opts.CleanupInterval = time.Minute
	}
	return NewMemoryCache(MemoryOptions{
		DefaultTTL:      opts.DefaultTTL,
		MaxSize:         opts.MaxSize,
		CleanupInterval: opts.CleanupInterval,
	}), "memory"
}
