// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
)

// TypedCache stores values of type T as JSON in a Cacher.
type TypedCache[T any] struct {
	backend Cacher
	ttl     time.Duration
}

// NewTypedCache wraps backend. ttl is used for every Set.
func NewTypedCache[T any](backend Cacher, ttl time.Duration) *TypedCache[T] {
	return &TypedCache[T]{backend: backend, ttl: ttl}
}

// Get decodes the value under key. It returns false on a miss, on a backend
// error, or when the stored bytes no longer decode into T.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T
	data, err := c.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			slog.Warn("cache get failed", "key", key, "error", err)
		}
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		slog.Warn("cache entry does not decode", "key", key, "error", err)
		return value, false
	}
	return value, true
}

// Set encodes value and stores it under key.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, key, data, c.ttl)
}

// Delete removes key.
func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, key)
}

// GetOrSet returns the cached value for key, or calls load and caches its
// result. A failed cache write is logged and the loaded value returned anyway.
func (c *TypedCache[T]) GetOrSet(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if value, ok := c.Get(ctx, key); ok {
		return value, nil
	}

	value, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := c.Set(ctx, key, value); err != nil {
		slog.Warn("cache set failed", "key", key, "error", err)
	}
	return value, nil
}
