// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/olegiv/oforum/internal/model"
)

// Cache keys
const (
	KeyNavigationEnabled = "navigation:enabled"
	KeySocialNetworks    = "social:networks"
	KeySiteConfig        = "config:all"
)

// Manager owns the cache backend and the typed caches the services read
// through.
type Manager struct {
	backend Cacher
	name    string

	Navigation *TypedCache[[]model.NavigationEntry]
	Social     *TypedCache[[]model.SharingNetwork]
	Config     *TypedCache[model.SiteConfig]
}

// NewManager builds typed caches over backend. name identifies the backend
// in logs and stats ("memory" or "redis").
func NewManager(backend Cacher, name string, ttl time.Duration) *Manager {
	return &Manager{
		backend:    backend,
		name:       name,
		Navigation: NewTypedCache[[]model.NavigationEntry](backend, ttl),
		Social:     NewTypedCache[[]model.SharingNetwork](backend, ttl),
		Config:     NewTypedCache[model.SiteConfig](backend, ttl),
	}
}

// NewMemoryManager is a Manager over a fresh memory backend.
func NewMemoryManager(ttl time.Duration) *Manager {
	return NewManager(NewMemoryCache(MemoryOptions{DefaultTTL: ttl}), "memory", ttl)
}

// BackendName returns "memory" or "redis".
func (m *Manager) BackendName() string {
	return m.name
}

// InvalidateNavigation drops the cached enabled navigation list.
func (m *Manager) InvalidateNavigation(ctx context.Context) {
	m.invalidate(ctx, KeyNavigationEnabled)
}

// InvalidateSocial drops the cached post-sharing networks.
func (m *Manager) InvalidateSocial(ctx context.Context) {
	m.invalidate(ctx, KeySocialNetworks)
}

// InvalidateConfig drops the cached site configuration.
func (m *Manager) InvalidateConfig(ctx context.Context) {
	m.invalidate(ctx, KeySiteConfig)
}

func (m *Manager) invalidate(ctx context.Context, key string) {
	if err := m.backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrCacheClosed) {
		slog.Warn("cache invalidation failed", "key", key, "backend", m.name, "error", err)
	}
}

// ClearAll empties the backend and resets its statistics.
func (m *Manager) ClearAll(ctx context.Context) error {
	if err := m.backend.Clear(ctx); err != nil {
		return err
	}
	if sp, ok := m.backend.(StatsProvider); ok {
		sp.ResetStats()
	}
	return nil
}

// Stats returns backend statistics, or zero Stats if the backend keeps none.
func (m *Manager) Stats() Stats {
	if sp, ok := m.backend.(StatsProvider); ok {
		return sp.Stats()
	}
	return Stats{}
}

// Ping checks backends that support it, such as Redis. Backends without a
// Ping method are always reachable.
func (m *Manager) Ping(ctx context.Context) error {
	if p, ok := m.backend.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.backend.Close()
}
