// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/olegiv/oforum/internal/cache"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/store"
)

// ConfigService reads and writes site configuration.
type ConfigService struct {
	db      *sql.DB
	queries *store.Queries
	cache   *cache.Manager
}

// NewConfigService creates a ConfigService; cacheManager may be nil.
func NewConfigService(db *sql.DB, cacheManager *cache.Manager) *ConfigService {
	return &ConfigService{db: db, queries: store.New(db), cache: cacheManager}
}

// All returns every configuration value.
func (s *ConfigService) All(ctx context.Context) (model.SiteConfig, error) {
	if s.cache == nil {
		return s.load(ctx)
	}
	return s.cache.Config.GetOrSet(ctx, cache.KeySiteConfig, s.load)
}

func (s *ConfigService) load(ctx context.Context) (model.SiteConfig, error) {
	rows, err := s.queries.ListConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing config: %w", err)
	}
	cfg := make(model.SiteConfig, len(rows))
	for _, r := range rows {
		cfg[r.Key] = r.Value
	}
	return cfg, nil
}

// SetMany stores values in one transaction and drops the cached config.
func (s *ConfigService) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning config update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := s.queries.WithTx(tx)

	now := time.Now()
	for key, value := range values {
		if err := qtx.UpsertConfig(ctx, store.UpsertConfigParams{
			Key:       key,
			Value:     value,
			Type:      model.ConfigTypeString,
			UpdatedAt: now,
		}); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing config update: %w", err)
	}
	if s.cache != nil {
		s.cache.InvalidateConfig(ctx)
	}
	return nil
}
