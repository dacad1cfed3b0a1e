// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/olegiv/oforum/internal/cache"
	"github.com/olegiv/oforum/internal/hooks"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/store"
)

var coreSharingNetworks = []model.SharingNetwork{
	{ID: "facebook", Name: "Facebook", Class: "fa-facebook"},
	{ID: "twitter", Name: "X (Twitter)", Class: "fa-twitter"},
}

// SocialService manages post-sharing networks.
type SocialService struct {
	db      *sql.DB
	queries *store.Queries
	cache   *cache.Manager
	hooks   *hooks.Registry
}

// NewSocialService creates a SocialService; cacheManager and registry may be nil.
func NewSocialService(db *sql.DB, cacheManager *cache.Manager, registry *hooks.Registry) *SocialService {
	return &SocialService{db: db, queries: store.New(db), cache: cacheManager, hooks: registry}
}

// PostSharing returns the core networks plus plugin additions from the
// social.posts filter, each marked with whether it is activated. Callers get
// their own copy.
func (s *SocialService) PostSharing(ctx context.Context) ([]model.SharingNetwork, error) {
	if s.cache == nil {
		return s.load(ctx)
	}
	return s.cache.Social.GetOrSet(ctx, cache.KeySocialNetworks, s.load)
}

func (s *SocialService) load(ctx context.Context) ([]model.SharingNetwork, error) {
	networks, err := hooks.Filter(ctx, s.hooks, hooks.SocialPosts, slices.Clone(coreSharingNetworks))
	if err != nil {
		return nil, fmt.Errorf("filtering sharing networks: %w", err)
	}

	activated, err := s.queries.ListActivatedSocialNetworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing activated networks: %w", err)
	}
	for i := range networks {
		networks[i].Activated = slices.Contains(activated, networks[i].ID)
	}
	return networks, nil
}

// SetActivated replaces the set of activated network ids.
func (s *SocialService) SetActivated(ctx context.Context, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning social update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := s.queries.WithTx(tx)

	if err := qtx.ClearActivatedSocialNetworks(ctx); err != nil {
		return fmt.Errorf("clearing activated networks: %w", err)
	}
	for _, id := range ids {
		if err := qtx.ActivateSocialNetwork(ctx, id); err != nil {
			return fmt.Errorf("activating %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing social update: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidateSocial(ctx)
	}
	return nil
}
