// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/oforum/internal/cache"
	"github.com/olegiv/oforum/internal/hooks"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/store"
)

// ErrInvalidNavigation is returned by Save for entries that cannot be stored.
var ErrInvalidNavigation = errors.New("invalid navigation entry")

// NavigationService reads and replaces the site navigation bar.
type NavigationService struct {
	db      *sql.DB
	queries *store.Queries
	cache   *cache.Manager
	hooks   *hooks.Registry
	policy  *bluemonday.Policy
}

// NewNavigationService creates a NavigationService. cacheManager and registry
// may be nil.
func NewNavigationService(db *sql.DB, cacheManager *cache.Manager, registry *hooks.Registry) *NavigationService {
	return &NavigationService{
		db:      db,
		queries: store.New(db),
		cache:   cacheManager,
		hooks:   registry,
		policy:  bluemonday.StrictPolicy(),
	}
}

// Admin returns the stored navigation entries and the templates that can be
// added to it.
func (s *NavigationService) Admin(ctx context.Context) (model.NavigationAdmin, error) {
	enabled, err := s.Enabled(ctx)
	if err != nil {
		return model.NavigationAdmin{}, err
	}
	available, err := s.Available(ctx)
	if err != nil {
		return model.NavigationAdmin{}, err
	}
	return model.NavigationAdmin{Enabled: enabled, Available: available}, nil
}

// Enabled returns the stored entries in position order. Stored fields are
// escaped; the returned ones are plain text.
func (s *NavigationService) Enabled(ctx context.Context) ([]model.NavigationEntry, error) {
	if s.cache == nil {
		return s.loadEnabled(ctx)
	}
	return s.cache.Navigation.GetOrSet(ctx, cache.KeyNavigationEnabled, s.loadEnabled)
}

// Available returns the core catalog plus templates contributed by plugins
// through the navigation.available filter.
func (s *NavigationService) Available(ctx context.Context) ([]model.NavigationTemplate, error) {
	available, err := hooks.Filter(ctx, s.hooks, hooks.NavigationAvailable, slices.Clone(model.CoreNavigation))
	if err != nil {
		return nil, fmt.Errorf("filtering available navigation: %w", err)
	}
	return available, nil
}

func (s *NavigationService) loadEnabled(ctx context.Context) ([]model.NavigationEntry, error) {
	items, err := s.queries.ListNavigationItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing navigation items: %w", err)
	}
	links, err := s.queries.ListNavigationItemGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing navigation groups: %w", err)
	}

	groupsByItem := make(map[int64][]string)
	for _, l := range links {
		groupsByItem[l.ItemID] = append(groupsByItem[l.ItemID], l.GroupName)
	}

	entries := make([]model.NavigationEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, model.NavigationEntry{
			Key:             it.ItemKey,
			ID:              html.UnescapeString(it.HtmlID),
			Route:           html.UnescapeString(it.Route),
			Title:           html.UnescapeString(it.Title),
			Text:            html.UnescapeString(it.Text),
			IconClass:       html.UnescapeString(it.IconClass),
			TextClass:       html.UnescapeString(it.TextClass),
			Class:           html.UnescapeString(it.Class),
			Enabled:         it.Enabled,
			TargetBlank:     it.TargetBlank,
			PermittedGroups: groupsByItem[it.ID],
		})
	}
	return entries, nil
}

// Save replaces the whole navigation bar with entries, in order. Free-text
// fields are HTML-escaped, positions are renumbered from 0, and entries
// without a key get a new one.
func (s *NavigationService) Save(ctx context.Context, entries []model.NavigationEntry) error {
	for i, e := range entries {
		if strings.TrimSpace(e.Route) == "" {
			return fmt.Errorf("%w: entry %d has no route", ErrInvalidNavigation, i)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning navigation save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := s.queries.WithTx(tx)

	if err := qtx.DeleteAllNavigationItems(ctx); err != nil {
		return fmt.Errorf("clearing navigation: %w", err)
	}

	seenKeys := make(map[string]bool, len(entries))
	for i, e := range entries {
		key := e.Key
		if _, err := uuid.Parse(key); err != nil || seenKeys[key] {
			key = uuid.NewString()
		}
		seenKeys[key] = true

		id, err := qtx.CreateNavigationItem(ctx, store.CreateNavigationItemParams{
			ItemKey:     key,
			Position:    int64(i),
			HtmlID:      s.escape(e.ID),
			Route:       s.escape(e.Route),
			Title:       s.escape(e.Title),
			Text:        s.escape(e.Text),
			IconClass:   s.escape(e.IconClass),
			TextClass:   s.escape(e.TextClass),
			Class:       s.escape(e.Class),
			Enabled:     e.Enabled,
			TargetBlank: e.TargetBlank,
		})
		if err != nil {
			return fmt.Errorf("storing navigation entry %d: %w", i, err)
		}

		for _, g := range e.PermittedGroups {
			if g = strings.TrimSpace(g); g == "" {
				continue
			}
			if err := qtx.AddNavigationItemGroup(ctx, id, g); err != nil {
				return fmt.Errorf("storing groups of navigation entry %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing navigation: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidateNavigation(ctx)
	}
	return nil
}

// escape strips markup and HTML-escapes what remains.
func (s *NavigationService) escape(v string) string {
	return s.policy.Sanitize(strings.TrimSpace(v))
}
