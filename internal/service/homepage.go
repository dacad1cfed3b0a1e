// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olegiv/oforum/internal/hooks"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/store"
)

var homePageBaseRoutes = []model.HomePageRoute{
	{Route: "categories", Name: "Categories"},
	{Route: "unread", Name: "Unread"},
	{Route: "recent", Name: "Recent"},
	{Route: "top", Name: "Top"},
	{Route: "popular", Name: "Popular"},
}

var homePageCustomRoute = model.HomePageRoute{Route: "custom", Name: "Custom"}

// HomepageService lists the routes that can serve as the forum home page.
type HomepageService struct {
	queries *store.Queries
	groups  *GroupService
	hooks   *hooks.Registry
}

// NewHomepageService creates a HomepageService; registry may be nil.
func NewHomepageService(db *sql.DB, groups *GroupService, registry *hooks.Registry) *HomepageService {
	return &HomepageService{queries: store.New(db), groups: groups, hooks: registry}
}

// Routes returns the fixed routes, one category/<slug> route per enabled
// category uid may find, and the custom route, passed through the
// homepage.routes filter.
func (s *HomepageService) Routes(ctx context.Context, uid int64) ([]model.HomePageRoute, error) {
	categories, err := s.findableCategories(ctx, uid)
	if err != nil {
		return nil, err
	}

	routes := make([]model.HomePageRoute, 0, len(homePageBaseRoutes)+len(categories)+1)
	routes = append(routes, homePageBaseRoutes...)
	for _, c := range categories {
		routes = append(routes, model.HomePageRoute{
			Route: "category/" + c.Slug,
			Name:  "Category: " + c.Name,
		})
	}
	routes = append(routes, homePageCustomRoute)

	data, err := hooks.Filter(ctx, s.hooks, hooks.HomepageRoutes, model.HomePageData{UID: uid, Routes: routes})
	if err != nil {
		return nil, fmt.Errorf("filtering homepage routes: %w", err)
	}
	return data.Routes, nil
}

func (s *HomepageService) findableCategories(ctx context.Context, uid int64) ([]store.Category, error) {
	all, err := s.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	isAdmin, err := s.groups.IsAdministrator(ctx, uid)
	if err != nil {
		return nil, err
	}

	allowed := map[int64]bool{}
	if !isAdmin {
		memberOf, err := s.groups.MemberGroups(ctx, uid)
		if err != nil {
			return nil, err
		}
		member := make(map[string]bool, len(memberOf))
		for _, g := range memberOf {
			member[g] = true
		}

		grants, err := s.queries.ListCategoryPrivileges(ctx, model.PrivilegeFind)
		if err != nil {
			return nil, fmt.Errorf("listing category privileges: %w", err)
		}
		for _, g := range grants {
			if member[g.GroupName] {
				allowed[g.CategoryID] = true
			}
		}
	}

	var out []store.Category
	for _, c := range all {
		if c.Disabled {
			continue
		}
		if isAdmin || allowed[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}
