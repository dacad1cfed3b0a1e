// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// NavigationEntry is an item placed in the site navigation bar.
// PermittedGroups restricts visibility; empty means visible to everyone.
type NavigationEntry struct {
	Key             string   `json:"key"`
	ID              string   `json:"id"`
	Route           string   `json:"route"`
	Title           string   `json:"title"`
	Text            string   `json:"text"`
	IconClass       string   `json:"iconClass"`
	TextClass       string   `json:"textClass"`
	Class           string   `json:"class"`
	Enabled         bool     `json:"enabled"`
	TargetBlank     bool     `json:"targetBlank"`
	PermittedGroups []string `json:"groups"`
}

// NavigationTemplate is an entry definition that can be added to the navigation bar.
type NavigationTemplate struct {
	ID        string `json:"id"`
	Route     string `json:"route"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	IconClass string `json:"iconClass"`
	TextClass string `json:"textClass"`
	Core      bool   `json:"core"`
}

// NavigationAdmin holds the current navigation configuration.
type NavigationAdmin struct {
	Enabled   []NavigationEntry    `json:"enabled"`
	Available []NavigationTemplate `json:"available"`
}

// CoreNavigation is the built-in catalog of navigation entries.
var CoreNavigation = []NavigationTemplate{
	{Route: "/categories", Title: "[[global:header.categories]]", IconClass: "fa-list", TextClass: "visible-xs-inline", Text: "[[global:header.categories]]", Core: true},
	{ID: "unread-count", Route: "/unread", Title: "[[global:header.unread]]", IconClass: "fa-inbox", TextClass: "visible-xs-inline", Text: "[[global:header.unread]]", Core: true},
	{Route: "/recent", Title: "[[global:header.recent]]", IconClass: "fa-clock-o", TextClass: "visible-xs-inline", Text: "[[global:header.recent]]", Core: true},
	{Route: "/tags", Title: "[[global:header.tags]]", IconClass: "fa-tags", TextClass: "visible-xs-inline", Text: "[[global:header.tags]]", Core: true},
	{Route: "/popular", Title: "[[global:header.popular]]", IconClass: "fa-fire", TextClass: "visible-xs-inline", Text: "[[global:header.popular]]", Core: true},
	{Route: "/top", Title: "[[global:header.top]]", IconClass: "fa-arrow-up", TextClass: "visible-xs-inline", Text: "[[global:header.top]]", Core: true},
	{Route: "/users", Title: "[[global:header.users]]", IconClass: "fa-user", TextClass: "visible-xs-inline", Text: "[[global:header.users]]", Core: true},
	{Route: "/groups", Title: "[[global:header.groups]]", IconClass: "fa-group", TextClass: "visible-xs-inline", Text: "[[global:header.groups]]", Core: true},
	{Route: "/admin", Title: "[[global:header.admin]]", IconClass: "fa-cogs", TextClass: "visible-xs-inline", Text: "[[global:header.admin]]", Core: true},
	{ID: "search-button", Route: "/search", Title: "[[global:header.search]]", IconClass: "fa-search", TextClass: "visible-xs-inline", Text: "[[global:header.search]]", Core: true},
}
