// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Category privileges.
const (
	PrivilegeFind = "find"
	PrivilegeRead = "read"
)

// Category is a forum category.
type Category struct {
	ID       int64
	Name     string
	Slug     string
	Position int64
	Disabled bool
}

// HomePageRoute is a selectable homepage route.
type HomePageRoute struct {
	Route string `json:"route"`
	Name  string `json:"name"`
}

// Soundpack is a named collection of sounds; Sounds maps sound name to asset path.
type Soundpack struct {
	Name   string            `json:"name"`
	Sounds map[string]string `json:"sounds"`
}

// SharingNetwork is a social post-sharing provider.
type SharingNetwork struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Class     string `json:"class"`
	Activated bool   `json:"activated"`
}

// EmailTemplate is an email body template with its optional custom override.
type EmailTemplate struct {
	Path     string `json:"path"`
	FullPath string `json:"fullpath"`
	Text     string `json:"text"`
	Original string `json:"original"`
	IsCustom bool   `json:"isCustom"`
}

// HomePageData is passed through the homepage.routes filter.
type HomePageData struct {
	UID    int64           `json:"uid"`
	Routes []HomePageRoute `json:"routes"`
}

// NotificationTypes is passed through the notifications.types filter.
// Privileged types are only offered to administrators and moderators.
type NotificationTypes struct {
	Types      []string `json:"types"`
	Privileged []string `json:"privilegedTypes"`
}
