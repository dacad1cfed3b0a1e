// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Levels of an audit event.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Audit event categories. Settings saves use settings, navigation saves use
// navigation, sign-in and access checks use auth.
const (
	EventCategoryAuth       = "auth"
	EventCategoryNavigation = "navigation"
	EventCategorySettings   = "settings"
	EventCategorySystem     = "system"
	EventCategoryCache      = "cache"
)

// Event is a row of the admin audit log. UserID is null for events raised
// by the server itself; Metadata is a JSON object.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}
