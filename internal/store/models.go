// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  sql.NullTime
}

type Group struct {
	Name        string
	DisplayName string
	Description string
	System      bool
	Hidden      bool
	CreatedAt   time.Time
	MemberCount int64
}

type NavigationItem struct {
	ID          int64
	ItemKey     string
	Position    int64
	HtmlID      string
	Route       string
	Title       string
	Text        string
	IconClass   string
	TextClass   string
	Class       string
	Enabled     bool
	TargetBlank bool
}

type NavigationItemGroup struct {
	ItemID    int64
	GroupName string
}

type Config struct {
	Key       string
	Value     string
	Type      string
	UpdatedAt time.Time
}

type Language struct {
	Code      string
	Name      string
	Direction string
	Position  int64
}

type Category struct {
	ID       int64
	Name     string
	Slug     string
	Position int64
	Disabled bool
}

type CategoryPrivilege struct {
	CategoryID int64
	Privilege  string
	GroupName  string
}

type SoundpackSound struct {
	Pack     string
	Name     string
	Asset    string
	Position int64
}

type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}
