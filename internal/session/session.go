// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the scs session manager backed by SQLite.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Cookie names. The __Host- prefix requires Secure, Path=/ and no Domain,
// so it is only used outside development.
const (
	CookieName       = "oforum_session"
	SecureCookieName = "__Host-oforum_session"
)

// Lifetime is the absolute session lifetime.
const Lifetime = 24 * time.Hour

// IdleTimeout ends sessions that see no requests for this long.
const IdleTimeout = 2 * time.Hour

// New creates a session manager storing sessions in db's sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.NewWithCleanupInterval(db, 30*time.Minute)

	sm.Lifetime = Lifetime
	sm.IdleTimeout = IdleTimeout
	sm.Cookie.Name = CookieName
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev

	if !isDev {
		sm.Cookie.Name = SecureCookieName
	}

	return sm
}
