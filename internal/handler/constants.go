// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteAdmin is the admin area mount point.
	RouteAdmin = "/admin"
	// RouteSettings is the settings route inside /admin.
	RouteSettings = "/settings"
	// RouteSettingsTerm is the generic settings page pattern.
	RouteSettingsTerm = RouteSettings + "/{term}"

	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteHealthLive is the liveness probe.
	RouteHealthLive = RouteHealth + "/live"
	// RouteHealthReady is the readiness probe.
	RouteHealthReady = RouteHealth + "/ready"
)

// Dedicated settings terms. Any other term falls through to the generic page.
const (
	TermGeneral    = "general"
	TermEmail      = "email"
	TermUser       = "user"
	TermPost       = "post"
	TermLanguages  = "languages"
	TermSounds     = "sounds"
	TermNavigation = "navigation"
	TermHomepage   = "homepage"
	TermSocial     = "social"
)

const (
	redirectAdminSettings = RouteAdmin + RouteSettings
	redirectLogin         = RouteLogin

	settingsTemplatePrefix = "admin/settings/"
	templateLogin          = "auth/login"
	templateNotFound       = "errors/404"
	templateServerError    = "errors/500"
)

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"

// settingsPath returns the admin URL of a settings page.
func settingsPath(term string) string {
	return redirectAdminSettings + "/" + term
}
