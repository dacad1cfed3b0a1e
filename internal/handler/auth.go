// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/oforum/internal/auth"
	"github.com/olegiv/oforum/internal/i18n"
	"github.com/olegiv/oforum/internal/middleware"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/render"
	"github.com/olegiv/oforum/internal/store"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	events          EventRecorder
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler. events and lp may be nil.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, events EventRecorder, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		renderer:        renderer,
		sessionManager:  sm,
		events:          events,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Signed-in users go straight to the
// settings.
// GET /login
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID) > 0 {
		http.Redirect(w, r, redirectAdminSettings, http.StatusSeeOther)
		return
	}

	lang := middleware.GetAdminLang(r)
	renderPage(w, r, h.renderer, templateLogin, render.TemplateData{
		Title: i18n.T(lang, "login.title"),
	})
}

// Login handles the login form submission.
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetAdminLang(r)

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "error.bad_request"))
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "login.invalid"))
		return
	}

	clientIP := middleware.ClientIP(r)

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsLocked(username); locked {
			h.logWarning(r, "Login attempt on locked account", model.GuestUID, map[string]any{"username": username, "ip": clientIP})
			flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "login.locked", formatDuration(remaining)))
			return
		}
	}

	user, err := h.queries.GetUserByUsername(r.Context(), username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			serverError(w, r, h.renderer, "database error during login", "error", err)
			return
		}
		slog.Debug("login attempt for unknown user", "username", username)
		// Unknown users count as failures too so usernames cannot be probed.
		h.loginFailed(w, r, username, model.GuestUID, clientIP)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err, "user_id", user.ID)
	}
	if !valid {
		h.loginFailed(w, r, username, user.ID, clientIP)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccess(username)
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			} else {
				slog.Info("password re-hashed with updated parameters", "user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), user.ID, time.Now()); err != nil {
		// Don't block login on this error
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	if h.events != nil {
		_ = h.events.LogInfo(r.Context(), model.EventCategoryAuth, "User logged in", user.ID, map[string]any{"ip": clientIP})
	}

	flashSuccess(w, r, h.renderer, redirectAdminSettings, i18n.T(lang, "login.welcome", user.Username))
}

// loginFailed records a failed attempt and redirects back to the form.
func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, username string, uid int64, clientIP string) {
	lang := middleware.GetAdminLang(r)
	metadata := map[string]any{"username": username, "ip": clientIP}

	h.logWarning(r, "Login failed", uid, metadata)

	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailure(username); locked {
			metadata["duration"] = lockDuration.String()
			h.logWarning(r, "Account locked due to failed attempts", uid, metadata)
			flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "login.locked", formatDuration(lockDuration)))
			return
		}
		if remaining := h.loginProtection.RemainingAttempts(username); remaining > 0 && remaining <= 3 {
			flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "login.attempts_remaining", remaining))
			return
		}
	}

	flashError(w, r, h.renderer, redirectLogin, i18n.T(lang, "login.invalid"))
}

func (h *AuthHandler) logWarning(r *http.Request, message string, uid int64, metadata map[string]any) {
	if h.events == nil {
		return
	}
	if err := h.events.LogWarning(r.Context(), model.EventCategoryAuth, message, uid, metadata); err != nil {
		slog.Error("failed to log auth event", "error", err)
	}
}

// Logout destroys the session.
// POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)
	if userID > 0 && h.events != nil {
		_ = h.events.LogInfo(r.Context(), model.EventCategoryAuth, "User logged out", userID, nil)
	}

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("user logged out", "user_id", userID)

	lang := middleware.GetAdminLang(r)
	flashAndRedirect(w, r, h.renderer, redirectLogin, i18n.T(lang, "login.logged_out"), render.FlashInfo)
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
