// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/olegiv/oforum/internal/i18n"
	"github.com/olegiv/oforum/internal/middleware"
	"github.com/olegiv/oforum/internal/render"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashError)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, render.FlashSuccess)
}

// renderPage renders a page and turns a template failure into a plain 500.
func renderPage(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, name string, data render.TemplateData) {
	if err := renderer.Render(w, r, name, data); err != nil {
		logAndInternalError(w, "render failed", "template", name, "error", err)
	}
}

// serverError logs err and answers 500 with the error page. Nothing of the
// page that failed is written.
func serverError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, logMsg string, args ...any) {
	slog.Error(logMsg, append(args, "path", r.URL.Path)...)
	renderErrorPage(w, r, renderer, http.StatusInternalServerError, templateServerError, "error.internal")
}

// notFound answers 404 with the not-found page.
func notFound(w http.ResponseWriter, r *http.Request, renderer *render.Renderer) {
	renderErrorPage(w, r, renderer, http.StatusNotFound, templateNotFound, "error.not_found")
}

// NotFound returns the router fallback rendering the not-found page.
func NotFound(renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notFound(w, r, renderer)
	}
}

func renderErrorPage(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, status int, name, titleKey string) {
	title := i18n.T(middleware.GetAdminLang(r), titleKey)
	if renderer == nil || !renderer.HasTemplate(name) {
		http.Error(w, title, status)
		return
	}
	if err := renderer.RenderStatus(w, r, status, name, render.TemplateData{Title: title}); err != nil {
		slog.Error("render error page failed", "template", name, "error", err)
		http.Error(w, title, status)
	}
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Internal Server Error", http.StatusInternalServerError, logMsg, args...)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set(HeaderContentType, "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a JSON error response.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}

// writeJSONSuccess writes a JSON success response.
func writeJSONSuccess(w http.ResponseWriter, data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}
	data["success"] = true
	writeJSON(w, http.StatusOK, data)
}
