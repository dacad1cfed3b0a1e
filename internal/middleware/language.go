// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/oforum/internal/i18n"
)

// ContextKeyAdminLang holds the admin UI language of the request.
const ContextKeyAdminLang ContextKey = "admin_lang"

// AdminLanguage creates middleware that resolves the admin UI language.
// Priority order:
// 1. Query parameter ?lang=XX, which is also stored in the session
// 2. Session preference
// 3. Accept-Language header
// 4. Default admin language
func AdminLanguage(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""

			if q := r.URL.Query().Get("lang"); q != "" && i18n.IsSupported(q) {
				lang = q
				if sm != nil {
					sm.Put(r.Context(), SessionKeyAdminLang, lang)
				}
			}

			if lang == "" && sm != nil {
				if s := sm.GetString(r.Context(), SessionKeyAdminLang); i18n.IsSupported(s) {
					lang = s
				}
			}

			if lang == "" {
				lang = i18n.MatchLanguage(r.Header.Get("Accept-Language"))
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdminLang, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminLang returns the admin UI language resolved for r, or the default
// admin language when AdminLanguage did not run.
func GetAdminLang(r *http.Request) string {
	if lang, ok := r.Context().Value(ContextKeyAdminLang).(string); ok && lang != "" {
		return lang
	}
	return i18n.SupportedLanguages[0]
}
