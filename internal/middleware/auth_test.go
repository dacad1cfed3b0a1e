// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/store"
	"github.com/olegiv/oforum/internal/testutil"
)

type fakeAdminChecker struct {
	admins map[int64]bool
	err    error
}

func (f fakeAdminChecker) IsAdministrator(_ context.Context, uid int64) (bool, error) {
	return f.admins[uid], f.err
}

type recordedEvent struct {
	category, message string
	userID            int64
}

type fakeEventLogger struct{ events []recordedEvent }

func (f *fakeEventLogger) LogWarning(_ context.Context, category, message string, userID int64, _ map[string]any) error {
	f.events = append(f.events, recordedEvent{category, message, userID})
	return nil
}

// withSessionUser runs next inside a loaded session holding uid.
func withSessionUser(sm *scs.SessionManager, uid int64, next http.Handler) http.Handler {
	return sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid != 0 {
			sm.Put(r.Context(), SessionKeyUserID, uid)
		}
		next.ServeHTTP(w, r)
	}))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGetUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetUser(req))
	assert.Equal(t, model.GuestUID, GetUserID(req))

	req = req.WithContext(WithUser(req.Context(), store.User{ID: 123, Username: "alice"}))
	user := GetUser(req)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, int64(123), GetUserID(req))
}

func TestAuth(t *testing.T) {
	sm := scs.New()

	w := httptest.NewRecorder()
	withSessionUser(sm, 0, Auth(sm)(okHandler())).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	withSessionUser(sm, 7, Auth(sm)(okHandler())).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoadUser(t *testing.T) {
	db := testutil.TestDB(t)
	uid := testutil.CreateUser(t, db, "alice")
	sm := scs.New()

	var loaded *store.User
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loaded = GetUser(r)
	})

	withSessionUser(sm, uid, LoadUser(sm, db)(capture)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, loaded)
	assert.Equal(t, "alice", loaded.Username)

	loaded = nil
	withSessionUser(sm, 0, LoadUser(sm, db)(capture)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, loaded)
}

func TestLoadUser_UnknownUser(t *testing.T) {
	db := testutil.TestDB(t)
	sm := scs.New()

	w := httptest.NewRecorder()
	withSessionUser(sm, 9999, LoadUser(sm, db)(okHandler())).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAdmin(t *testing.T) {
	checker := fakeAdminChecker{admins: map[int64]bool{1: true}}

	tests := []struct {
		name       string
		user       *store.User
		wantStatus int
		wantEvents int
	}{
		{"guest redirected", nil, http.StatusSeeOther, 0},
		{"admin allowed", &store.User{ID: 1}, http.StatusOK, 0},
		{"member forbidden", &store.User{ID: 2}, http.StatusForbidden, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &fakeEventLogger{}
			req := httptest.NewRequest(http.MethodGet, "/admin/settings/navigation", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), *tt.user))
			}
			w := httptest.NewRecorder()

			RequireAdmin(checker, events)(okHandler()).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			require.Len(t, events.events, tt.wantEvents)
			if tt.wantEvents > 0 {
				assert.Equal(t, model.EventCategoryAuth, events.events[0].category)
				assert.Equal(t, tt.user.ID, events.events[0].userID)
			}
		})
	}
}

func TestRequireAdmin_CheckerError(t *testing.T) {
	checker := fakeAdminChecker{err: errors.New("db down")}
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req = req.WithContext(WithUser(req.Context(), store.User{ID: 1}))
	w := httptest.NewRecorder()

	RequireAdmin(checker, nil)(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestPath(t *testing.T) {
	var got string
	RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestPath(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/settings/email", nil))

	assert.Equal(t, "/admin/settings/email", got)
	assert.Empty(t, GetRequestPath(context.Background()))
}
