// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oforum/internal/middleware"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/service"
	"github.com/olegiv/oforum/internal/store"
)

var errBoom = errors.New("boom")

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	return req
}

func TestSettingsGet_DefaultsToGeneral(t *testing.T) {
	h, _ := newTestSettingsHandler(t)

	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>General</h1>")

	var page SettingsPage
	decodePageData(t, w.Body.String(), &page)
	assert.Equal(t, "Test Forum", page.Config.Get(model.ConfigKeySiteName))
}

func TestSettingsGet_Term(t *testing.T) {
	h, _ := newTestSettingsHandler(t)

	w := httptest.NewRecorder()
	h.Get(w, withTerm(httptest.NewRequest(http.MethodGet, "/admin/settings/post", nil), TermPost))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Post</h1>")
}

func TestSettingsGet_UnknownTerm(t *testing.T) {
	h, _ := newTestSettingsHandler(t)

	w := httptest.NewRecorder()
	h.Get(w, withTerm(httptest.NewRequest(http.MethodGet, "/admin/settings/bogus", nil), "bogus"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestSettingsGet_ConfigFailure(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.config.err = errBoom

	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "server error")
	assert.NotContains(t, w.Body.String(), dataPrefix)
}

func TestSettingsEmail(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.email.templates = []model.EmailTemplate{
		{Path: "digest"},
		{Path: "partials/footer"},
		{Path: "welcome"},
		{Path: "welcome_plaintext"},
	}

	w := httptest.NewRecorder()
	h.Email(w, httptest.NewRequest(http.MethodGet, "/admin/settings/email", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var page EmailPage
	decodePageData(t, w.Body.String(), &page)
	assert.Len(t, page.Emails, 4)
	assert.Equal(t, []string{"digest", "welcome"}, page.Sendable)
	assert.Equal(t, []string{"Gmail", "Mailgun"}, page.Services)
	assert.Equal(t, "Test Forum", ts.email.cfg.Get(model.ConfigKeySiteName))
}

func TestSettingsEmail_TemplateFailure(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.email.err = errBoom

	w := httptest.NewRecorder()
	h.Email(w, httptest.NewRequest(http.MethodGet, "/admin/settings/email", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSettingsUser(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.notifications.types = []string{"notificationType_upvote", "notificationType_new-register"}

	w := httptest.NewRecorder()
	h.User(w, httptest.NewRequest(http.MethodGet, "/admin/settings/user", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var page UserPage
	decodePageData(t, w.Body.String(), &page)
	assert.Equal(t, []NotificationSetting{
		{Name: "notificationType_upvote", Label: "[[notifications:notificationType_upvote]]"},
		{Name: "notificationType_new-register", Label: "[[notifications:notificationType_new-register]]"},
	}, page.NotificationSettings)
}

func TestSettingsUser_Failure(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.notifications.err = errBoom

	w := httptest.NewRecorder()
	h.User(w, httptest.NewRequest(http.MethodGet, "/admin/settings/user", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSettingsPost(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.groups.groups = []model.Group{{Name: "moderators", DisplayName: "Moderators"}}

	w := httptest.NewRecorder()
	h.Post(w, httptest.NewRequest(http.MethodGet, "/admin/settings/post", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.GroupSortCreateTime, ts.groups.sortKey)
	assert.Equal(t, -1, ts.groups.count)

	var page PostPage
	decodePageData(t, w.Body.String(), &page)
	require.Len(t, page.GroupsExemptFromPostQueue, 1)
	assert.Equal(t, "moderators", page.GroupsExemptFromPostQueue[0].Name)
}

func TestSettingsLanguages(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.config.cfg = model.SiteConfig{
		model.ConfigKeyDefaultLang:    "ru",
		model.ConfigKeyAutoDetectLang: "1",
	}
	ts.languages.languages = []model.Language{
		{Code: "en-GB", Name: "English (UK)", Direction: model.DirectionLTR},
		{Code: "ru", Name: "Русский", Direction: model.DirectionLTR},
	}

	w := httptest.NewRecorder()
	h.Languages(w, httptest.NewRequest(http.MethodGet, "/admin/settings/languages", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var page LanguagesPage
	decodePageData(t, w.Body.String(), &page)
	require.Len(t, page.Languages, 2)
	assert.False(t, page.Languages[0].Selected)
	assert.True(t, page.Languages[1].Selected)
	assert.Equal(t, "ru", page.Languages[1].Code)
	assert.True(t, page.AutoDetectLang)
}

func TestSettingsSounds(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.config.cfg = model.SiteConfig{model.SoundTypeNotification: "Default | b"}
	ts.sounds.packs = []model.Soundpack{
		{Name: "Default", Sounds: map[string]string{"b": "b.mp3", "a": "a.mp3"}},
	}

	w := httptest.NewRecorder()
	h.Sounds(w, httptest.NewRequest(http.MethodGet, "/admin/settings/sounds", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var page SoundsPage
	decodePageData(t, w.Body.String(), &page)
	require.Len(t, page.Settings, len(model.SoundTypes))

	notification := page.Settings[0]
	assert.Equal(t, "notification-sound", notification.Key)
	assert.Equal(t, "settings.sounds.notification", notification.Label)
	require.Len(t, notification.Packs, 1)
	assert.Equal(t, []SoundOption{
		{Name: "a", Value: "Default | a", Selected: false},
		{Name: "b", Value: "Default | b", Selected: true},
	}, notification.Packs[0].Sounds)

	assert.Equal(t, "chat-incoming-sound", page.Settings[1].Key)
	assert.Equal(t, "settings.sounds.chat_incoming", page.Settings[1].Label)
	for _, s := range page.Settings[1].Packs[0].Sounds {
		assert.False(t, s.Selected)
	}
}

func TestSettingsHomepage_UsesSessionUser(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.homepage.routes = []model.HomePageRoute{{Route: "categories", Name: "Categories"}}

	req := httptest.NewRequest(http.MethodGet, "/admin/settings/homepage", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), store.User{ID: 42, Username: "admin", CreatedAt: time.Now()}))

	w := httptest.NewRecorder()
	h.Homepage(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), ts.homepage.uid)

	var page HomepagePage
	decodePageData(t, w.Body.String(), &page)
	assert.Equal(t, ts.homepage.routes, page.Routes)
}

func TestSettingsHomepage_Guest(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.homepage.uid = -1

	w := httptest.NewRecorder()
	h.Homepage(w, httptest.NewRequest(http.MethodGet, "/admin/settings/homepage", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.GuestUID, ts.homepage.uid)
}

func TestSettingsSocial(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.social.networks = []model.SharingNetwork{
		{ID: "facebook", Name: "Facebook", Activated: true},
		{ID: "twitter", Name: "X (Twitter)"},
	}

	w := httptest.NewRecorder()
	h.Social(w, httptest.NewRequest(http.MethodGet, "/admin/settings/social", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var page SocialPage
	decodePageData(t, w.Body.String(), &page)
	assert.Equal(t, ts.social.networks, page.Posts)
}

func TestSettingsSave(t *testing.T) {
	h, ts := newTestSettingsHandler(t)

	form := url.Values{
		"title":         {"My Forum"},
		"defaultLang":   {"ru"},
		"showSiteTitle": {"0", "1"},
	}
	req := withTerm(postForm("/admin/settings/general", form), TermGeneral)

	w := httptest.NewRecorder()
	h.Save(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/settings/general", w.Header().Get("Location"))
	assert.Equal(t, map[string]string{
		"title":         "My Forum",
		"defaultLang":   "ru",
		"showSiteTitle": "1",
	}, ts.config.saved)

	require.Len(t, ts.events.events, 1)
	ev := ts.events.events[0]
	assert.Equal(t, model.EventCategorySettings, ev.Category)
	assert.Equal(t, TermGeneral, ev.Metadata["term"])
	assert.Equal(t, []string{"defaultLang", "showSiteTitle", "title"}, ev.Metadata["keys"])
}

func TestSettingsSave_ListField(t *testing.T) {
	h, ts := newTestSettingsHandler(t)

	form := url.Values{"groupsExemptFromPostQueue[]": {"", "moderators", "", "admins"}}
	req := withTerm(postForm("/admin/settings/post", form), TermPost)

	w := httptest.NewRecorder()
	h.Save(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, map[string]string{"groupsExemptFromPostQueue": "moderators,admins"}, ts.config.saved)
}

func TestFormConfigValues_EmptyList(t *testing.T) {
	values, ok := formConfigValues(url.Values{"groups[]": {""}})

	require.True(t, ok)
	assert.Equal(t, map[string]string{"groups": ""}, values)
}

func TestSettingsSave_RejectsBadKey(t *testing.T) {
	h, ts := newTestSettingsHandler(t)

	req := withTerm(postForm("/admin/settings/general", url.Values{"bad key<>": {"x"}}), TermGeneral)

	w := httptest.NewRecorder()
	h.Save(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Nil(t, ts.config.saved)
	assert.Empty(t, ts.events.events)
}

func TestSettingsSave_UnknownTerm(t *testing.T) {
	h, ts := newTestSettingsHandler(t)

	req := withTerm(postForm("/admin/settings/bogus", url.Values{"a": {"b"}}), "bogus")

	w := httptest.NewRecorder()
	h.Save(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Nil(t, ts.config.saved)
}

func TestSettingsSave_StoreFailure(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.config.setErr = errBoom

	req := withTerm(postForm("/admin/settings/email", url.Values{"email:service": {"Gmail"}}), TermEmail)

	w := httptest.NewRecorder()
	h.Save(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, ts.events.events)
}

func TestSettingsSaveSocial_IgnoresUnknownNetworks(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.social.networks = []model.SharingNetwork{{ID: "facebook"}, {ID: "twitter"}}

	form := url.Values{"networks": {"twitter", "myspace"}}

	w := httptest.NewRecorder()
	h.SaveSocial(w, postForm("/admin/settings/social", form))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/settings/social", w.Header().Get("Location"))
	assert.Equal(t, []string{"twitter"}, ts.social.activated)
	assert.Equal(t, []string{"Sharing networks saved"}, ts.events.messages())
}

func TestSettingsSaveSocial_NoneSelected(t *testing.T) {
	h, ts := newTestSettingsHandler(t)
	ts.social.networks = []model.SharingNetwork{{ID: "facebook"}}
	ts.social.activated = []string{"sentinel"}

	w := httptest.NewRecorder()
	h.SaveSocial(w, postForm("/admin/settings/social", url.Values{}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, ts.social.activated)
}
