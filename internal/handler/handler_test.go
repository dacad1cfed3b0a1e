// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oforum/internal/i18n"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/render"
)

const (
	dataPrefix = "<script>var data = "
	dataSuffix = ";</script>"
)

// testTemplates is a minimal template tree. Every page dumps its Data as
// JSON so tests can decode exactly what the handler passed in.
func testTemplates() fstest.MapFS {
	page := func(body string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(`{{define "content"}}` + body + `{{end}}`)}
	}
	dump := page(`<h1>{{.Title}}</h1>` + dataPrefix + `{{json .Data}}` + dataSuffix)

	fsys := fstest.MapFS{
		"layouts/base.html": {Data: []byte(
			`{{define "base"}}<title>{{.Title}}</title>` +
				`{{if .Flash}}<p class="{{.FlashType}}">{{.Flash}}</p>{{end}}` +
				`{{template "content" .}}{{end}}`)},
		"auth/login.html": page(`<form method="post">{{.Title}}</form>`),
		"errors/404.html": page(`<h1>not found</h1>`),
		"errors/500.html": page(`<h1>server error</h1>`),
	}
	for _, term := range []string{
		TermGeneral, TermEmail, TermUser, TermPost, TermLanguages,
		TermSounds, TermNavigation, TermHomepage, TermSocial,
	} {
		fsys["admin/settings/"+term+".html"] = dump
	}
	return fsys
}

func newTestRenderer(t *testing.T, sm *scs.SessionManager) *render.Renderer {
	t.Helper()
	require.NoError(t, i18n.Init(nil))
	r, err := render.New(render.Config{TemplatesFS: testTemplates(), SessionManager: sm})
	require.NoError(t, err)
	return r
}

// decodePageData extracts the JSON dumped by the test templates into v.
func decodePageData(t *testing.T, body string, v any) {
	t.Helper()
	start := strings.Index(body, dataPrefix)
	require.GreaterOrEqual(t, start, 0, "no page data in %q", body)
	rest := body[start+len(dataPrefix):]
	end := strings.Index(rest, dataSuffix)
	require.GreaterOrEqual(t, end, 0, "unterminated page data in %q", body)
	require.NoError(t, json.Unmarshal([]byte(rest[:end]), v))
}

// withTerm sets the chi {term} URL parameter on r.
func withTerm(r *http.Request, term string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("term", term)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type fakeConfig struct {
	cfg    model.SiteConfig
	err    error
	saved  map[string]string
	setErr error
}

func (f *fakeConfig) All(context.Context) (model.SiteConfig, error) {
	return f.cfg, f.err
}

func (f *fakeConfig) SetMany(_ context.Context, values map[string]string) error {
	f.saved = values
	return f.setErr
}

type fakeGroups struct {
	groups  []model.Group
	err     error
	sortKey string
	count   int
}

func (f *fakeGroups) NonPrivilegeGroups(_ context.Context, sortKey string, _ int, count int) ([]model.Group, error) {
	f.sortKey = sortKey
	f.count = count
	return f.groups, f.err
}

type fakeNavigation struct {
	admin   model.NavigationAdmin
	err     error
	saved   []model.NavigationEntry
	saveErr error
}

func (f *fakeNavigation) Admin(context.Context) (model.NavigationAdmin, error) {
	return f.admin, f.err
}

func (f *fakeNavigation) Save(_ context.Context, entries []model.NavigationEntry) error {
	f.saved = entries
	return f.saveErr
}

type fakeEmail struct {
	templates []model.EmailTemplate
	err       error
	cfg       model.SiteConfig
}

func (f *fakeEmail) Templates(cfg model.SiteConfig) ([]model.EmailTemplate, error) {
	f.cfg = cfg
	return f.templates, f.err
}

func (f *fakeEmail) Services() []string { return []string{"Gmail", "Mailgun"} }

type fakeNotifications struct {
	types []string
	err   error
}

func (f *fakeNotifications) AllTypes(context.Context) ([]string, error) { return f.types, f.err }

type fakeLanguages struct {
	languages []model.Language
	err       error
}

func (f *fakeLanguages) List(context.Context) ([]model.Language, error) { return f.languages, f.err }

type fakeSounds struct {
	packs []model.Soundpack
	err   error
}

func (f *fakeSounds) Soundpacks(context.Context) ([]model.Soundpack, error) { return f.packs, f.err }

type fakeHomepage struct {
	routes []model.HomePageRoute
	err    error
	uid    int64
}

func (f *fakeHomepage) Routes(_ context.Context, uid int64) ([]model.HomePageRoute, error) {
	f.uid = uid
	return f.routes, f.err
}

type fakeSocial struct {
	networks  []model.SharingNetwork
	err       error
	activated []string
	setErr    error
}

func (f *fakeSocial) PostSharing(context.Context) ([]model.SharingNetwork, error) {
	return f.networks, f.err
}

func (f *fakeSocial) SetActivated(_ context.Context, ids []string) error {
	f.activated = ids
	return f.setErr
}

type recordedEvent struct {
	Level    string
	Category string
	Message  string
	UserID   int64
	Metadata map[string]any
}

type fakeEvents struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeEvents) record(level, category, message string, userID int64, metadata map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{level, category, message, userID, metadata})
	return nil
}

func (f *fakeEvents) LogInfo(_ context.Context, category, message string, userID int64, metadata map[string]any) error {
	return f.record(model.EventLevelInfo, category, message, userID, metadata)
}

func (f *fakeEvents) LogWarning(_ context.Context, category, message string, userID int64, metadata map[string]any) error {
	return f.record(model.EventLevelWarning, category, message, userID, metadata)
}

func (f *fakeEvents) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Message
	}
	return out
}

// testServices bundles the fakes behind a SettingsHandler.
type testServices struct {
	config        *fakeConfig
	groups        *fakeGroups
	navigation    *fakeNavigation
	email         *fakeEmail
	notifications *fakeNotifications
	languages     *fakeLanguages
	sounds        *fakeSounds
	homepage      *fakeHomepage
	social        *fakeSocial
	events        *fakeEvents
}

func newTestSettingsHandler(t *testing.T) (*SettingsHandler, *testServices) {
	t.Helper()

	ts := &testServices{
		config:        &fakeConfig{cfg: model.SiteConfig{model.ConfigKeySiteName: "Test Forum"}},
		groups:        &fakeGroups{},
		navigation:    &fakeNavigation{},
		email:         &fakeEmail{},
		notifications: &fakeNotifications{},
		languages:     &fakeLanguages{},
		sounds:        &fakeSounds{},
		homepage:      &fakeHomepage{},
		social:        &fakeSocial{},
		events:        &fakeEvents{},
	}

	h := NewSettingsHandler(newTestRenderer(t, nil), SettingsServices{
		Groups:        ts.groups,
		Navigation:    ts.navigation,
		Email:         ts.email,
		Notifications: ts.notifications,
		Languages:     ts.languages,
		Sounds:        ts.sounds,
		Homepage:      ts.homepage,
		Social:        ts.social,
		Config:        ts.config,
		Events:        ts.events,
	})
	return h, ts
}
