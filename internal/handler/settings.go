// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/olegiv/oforum/internal/i18n"
	"github.com/olegiv/oforum/internal/middleware"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/render"
	"github.com/olegiv/oforum/internal/service"
)

// GroupDirectory lists groups that are not per-category privilege groups.
type GroupDirectory interface {
	NonPrivilegeGroups(ctx context.Context, sortKey string, start, count int) ([]model.Group, error)
}

// NavigationCatalog reads and replaces the navigation bar.
type NavigationCatalog interface {
	Admin(ctx context.Context) (model.NavigationAdmin, error)
	Save(ctx context.Context, entries []model.NavigationEntry) error
}

// EmailCatalog lists email templates and SMTP service presets.
type EmailCatalog interface {
	Templates(cfg model.SiteConfig) ([]model.EmailTemplate, error)
	Services() []string
}

// NotificationCatalog lists notification types.
type NotificationCatalog interface {
	AllTypes(ctx context.Context) ([]string, error)
}

// LanguageLister lists installed languages.
type LanguageLister interface {
	List(ctx context.Context) ([]model.Language, error)
}

// SoundpackLister lists installed sound packs.
type SoundpackLister interface {
	Soundpacks(ctx context.Context) ([]model.Soundpack, error)
}

// HomepageRouter lists the routes a user may pick as the home page.
type HomepageRouter interface {
	Routes(ctx context.Context, uid int64) ([]model.HomePageRoute, error)
}

// SharingNetworks lists and activates post-sharing networks.
type SharingNetworks interface {
	PostSharing(ctx context.Context) ([]model.SharingNetwork, error)
	SetActivated(ctx context.Context, ids []string) error
}

// ConfigStore reads and writes site configuration.
type ConfigStore interface {
	All(ctx context.Context) (model.SiteConfig, error)
	SetMany(ctx context.Context, values map[string]string) error
}

// EventRecorder writes audit events.
type EventRecorder interface {
	LogInfo(ctx context.Context, category, message string, userID int64, metadata map[string]any) error
	LogWarning(ctx context.Context, category, message string, userID int64, metadata map[string]any) error
}

// SettingsServices are the collaborators of SettingsHandler. Events may be nil.
type SettingsServices struct {
	Groups        GroupDirectory
	Navigation    NavigationCatalog
	Email         EmailCatalog
	Notifications NotificationCatalog
	Languages     LanguageLister
	Sounds        SoundpackLister
	Homepage      HomepageRouter
	Social        SharingNetworks
	Config        ConfigStore
	Events        EventRecorder
}

// SettingsHandler renders and saves the admin settings pages.
type SettingsHandler struct {
	renderer *render.Renderer
	svc      SettingsServices
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(renderer *render.Renderer, svc SettingsServices) *SettingsHandler {
	return &SettingsHandler{renderer: renderer, svc: svc}
}

// SettingsPage is the data of a settings page without extra collaborators.
type SettingsPage struct {
	Config model.SiteConfig
}

// EmailPage is the data of admin/settings/email.
type EmailPage struct {
	SettingsPage
	Emails   []model.EmailTemplate
	Sendable []string
	Services []string
}

// NotificationSetting is one notification type with its translatable label.
type NotificationSetting struct {
	Name  string
	Label string
}

// UserPage is the data of admin/settings/user.
type UserPage struct {
	SettingsPage
	NotificationSettings []NotificationSetting
}

// PostPage is the data of admin/settings/post.
type PostPage struct {
	SettingsPage
	GroupsExemptFromPostQueue []model.Group
}

// LanguageOption is a language marked when it is the site default.
type LanguageOption struct {
	model.Language
	Selected bool
}

// LanguagesPage is the data of admin/settings/languages.
type LanguagesPage struct {
	SettingsPage
	Languages      []LanguageOption
	AutoDetectLang bool
}

// SoundOption is one selectable sound. Value is "<pack> | <sound>".
type SoundOption struct {
	Name     string
	Value    string
	Selected bool
}

// SoundpackOption groups the sounds of one pack.
type SoundpackOption struct {
	Name   string
	Sounds []SoundOption
}

// SoundSetting is the pack list for one sound type. Key is the form field
// name, e.g. "notification-sound".
type SoundSetting struct {
	Type  string
	Key   string
	Label string
	Packs []SoundpackOption
}

// SoundsPage is the data of admin/settings/sounds.
type SoundsPage struct {
	SettingsPage
	Settings []SoundSetting
}

// HomepagePage is the data of admin/settings/homepage.
type HomepagePage struct {
	SettingsPage
	Routes []model.HomePageRoute
}

// SocialPage is the data of admin/settings/social.
type SocialPage struct {
	SettingsPage
	Posts []model.SharingNetwork
}

// configKeyPattern restricts the config keys a settings form may write.
var configKeyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9:_.\-]{0,127}$`)

// settingsTerm returns the {term} URL parameter, defaulting to general.
func settingsTerm(r *http.Request) string {
	if term := chi.URLParam(r, "term"); term != "" {
		return term
	}
	return TermGeneral
}

// Get renders admin/settings/{term} with the site configuration.
// GET /admin/settings and /admin/settings/{term}
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	term := settingsTerm(r)
	if !h.renderer.HasTemplate(settingsTemplatePrefix + term) {
		notFound(w, r, h.renderer)
		return
	}

	cfg, err := h.svc.Config.All(r.Context())
	if err != nil {
		serverError(w, r, h.renderer, "failed to load config", "term", term, "error", err)
		return
	}

	h.render(w, r, term, SettingsPage{Config: cfg})
}

// Email renders the email settings page.
// GET /admin/settings/email
func (h *SettingsHandler) Email(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.Config.All(r.Context())
	if err != nil {
		serverError(w, r, h.renderer, "failed to load config", "term", TermEmail, "error", err)
		return
	}

	emails, err := h.svc.Email.Templates(cfg)
	if err != nil {
		serverError(w, r, h.renderer, "failed to list email templates", "error", err)
		return
	}

	h.render(w, r, TermEmail, EmailPage{
		SettingsPage: SettingsPage{Config: cfg},
		Emails:       emails,
		Sendable:     service.Sendable(emails),
		Services:     h.svc.Email.Services(),
	})
}

// User renders the user settings page with one entry per notification type.
// GET /admin/settings/user
func (h *SettingsHandler) User(w http.ResponseWriter, r *http.Request) {
	var (
		cfg   model.SiteConfig
		types []string
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		cfg, err = h.svc.Config.All(ctx)
		return err
	})
	g.Go(func() (err error) {
		types, err = h.svc.Notifications.AllTypes(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		serverError(w, r, h.renderer, "failed to load user settings", "error", err)
		return
	}

	settings := make([]NotificationSetting, len(types))
	for i, t := range types {
		settings[i] = NotificationSetting{Name: t, Label: "[[notifications:" + t + "]]"}
	}

	h.render(w, r, TermUser, UserPage{
		SettingsPage:         SettingsPage{Config: cfg},
		NotificationSettings: settings,
	})
}

// Post renders the post settings page with the groups that may skip the
// post queue.
// GET /admin/settings/post
func (h *SettingsHandler) Post(w http.ResponseWriter, r *http.Request) {
	var (
		cfg    model.SiteConfig
		groups []model.Group
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		cfg, err = h.svc.Config.All(ctx)
		return err
	})
	g.Go(func() (err error) {
		groups, err = h.svc.Groups.NonPrivilegeGroups(ctx, service.GroupSortCreateTime, 0, -1)
		return err
	})
	if err := g.Wait(); err != nil {
		serverError(w, r, h.renderer, "failed to load post settings", "error", err)
		return
	}

	h.render(w, r, TermPost, PostPage{
		SettingsPage:              SettingsPage{Config: cfg},
		GroupsExemptFromPostQueue: groups,
	})
}

// Languages renders the language settings page.
// GET /admin/settings/languages
func (h *SettingsHandler) Languages(w http.ResponseWriter, r *http.Request) {
	var (
		cfg       model.SiteConfig
		languages []model.Language
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		cfg, err = h.svc.Config.All(ctx)
		return err
	})
	g.Go(func() (err error) {
		languages, err = h.svc.Languages.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		serverError(w, r, h.renderer, "failed to load language settings", "error", err)
		return
	}

	defaultLang := cfg.Get(model.ConfigKeyDefaultLang)
	options := make([]LanguageOption, len(languages))
	for i, l := range languages {
		options[i] = LanguageOption{Language: l, Selected: l.Code == defaultLang}
	}

	h.render(w, r, TermLanguages, LanguagesPage{
		SettingsPage:   SettingsPage{Config: cfg},
		Languages:      options,
		AutoDetectLang: cfg.Bool(model.ConfigKeyAutoDetectLang),
	})
}

// Sounds renders the sound settings page.
// GET /admin/settings/sounds
func (h *SettingsHandler) Sounds(w http.ResponseWriter, r *http.Request) {
	var (
		cfg   model.SiteConfig
		packs []model.Soundpack
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		cfg, err = h.svc.Config.All(ctx)
		return err
	})
	g.Go(func() (err error) {
		packs, err = h.svc.Sounds.Soundpacks(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		serverError(w, r, h.renderer, "failed to load sound settings", "error", err)
		return
	}

	h.render(w, r, TermSounds, SoundsPage{
		SettingsPage: SettingsPage{Config: cfg},
		Settings:     soundSettings(cfg, packs),
	})
}

// soundSettings builds one SoundSetting per sound type. Sounds inside a
// pack are sorted by name.
func soundSettings(cfg model.SiteConfig, packs []model.Soundpack) []SoundSetting {
	settings := make([]SoundSetting, 0, len(model.SoundTypes))
	for _, soundType := range model.SoundTypes {
		current := cfg.Get(soundType)

		options := make([]SoundpackOption, 0, len(packs))
		for _, pack := range packs {
			names := slices.Sorted(maps.Keys(pack.Sounds))
			sounds := make([]SoundOption, len(names))
			for i, name := range names {
				value := pack.Name + " | " + name
				sounds[i] = SoundOption{Name: name, Value: value, Selected: value == current}
			}
			options = append(options, SoundpackOption{Name: pack.Name, Sounds: sounds})
		}

		settings = append(settings, SoundSetting{
			Type:  soundType,
			Key:   soundType + "-sound",
			Label: "settings.sounds." + strings.ReplaceAll(soundType, "-", "_"),
			Packs: options,
		})
	}
	return settings
}

// Homepage renders the home page settings with the routes the current user
// can choose from.
// GET /admin/settings/homepage
func (h *SettingsHandler) Homepage(w http.ResponseWriter, r *http.Request) {
	var (
		cfg    model.SiteConfig
		routes []model.HomePageRoute
	)

	uid := middleware.GetUserID(r)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		cfg, err = h.svc.Config.All(ctx)
		return err
	})
	g.Go(func() (err error) {
		routes, err = h.svc.Homepage.Routes(ctx, uid)
		return err
	})
	if err := g.Wait(); err != nil {
		serverError(w, r, h.renderer, "failed to load homepage settings", "uid", uid, "error", err)
		return
	}

	h.render(w, r, TermHomepage, HomepagePage{
		SettingsPage: SettingsPage{Config: cfg},
		Routes:       routes,
	})
}

// Social renders the post-sharing settings page.
// GET /admin/settings/social
func (h *SettingsHandler) Social(w http.ResponseWriter, r *http.Request) {
	var (
		cfg   model.SiteConfig
		posts []model.SharingNetwork
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		cfg, err = h.svc.Config.All(ctx)
		return err
	})
	g.Go(func() (err error) {
		posts, err = h.svc.Social.PostSharing(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		serverError(w, r, h.renderer, "failed to load social settings", "error", err)
		return
	}

	h.render(w, r, TermSocial, SocialPage{
		SettingsPage: SettingsPage{Config: cfg},
		Posts:        posts,
	})
}

// Save stores the submitted form fields as config values. When a field is
// repeated the last value wins, so a hidden "0" followed by a checkbox "1"
// works for booleans. Multi-value fields use the "key[]" form.
// POST /admin/settings/{term}
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	term := settingsTerm(r)
	if !h.renderer.HasTemplate(settingsTemplatePrefix + term) {
		notFound(w, r, h.renderer)
		return
	}

	lang := middleware.GetAdminLang(r)
	redirectURL := settingsPath(term)

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectURL, i18n.T(lang, "error.bad_request"))
		return
	}

	values, ok := formConfigValues(r.PostForm)
	if !ok {
		slog.Warn("rejected settings form", "term", term)
		flashError(w, r, h.renderer, redirectURL, i18n.T(lang, "error.bad_request"))
		return
	}

	if err := h.svc.Config.SetMany(r.Context(), values); err != nil {
		serverError(w, r, h.renderer, "failed to save settings", "term", term, "error", err)
		return
	}

	h.logEvent(r, "Settings saved", map[string]any{
		"term": term,
		"keys": slices.Sorted(maps.Keys(values)),
	})

	flashSuccess(w, r, h.renderer, redirectURL, i18n.T(lang, "msg.saved"))
}

// formConfigValues maps form fields onto config values. A field named
// "key[]" stores its non-empty values joined with commas under "key".
func formConfigValues(form url.Values) (map[string]string, bool) {
	values := make(map[string]string, len(form))
	for key, v := range form {
		list, isList := strings.CutSuffix(key, "[]")
		if isList {
			key = list
		}
		if !configKeyPattern.MatchString(key) {
			return nil, false
		}

		if isList {
			values[key] = strings.Join(slices.DeleteFunc(slices.Clone(v), func(s string) bool { return s == "" }), ",")
			continue
		}
		values[key] = v[len(v)-1]
	}
	return values, true
}

// SaveSocial replaces the activated sharing networks. Unknown ids are
// ignored.
// POST /admin/settings/social
func (h *SettingsHandler) SaveSocial(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetAdminLang(r)
	redirectURL := settingsPath(TermSocial)

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, redirectURL, i18n.T(lang, "error.bad_request"))
		return
	}

	networks, err := h.svc.Social.PostSharing(r.Context())
	if err != nil {
		serverError(w, r, h.renderer, "failed to load sharing networks", "error", err)
		return
	}

	requested := r.PostForm["networks"]
	var ids []string
	for _, n := range networks {
		if slices.Contains(requested, n.ID) {
			ids = append(ids, n.ID)
		}
	}

	if err := h.svc.Social.SetActivated(r.Context(), ids); err != nil {
		serverError(w, r, h.renderer, "failed to save sharing networks", "error", err)
		return
	}

	h.logEvent(r, "Sharing networks saved", map[string]any{"activated": ids})

	flashSuccess(w, r, h.renderer, redirectURL, i18n.T(lang, "msg.saved"))
}

func (h *SettingsHandler) render(w http.ResponseWriter, r *http.Request, term string, data any) {
	lang := middleware.GetAdminLang(r)
	renderPage(w, r, h.renderer, settingsTemplatePrefix+term, render.TemplateData{
		Title: i18n.T(lang, "settings."+term),
		Data:  data,
	})
}

func (h *SettingsHandler) logEvent(r *http.Request, message string, metadata map[string]any) {
	if h.svc.Events == nil {
		return
	}
	if err := h.svc.Events.LogInfo(r.Context(), model.EventCategorySettings, message, middleware.GetUserID(r), metadata); err != nil {
		slog.Error("failed to log settings event", "error", err)
	}
}
