// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/oforum/internal/cache"
	"github.com/olegiv/oforum/internal/config"
	"github.com/olegiv/oforum/internal/handler"
	"github.com/olegiv/oforum/internal/hooks"
	"github.com/olegiv/oforum/internal/i18n"
	"github.com/olegiv/oforum/internal/logging"
	"github.com/olegiv/oforum/internal/middleware"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/render"
	"github.com/olegiv/oforum/internal/scheduler"
	"github.com/olegiv/oforum/internal/service"
	"github.com/olegiv/oforum/internal/session"
	"github.com/olegiv/oforum/internal/store"
	"github.com/olegiv/oforum/internal/version"
	"github.com/olegiv/oforum/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "oForum - forum administration server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OFORUM_SESSION_SECRET        Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OFORUM_DB_PATH               SQLite database path (default: ./data/oforum.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OFORUM_SERVER_PORT           Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OFORUM_ENV                   Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OFORUM_REDIS_URL             Redis URL for shared caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OFORUM_EVENT_RETENTION_DAYS  Days to keep the event log, 0 keeps it forever (default: 30)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OFORUM_DO_SEED               Seed an administrator and a sample forum (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("oforum %s\n", version.Get())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	slog.Info("i18n system initialized", "languages", i18n.SupportedLanguages)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if v, err := store.SchemaVersion(db); err == nil {
		slog.Info("database ready", "schema_version", v)
	}

	// WARN and above also go to the event log from here on.
	logger = slog.New(logging.NewEventLogHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}), db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		slog.Info("database seeded")
	}

	backend, backendName := cache.NewBackend(ctx, cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})
	cacheManager := cache.NewManager(backend, backendName, time.Duration(cfg.CacheTTL)*time.Second)
	defer func() {
		if err := cacheManager.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	slog.Info("cache manager initialized", "backend", cacheManager.BackendName())

	hookRegistry := hooks.NewRegistry(logger)

	eventService := service.NewEventService(db)
	groupService := service.NewGroupService(db)
	configService := service.NewConfigService(db, cacheManager)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	siteConfig, err := configService.All(ctx)
	if err != nil {
		return fmt.Errorf("loading site config: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		SiteName:       siteConfig.Get(model.ConfigKeySiteName),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	sched := scheduler.New(logger)
	if err := scheduler.RegisterDefaults(sched, eventService, cfg.EventRetentionDays, loginProtection); err != nil {
		return fmt.Errorf("registering scheduled jobs: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	settingsHandler := handler.NewSettingsHandler(renderer, handler.SettingsServices{
		Groups:        groupService,
		Navigation:    service.NewNavigationService(db, cacheManager, hookRegistry),
		Email:         service.NewEmailService(templatesFS),
		Notifications: service.NewNotificationService(hookRegistry),
		Languages:     service.NewLanguageService(db),
		Sounds:        service.NewSoundService(db),
		Homepage:      service.NewHomepageService(db, groupService, hookRegistry),
		Social:        service.NewSocialService(db, cacheManager, hookRegistry),
		Config:        configService,
		Events:        eventService,
	})
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, eventService, loginProtection)
	healthHandler := handler.NewHealthHandler(db, cacheManager)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(chimw.StripSlashes)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.RequestPath)

	// Health checks skip sessions so probes do not create rows.
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealthLive, healthHandler.Liveness)
	r.Get(handler.RouteHealthReady, healthHandler.Readiness)

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/dist/*", http.StripPrefix("/static/dist/", http.FileServer(http.FS(staticFS))))

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr())))
		r.Use(middleware.AdminLanguage(sessionManager))
		r.Use(middleware.LoadUser(sessionManager, db))

		r.Get(handler.RouteRoot, func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, handler.RouteAdmin+handler.RouteSettings, http.StatusSeeOther)
		})
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Post(handler.RouteLogout, authHandler.Logout)

		r.Route(handler.RouteAdmin, func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))
			r.Use(middleware.RequireAdmin(groupService, eventService))

			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				http.Redirect(w, req, handler.RouteAdmin+handler.RouteSettings, http.StatusSeeOther)
			})

			r.Get(handler.RouteSettings, settingsHandler.Get)
			r.Get(handler.RouteSettings+"/"+handler.TermEmail, settingsHandler.Email)
			r.Get(handler.RouteSettings+"/"+handler.TermUser, settingsHandler.User)
			r.Get(handler.RouteSettings+"/"+handler.TermPost, settingsHandler.Post)
			r.Get(handler.RouteSettings+"/"+handler.TermLanguages, settingsHandler.Languages)
			r.Get(handler.RouteSettings+"/"+handler.TermSounds, settingsHandler.Sounds)
			r.Get(handler.RouteSettings+"/"+handler.TermNavigation, settingsHandler.Navigation)
			r.Get(handler.RouteSettings+"/"+handler.TermHomepage, settingsHandler.Homepage)
			r.Get(handler.RouteSettings+"/"+handler.TermSocial, settingsHandler.Social)
			r.Get(handler.RouteSettingsTerm, settingsHandler.Get)

			r.Post(handler.RouteSettings+"/"+handler.TermNavigation, settingsHandler.SaveNavigation)
			r.Post(handler.RouteSettings+"/"+handler.TermSocial, settingsHandler.SaveSocial)
			r.Post(handler.RouteSettingsTerm, settingsHandler.Save)
		})

		r.NotFound(handler.NotFound(renderer))
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Get().Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
