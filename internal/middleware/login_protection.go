// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/olegiv/oforum/internal/i18n"
)

// maxTrackedLimiters bounds the per-IP limiter map between cleanups.
const maxTrackedLimiters = 10000

// limiterCache hands out one token bucket per key.
type limiterCache[K comparable] struct {
	mu       sync.Mutex
	limiters map[K]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	l, ok := lc.limiters[key]
	if !ok {
		l = rate.NewLimiter(lc.rate, lc.burst)
		lc.limiters[key] = l
	}
	return l
}

func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

// LoginProtection combines per-IP rate limiting with per-account lockout.
type LoginProtection struct {
	ipLimiters *limiterCache[string]

	mu       sync.Mutex
	failures map[string]*loginFailures

	maxFailedAttempts int
	lockoutDuration   time.Duration
	attemptWindow     time.Duration

	now func() time.Time
}

type loginFailures struct {
	count       int
	firstFailed time.Time
	lockedUntil time.Time
	lockouts    int
}

// LoginProtectionConfig holds configuration for login protection.
type LoginProtectionConfig struct {
	// IPRateLimit is login POSTs per second per IP.
	IPRateLimit float64
	// IPBurst is the burst size for IP rate limiting.
	IPBurst int
	// MaxFailedAttempts locks the account once reached within AttemptWindow.
	MaxFailedAttempts int
	// LockoutDuration is the first lockout; each further lockout doubles it, capped at 24h.
	LockoutDuration time.Duration
	// AttemptWindow is the period in which failures are counted.
	AttemptWindow time.Duration
}

// DefaultLoginProtectionConfig returns the production defaults.
func DefaultLoginProtectionConfig() LoginProtectionConfig {
	return LoginProtectionConfig{
		IPRateLimit:       0.5,
		IPBurst:           5,
		MaxFailedAttempts: 5,
		LockoutDuration:   15 * time.Minute,
		AttemptWindow:     15 * time.Minute,
	}
}

// NewLoginProtection creates a LoginProtection, filling zero config values
// from DefaultLoginProtectionConfig.
func NewLoginProtection(cfg LoginProtectionConfig) *LoginProtection {
	def := DefaultLoginProtectionConfig()
	if cfg.IPRateLimit <= 0 {
		cfg.IPRateLimit = def.IPRateLimit
	}
	if cfg.IPBurst <= 0 {
		cfg.IPBurst = def.IPBurst
	}
	if cfg.MaxFailedAttempts <= 0 {
		cfg.MaxFailedAttempts = def.MaxFailedAttempts
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.AttemptWindow <= 0 {
		cfg.AttemptWindow = def.AttemptWindow
	}

	return &LoginProtection{
		ipLimiters:        newLimiterCache[string](cfg.IPRateLimit, cfg.IPBurst),
		failures:          make(map[string]*loginFailures),
		maxFailedAttempts: cfg.MaxFailedAttempts,
		lockoutDuration:   cfg.LockoutDuration,
		attemptWindow:     cfg.AttemptWindow,
		now:               time.Now,
	}
}

// AllowIP reports whether another login attempt from ip is allowed now.
func (lp *LoginProtection) AllowIP(ip string) bool {
	return lp.ipLimiters.get(ip).Allow()
}

// IsLocked reports whether username is locked and for how much longer.
func (lp *LoginProtection) IsLocked(username string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	f, ok := lp.failures[username]
	if !ok {
		return false, 0
	}
	if now := lp.now(); now.Before(f.lockedUntil) {
		return true, f.lockedUntil.Sub(now)
	}
	return false, 0
}

// RecordFailure counts a failed login for username. It returns true and the
// lockout duration when this failure locks the account.
func (lp *LoginProtection) RecordFailure(username string) (bool, time.Duration) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := lp.now()
	f, ok := lp.failures[username]
	if !ok {
		lp.failures[username] = &loginFailures{count: 1, firstFailed: now}
		return false, 0
	}

	if now.Sub(f.firstFailed) > lp.attemptWindow {
		f.count = 1
		f.firstFailed = now
		return false, 0
	}

	f.count++
	if f.count < lp.maxFailedAttempts {
		return false, 0
	}

	d := lp.lockoutDuration
	for i := 0; i < f.lockouts && d < 24*time.Hour; i++ {
		d *= 2
	}
	d = min(d, 24*time.Hour)

	f.lockedUntil = now.Add(d)
	f.lockouts++
	f.count = 0

	slog.Warn("account locked after failed logins",
		"username", username,
		"lockouts", f.lockouts,
		"duration", d,
	)
	return true, d
}

// RecordSuccess forgets failures for username.
func (lp *LoginProtection) RecordSuccess(username string) {
	lp.mu.Lock()
	defer lp.mu.Unlock()
	delete(lp.failures, username)
}

// RemainingAttempts returns how many failures username has left before lockout.
func (lp *LoginProtection) RemainingAttempts(username string) int {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	f, ok := lp.failures[username]
	if !ok || lp.now().Sub(f.firstFailed) > lp.attemptWindow {
		return lp.maxFailedAttempts
	}
	return max(lp.maxFailedAttempts-f.count, 0)
}

// Cleanup drops expired account entries and resets the IP limiter map when
// it grows past its bound.
func (lp *LoginProtection) Cleanup() {
	if lp.ipLimiters.clearIfExceeds(maxTrackedLimiters) {
		slog.Info("cleared login IP rate limiters due to size")
	}

	lp.mu.Lock()
	defer lp.mu.Unlock()

	now := lp.now()
	for username, f := range lp.failures {
		if now.After(f.lockedUntil) && now.Sub(f.firstFailed) > lp.attemptWindow {
			delete(lp.failures, username)
		}
	}
}

// Middleware rate limits login POSTs per client IP.
func (lp *LoginProtection) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			ip := ClientIP(r)
			if !lp.AllowIP(ip) {
				slog.Warn("login rate limit exceeded", "ip", ip)
				http.Error(w, i18n.T(GetAdminLang(r), "login.rate_limited"), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the client IP, preferring proxy headers.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
