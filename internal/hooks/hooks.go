// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hooks is the plugin filter registry. A filter receives a value,
// may replace it, and hands the result to the next filter in priority order.
package hooks

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Filter hook names used by the admin settings pages.
const (
	NavigationAvailable = "navigation.available"
	NotificationTypes   = "notifications.types"
	HomepageRoutes      = "homepage.routes"
	SocialPosts         = "social.posts"
)

// Func transforms data. Returning an error stops the chain.
type Func func(ctx context.Context, data any) (any, error)

// Handler is a registered filter.
type Handler struct {
	Name     string // for logs
	Plugin   string // owning plugin
	Priority int    // lower runs first
	Fn       Func
}

// Registry holds filters by hook name. It is safe for concurrent use.
type Registry struct {
	mu             sync.RWMutex
	hooks          map[string][]Handler
	logger         *slog.Logger
	isPluginActive func(plugin string) bool
}

// NewRegistry creates an empty registry. Every plugin counts as active until
// SetIsPluginActive says otherwise.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		hooks:          make(map[string][]Handler),
		logger:         logger,
		isPluginActive: func(string) bool { return true },
	}
}

// SetIsPluginActive installs the callback used to skip handlers of
// deactivated plugins.
func (r *Registry) SetIsPluginActive(fn func(plugin string) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.isPluginActive = fn
}

// Register adds h under hook. Handlers with equal priority keep
// registration order.
func (r *Registry) Register(hook string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handlers := append(r.hooks[hook], h)
	slices.SortStableFunc(handlers, func(a, b Handler) int {
		return a.Priority - b.Priority
	})
	r.hooks[hook] = handlers

	r.logger.Debug("hook registered",
		"hook", hook,
		"handler", h.Name,
		"plugin", h.Plugin,
		"priority", h.Priority,
	)
}

// RegisterFunc registers fn at priority 0.
func (r *Registry) RegisterFunc(hook, name, plugin string, fn Func) {
	r.Register(hook, Handler{Name: name, Plugin: plugin, Fn: fn})
}

// Call runs every active handler for hook, threading data through them.
func (r *Registry) Call(ctx context.Context, hook string, data any) (any, error) {
	r.mu.RLock()
	handlers := slices.Clone(r.hooks[hook])
	isActive := r.isPluginActive
	r.mu.RUnlock()

	current := data
	for _, h := range handlers {
		if !isActive(h.Plugin) {
			continue
		}
		result, err := h.Fn(ctx, current)
		if err != nil {
			r.logger.Error("hook handler error",
				"hook", hook,
				"handler", h.Name,
				"plugin", h.Plugin,
				"error", err,
			)
			return nil, fmt.Errorf("hook %s handler %s: %w", hook, h.Name, err)
		}
		current = result
	}
	return current, nil
}

// HasHandlers reports whether anything is registered for hook.
func (r *Registry) HasHandlers(hook string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks[hook]) > 0
}

// Unregister removes every handler plugin registered, across all hooks.
func (r *Registry) Unregister(plugin string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hook, handlers := range r.hooks {
		r.hooks[hook] = slices.DeleteFunc(handlers, func(h Handler) bool {
			return h.Plugin == plugin
		})
	}
	r.logger.Debug("hooks unregistered", "plugin", plugin)
}

// Filter runs hook over data and checks that the chain still returns a T.
// A nil registry returns data unchanged.
func Filter[T any](ctx context.Context, r *Registry, hook string, data T) (T, error) {
	if r == nil {
		return data, nil
	}
	out, err := r.Call(ctx, hook, data)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := out.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("hook %s returned %T, want %T", hook, out, data)
	}
	return typed, nil
}
