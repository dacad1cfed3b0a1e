// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/oforum/internal/middleware"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/navigation"
	"github.com/olegiv/oforum/internal/service"
)

// maxNavigationBody caps the JSON body accepted by SaveNavigation.
const maxNavigationBody = 1 << 20

// Navigation renders the navigation editor. The catalog and the group
// directory are read concurrently; if either fails nothing is rendered.
// GET /admin/settings/navigation
func (h *SettingsHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	var (
		admin  model.NavigationAdmin
		groups []model.Group
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		admin, err = h.svc.Navigation.Admin(ctx)
		return err
	})
	g.Go(func() (err error) {
		groups, err = h.svc.Groups.NonPrivilegeGroups(ctx, service.GroupSortCreateTime, 0, -1)
		return err
	})
	if err := g.Wait(); err != nil {
		serverError(w, r, h.renderer, "failed to load navigation", "error", err)
		return
	}

	h.render(w, r, TermNavigation, navigation.Assemble(admin.Enabled, admin.Available, groups))
}

// SaveNavigation replaces the navigation bar with the JSON array in the
// request body.
// POST /admin/settings/navigation
func (h *SettingsHandler) SaveNavigation(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxNavigationBody)

	var entries []model.NavigationEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid navigation payload")
		return
	}

	if err := h.svc.Navigation.Save(r.Context(), entries); err != nil {
		if errors.Is(err, service.ErrInvalidNavigation) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to save navigation", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if h.svc.Events != nil {
		if err := h.svc.Events.LogInfo(r.Context(), model.EventCategoryNavigation, "Navigation saved",
			middleware.GetUserID(r), map[string]any{"entries": len(entries)}); err != nil {
			slog.Error("failed to log navigation event", "error", err)
		}
	}

	writeJSONSuccess(w, map[string]any{"count": len(entries)})
}
