// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package navigation builds the view model for the navigation settings page
// by merging the enabled/available navigation catalog with the group directory.
package navigation

import (
	"slices"

	"github.com/olegiv/oforum/internal/model"
)

// GroupSummary is the name/display-name pair shown for a group.
type GroupSummary struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// GroupSelection marks whether an entry is visible to a group.
type GroupSelection struct {
	DisplayName string `json:"displayName"`
	Selected    bool   `json:"selected"`
}

// EnabledEntry is an enabled navigation entry annotated for editing.
type EnabledEntry struct {
	model.NavigationEntry

	// Index is the 0-based position in the enabled list.
	Index int `json:"index"`
	// Selected marks the entry opened by default in the editor. It is a
	// presentation default only and is never persisted.
	Selected bool `json:"selected"`
	// Groups has one element per ViewModel.Groups element, in the same order.
	Groups []GroupSelection `json:"groups"`
}

// AvailableEntry is a navigation template offered for placement, with every
// group as a candidate.
type AvailableEntry struct {
	model.NavigationTemplate

	Groups []GroupSummary `json:"groups"`
}

// ViewModel is the read projection rendered by admin/settings/navigation.
type ViewModel struct {
	Enabled    []EnabledEntry   `json:"enabled"`
	Available  []AvailableEntry `json:"available"`
	Groups     []GroupSummary   `json:"groups"`
	Navigation []EnabledEntry   `json:"navigation"`
}

// Assemble merges enabled entries, available templates and groups into a
// ViewModel. Inputs are not modified. Groups are ordered system-first (stable)
// and that single ordering is used for every entry and template.
func Assemble(enabled []model.NavigationEntry, available []model.NavigationTemplate, groups []model.Group) ViewModel {
	summaries := summarizeGroups(groups)

	vm := ViewModel{
		Enabled:   make([]EnabledEntry, 0, len(enabled)),
		Available: make([]AvailableEntry, 0, len(available)),
		Groups:    summaries,
	}

	for i, entry := range enabled {
		permitted := make(map[string]struct{}, len(entry.PermittedGroups))
		for _, name := range entry.PermittedGroups {
			permitted[name] = struct{}{}
		}

		selections := make([]GroupSelection, len(summaries))
		for j, g := range summaries {
			_, ok := permitted[g.Name]
			selections[j] = GroupSelection{DisplayName: g.DisplayName, Selected: ok}
		}

		entry.PermittedGroups = slices.Clone(entry.PermittedGroups)
		vm.Enabled = append(vm.Enabled, EnabledEntry{
			NavigationEntry: entry,
			Index:           i,
			Selected:        i == 0,
			Groups:          selections,
		})
	}

	for _, tmpl := range available {
		vm.Available = append(vm.Available, AvailableEntry{
			NavigationTemplate: tmpl,
			Groups:             slices.Clone(summaries),
		})
	}

	vm.Navigation = slices.Clone(vm.Enabled)

	return vm
}

// summarizeGroups sorts groups system-first, keeping input order within each
// rank, and drops duplicate names. A duplicate keeps the position of its first
// occurrence and takes the data of its last occurrence.
func summarizeGroups(groups []model.Group) []GroupSummary {
	sorted := make([]model.Group, 0, len(groups))
	pos := make(map[string]int, len(groups))
	for _, g := range groups {
		if i, ok := pos[g.Name]; ok {
			sorted[i] = g
			continue
		}
		pos[g.Name] = len(sorted)
		sorted = append(sorted, g)
	}

	slices.SortStableFunc(sorted, func(a, b model.Group) int {
		return systemRank(a) - systemRank(b)
	})

	summaries := make([]GroupSummary, len(sorted))
	for i, g := range sorted {
		summaries[i] = GroupSummary{Name: g.Name, DisplayName: g.DisplayName}
	}
	return summaries
}

func systemRank(g model.Group) int {
	if g.System {
		return 0
	}
	return 1
}
