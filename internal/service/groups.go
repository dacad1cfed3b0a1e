// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/store"
)

// Group sort keys accepted by NonPrivilegeGroups.
const (
	GroupSortCreateTime  = "createtime"
	GroupSortName        = "name"
	GroupSortMemberCount = "membercount"
)

// GroupService reads the group directory.
type GroupService struct {
	queries *store.Queries
}

// NewGroupService creates a new GroupService.
func NewGroupService(db *sql.DB) *GroupService {
	return &GroupService{queries: store.New(db)}
}

// NonPrivilegeGroups returns stored groups ordered by sortKey, followed by
// the ephemeral guests and spiders groups, with per-category privilege
// groups removed. start and count page the stored rows; count < 0 reads to
// the end.
func (s *GroupService) NonPrivilegeGroups(ctx context.Context, sortKey string, start, count int) ([]model.Group, error) {
	var list func(context.Context, store.ListGroupsParams) ([]store.Group, error)
	switch sortKey {
	case GroupSortCreateTime:
		list = s.queries.ListGroupsByCreateTime
	case GroupSortName:
		list = s.queries.ListGroupsByName
	case GroupSortMemberCount:
		list = s.queries.ListGroupsByMemberCount
	default:
		return nil, fmt.Errorf("unknown group sort key %q", sortKey)
	}

	if start < 0 {
		start = 0
	}
	limit := int64(count)
	if count < 0 {
		limit = -1
	}

	rows, err := list(ctx, store.ListGroupsParams{Limit: limit, Offset: int64(start)})
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	groups := make([]model.Group, 0, len(rows)+len(model.EphemeralGroups))
	for _, r := range rows {
		groups = append(groups, groupFromStore(r))
	}
	for _, name := range model.EphemeralGroups {
		groups = append(groups, model.EphemeralGroup(name))
	}

	return slices.DeleteFunc(groups, func(g model.Group) bool {
		return model.IsPrivilegeGroup(g.Name)
	}), nil
}

// IsMember reports whether uid belongs to group. Ephemeral groups are
// resolved without a lookup: guests holds only uid 0.
func (s *GroupService) IsMember(ctx context.Context, uid int64, group string) (bool, error) {
	switch group {
	case model.GroupGuests:
		return uid == model.GuestUID, nil
	case model.GroupSpiders:
		return false, nil
	}
	if uid == model.GuestUID {
		return false, nil
	}
	ok, err := s.queries.IsGroupMember(ctx, group, uid)
	if err != nil {
		return false, fmt.Errorf("checking membership of %s: %w", group, err)
	}
	return ok, nil
}

// IsAdministrator reports whether uid belongs to the administrators group.
func (s *GroupService) IsAdministrator(ctx context.Context, uid int64) (bool, error) {
	return s.IsMember(ctx, uid, model.GroupAdministrators)
}

// MemberGroups returns the groups whose privileges apply to uid. Guests get
// the guests group; signed-in users get their memberships plus
// registered-users.
func (s *GroupService) MemberGroups(ctx context.Context, uid int64) ([]string, error) {
	if uid == model.GuestUID {
		return []string{model.GroupGuests}, nil
	}
	names, err := s.queries.ListUserGroupNames(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("listing groups of user %d: %w", uid, err)
	}
	if !slices.Contains(names, model.GroupRegisteredUsers) {
		names = append(names, model.GroupRegisteredUsers)
	}
	return names, nil
}

func groupFromStore(g store.Group) model.Group {
	return model.Group{
		Name:        g.Name,
		DisplayName: g.DisplayName,
		Description: g.Description,
		System:      g.System,
		Hidden:      g.Hidden,
		MemberCount: g.MemberCount,
		CreatedAt:   g.CreatedAt,
	}
}
