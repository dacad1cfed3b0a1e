// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"regexp"
	"time"
)

// Built-in group names.
const (
	GroupAdministrators   = "administrators"
	GroupRegisteredUsers  = "registered-users"
	GroupGlobalModerators = "Global Moderators"
	GroupGuests           = "guests"
	GroupSpiders          = "spiders"
)

// EphemeralGroups are system groups that have no stored membership.
var EphemeralGroups = []string{GroupGuests, GroupSpiders}

// privilegeGroupPattern matches per-category privilege groups, e.g. "cid:3:privileges:find".
var privilegeGroupPattern = regexp.MustCompile(`^cid:\d+:privileges:[\w\-:]+$`)

// IsPrivilegeGroup reports whether name is a per-category privilege group.
func IsPrivilegeGroup(name string) bool {
	return privilegeGroupPattern.MatchString(name)
}

// IsEphemeralGroup reports whether name is one of the ephemeral system groups.
func IsEphemeralGroup(name string) bool {
	for _, g := range EphemeralGroups {
		if g == name {
			return true
		}
	}
	return false
}

// Group is an access-control group.
type Group struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Description string    `json:"description"`
	System      bool      `json:"system"`
	Hidden      bool      `json:"hidden"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// EphemeralGroup returns the synthesized record for an ephemeral group.
func EphemeralGroup(name string) Group {
	return Group{
		Name:        name,
		DisplayName: name,
		Description: "",
		System:      true,
		Hidden:      false,
	}
}
