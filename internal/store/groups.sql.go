// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const groupSelect = `SELECT g.name, g.display_name, g.description, g.system, g.hidden, g.created_at,
    (SELECT COUNT(*) FROM group_members m WHERE m.group_name = g.name) AS member_count
FROM user_groups g`

func scanGroups(ctx context.Context, q *Queries, query string, args ...any) ([]Group, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.Name, &g.DisplayName, &g.Description, &g.System, &g.Hidden, &g.CreatedAt, &g.MemberCount); err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListGroupsParams pages a group listing. Limit -1 returns every row.
type ListGroupsParams struct {
	Limit  int64
	Offset int64
}

// Newest first; rowid breaks ties between groups created in the same second.
const listGroupsByCreateTime = groupSelect + `
ORDER BY g.created_at DESC, g.rowid DESC
LIMIT ? OFFSET ?`

func (q *Queries) ListGroupsByCreateTime(ctx context.Context, arg ListGroupsParams) ([]Group, error) {
	return scanGroups(ctx, q, listGroupsByCreateTime, arg.Limit, arg.Offset)
}

const listGroupsByName = groupSelect + `
ORDER BY g.name ASC
LIMIT ? OFFSET ?`

func (q *Queries) ListGroupsByName(ctx context.Context, arg ListGroupsParams) ([]Group, error) {
	return scanGroups(ctx, q, listGroupsByName, arg.Limit, arg.Offset)
}

const listGroupsByMemberCount = groupSelect + `
ORDER BY member_count DESC, g.name ASC
LIMIT ? OFFSET ?`

func (q *Queries) ListGroupsByMemberCount(ctx context.Context, arg ListGroupsParams) ([]Group, error) {
	return scanGroups(ctx, q, listGroupsByMemberCount, arg.Limit, arg.Offset)
}

type CreateGroupParams struct {
	Name        string
	DisplayName string
	Description string
	System      bool
	Hidden      bool
	CreatedAt   time.Time
}

const createGroup = `INSERT INTO user_groups (name, display_name, description, system, hidden, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateGroup(ctx context.Context, arg CreateGroupParams) error {
	_, err := q.db.ExecContext(ctx, createGroup, arg.Name, arg.DisplayName, arg.Description, arg.System, arg.Hidden, sqliteTime(arg.CreatedAt))
	return err
}

const groupExists = `SELECT EXISTS(SELECT 1 FROM user_groups WHERE name = ?)`

func (q *Queries) GroupExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, groupExists, name).Scan(&exists)
	return exists, err
}

const addGroupMember = `INSERT OR IGNORE INTO group_members (group_name, user_id) VALUES (?, ?)`

func (q *Queries) AddGroupMember(ctx context.Context, groupName string, userID int64) error {
	_, err := q.db.ExecContext(ctx, addGroupMember, groupName, userID)
	return err
}

const isGroupMember = `SELECT EXISTS(SELECT 1 FROM group_members WHERE group_name = ? AND user_id = ?)`

func (q *Queries) IsGroupMember(ctx context.Context, groupName string, userID int64) (bool, error) {
	var member bool
	err := q.db.QueryRowContext(ctx, isGroupMember, groupName, userID).Scan(&member)
	return member, err
}

const listUserGroupNames = `SELECT group_name FROM group_members WHERE user_id = ? ORDER BY group_name`

func (q *Queries) ListUserGroupNames(ctx context.Context, userID int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listUserGroupNames, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
