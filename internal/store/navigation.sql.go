// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

const listNavigationItems = `SELECT id, item_key, position, html_id, route, title, text, icon_class, text_class, class, enabled, target_blank
FROM navigation_items
ORDER BY position ASC, id ASC`

func (q *Queries) ListNavigationItems(ctx context.Context) ([]NavigationItem, error) {
	rows, err := q.db.QueryContext(ctx, listNavigationItems)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []NavigationItem
	for rows.Next() {
		var i NavigationItem
		if err := rows.Scan(
			&i.ID, &i.ItemKey, &i.Position, &i.HtmlID, &i.Route, &i.Title, &i.Text,
			&i.IconClass, &i.TextClass, &i.Class, &i.Enabled, &i.TargetBlank,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const listNavigationItemGroups = `SELECT item_id, group_name FROM navigation_item_groups ORDER BY item_id, group_name`

func (q *Queries) ListNavigationItemGroups(ctx context.Context) ([]NavigationItemGroup, error) {
	rows, err := q.db.QueryContext(ctx, listNavigationItemGroups)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []NavigationItemGroup
	for rows.Next() {
		var i NavigationItemGroup
		if err := rows.Scan(&i.ItemID, &i.GroupName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const deleteAllNavigationItems = `DELETE FROM navigation_items`

func (q *Queries) DeleteAllNavigationItems(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllNavigationItems)
	return err
}

type CreateNavigationItemParams struct {
	ItemKey     string
	Position    int64
	HtmlID      string
	Route       string
	Title       string
	Text        string
	IconClass   string
	TextClass   string
	Class       string
	Enabled     bool
	TargetBlank bool
}

const createNavigationItem = `INSERT INTO navigation_items
    (item_key, position, html_id, route, title, text, icon_class, text_class, class, enabled, target_blank)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id`

func (q *Queries) CreateNavigationItem(ctx context.Context, arg CreateNavigationItemParams) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, createNavigationItem,
		arg.ItemKey, arg.Position, arg.HtmlID, arg.Route, arg.Title, arg.Text,
		arg.IconClass, arg.TextClass, arg.Class, arg.Enabled, arg.TargetBlank,
	).Scan(&id)
	return id, err
}

const addNavigationItemGroup = `INSERT OR IGNORE INTO navigation_item_groups (item_id, group_name) VALUES (?, ?)`

func (q *Queries) AddNavigationItemGroup(ctx context.Context, itemID int64, groupName string) error {
	_, err := q.db.ExecContext(ctx, addNavigationItemGroup, itemID, groupName)
	return err
}
