// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

const listLanguages = `SELECT code, name, direction, position FROM languages ORDER BY position, code`

func (q *Queries) ListLanguages(ctx context.Context) ([]Language, error) {
	rows, err := q.db.QueryContext(ctx, listLanguages)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Language
	for rows.Next() {
		var l Language
		if err := rows.Scan(&l.Code, &l.Name, &l.Direction, &l.Position); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

const createLanguage = `INSERT OR IGNORE INTO languages (code, name, direction, position) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateLanguage(ctx context.Context, arg Language) error {
	_, err := q.db.ExecContext(ctx, createLanguage, arg.Code, arg.Name, arg.Direction, arg.Position)
	return err
}

const listCategories = `SELECT id, name, slug, position, disabled FROM categories ORDER BY position, id`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Position, &c.Disabled); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

type CreateCategoryParams struct {
	Name     string
	Slug     string
	Position int64
	Disabled bool
}

const createCategory = `INSERT INTO categories (name, slug, position, disabled) VALUES (?, ?, ?, ?) RETURNING id`

func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx, createCategory, arg.Name, arg.Slug, arg.Position, arg.Disabled).Scan(&id)
	return id, err
}

const grantCategoryPrivilege = `INSERT OR IGNORE INTO category_privileges (category_id, privilege, group_name) VALUES (?, ?, ?)`

func (q *Queries) GrantCategoryPrivilege(ctx context.Context, arg CategoryPrivilege) error {
	_, err := q.db.ExecContext(ctx, grantCategoryPrivilege, arg.CategoryID, arg.Privilege, arg.GroupName)
	return err
}

const listCategoryPrivileges = `SELECT category_id, privilege, group_name FROM category_privileges
WHERE privilege = ?
ORDER BY category_id, group_name`

func (q *Queries) ListCategoryPrivileges(ctx context.Context, privilege string) ([]CategoryPrivilege, error) {
	rows, err := q.db.QueryContext(ctx, listCategoryPrivileges, privilege)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []CategoryPrivilege
	for rows.Next() {
		var p CategoryPrivilege
		if err := rows.Scan(&p.CategoryID, &p.Privilege, &p.GroupName); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const listSoundpackSounds = `SELECT pack, name, asset, position FROM soundpack_sounds ORDER BY pack, position, name`

func (q *Queries) ListSoundpackSounds(ctx context.Context) ([]SoundpackSound, error) {
	rows, err := q.db.QueryContext(ctx, listSoundpackSounds)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []SoundpackSound
	for rows.Next() {
		var s SoundpackSound
		if err := rows.Scan(&s.Pack, &s.Name, &s.Asset, &s.Position); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const createSoundpackSound = `INSERT OR REPLACE INTO soundpack_sounds (pack, name, asset, position) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateSoundpackSound(ctx context.Context, arg SoundpackSound) error {
	_, err := q.db.ExecContext(ctx, createSoundpackSound, arg.Pack, arg.Name, arg.Asset, arg.Position)
	return err
}

const listActivatedSocialNetworks = `SELECT network_id FROM social_activated ORDER BY network_id`

func (q *Queries) ListActivatedSocialNetworks(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listActivatedSocialNetworks)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const clearActivatedSocialNetworks = `DELETE FROM social_activated`

func (q *Queries) ClearActivatedSocialNetworks(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, clearActivatedSocialNetworks)
	return err
}

const activateSocialNetwork = `INSERT OR IGNORE INTO social_activated (network_id) VALUES (?)`

func (q *Queries) ActivateSocialNetwork(ctx context.Context, networkID string) error {
	_, err := q.db.ExecContext(ctx, activateSocialNetwork, networkID)
	return err
}
