// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const listConfig = `SELECT key, value, type, updated_at FROM config ORDER BY key`

func (q *Queries) ListConfig(ctx context.Context) ([]Config, error) {
	rows, err := q.db.QueryContext(ctx, listConfig)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Config
	for rows.Next() {
		var c Config
		if err := rows.Scan(&c.Key, &c.Value, &c.Type, &c.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const getConfigByKey = `SELECT key, value, type, updated_at FROM config WHERE key = ?`

func (q *Queries) GetConfigByKey(ctx context.Context, key string) (Config, error) {
	var c Config
	err := q.db.QueryRowContext(ctx, getConfigByKey, key).Scan(&c.Key, &c.Value, &c.Type, &c.UpdatedAt)
	return c, err
}

type UpsertConfigParams struct {
	Key       string
	Value     string
	Type      string
	UpdatedAt time.Time
}

const upsertConfig = `INSERT INTO config (key, value, type, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

func (q *Queries) UpsertConfig(ctx context.Context, arg UpsertConfigParams) error {
	_, err := q.db.ExecContext(ctx, upsertConfig, arg.Key, arg.Value, arg.Type, sqliteTime(arg.UpdatedAt))
	return err
}
