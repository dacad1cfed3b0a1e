// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for oForum packages.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/oforum/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a migrated database in t.TempDir and closes it on cleanup.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "oforum-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// TestMemoryDB opens an unmigrated in-memory SQLite database through
// mattn/go-sqlite3 for tests that create their own schema.
func TestMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateUser inserts a user and returns its id.
func CreateUser(t *testing.T, db *sql.DB, username string, groups ...string) int64 {
	t.Helper()

	ctx := context.Background()
	q := store.New(db)
	u, err := q.CreateUser(ctx, store.CreateUserParams{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "unused",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	for _, g := range groups {
		if err := q.AddGroupMember(ctx, g, u.ID); err != nil {
			t.Fatalf("AddGroupMember(%s, %s): %v", g, username, err)
		}
	}
	return u.ID
}

// CreateGroup inserts a group created at the given time.
func CreateGroup(t *testing.T, db *sql.DB, name string, system bool, createdAt time.Time) {
	t.Helper()

	if err := store.New(db).CreateGroup(context.Background(), store.CreateGroupParams{
		Name:        name,
		DisplayName: name,
		System:      system,
		CreatedAt:   createdAt,
	}); err != nil {
		t.Fatalf("CreateGroup(%s): %v", name, err)
	}
}
