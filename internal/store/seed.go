// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/oforum/internal/auth"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/util"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
)

var seedGroups = []CreateGroupParams{
	{Name: model.GroupAdministrators, DisplayName: "Administrators", Description: "Forum administrators", System: true},
	{Name: model.GroupRegisteredUsers, DisplayName: "Registered Users", Description: "All registered users", System: true},
	{Name: model.GroupGlobalModerators, DisplayName: "Global Moderators", Description: "Moderators of every category", System: true},
}

var seedLanguages = []Language{
	{Code: "en-GB", Name: "English (United Kingdom)", Direction: model.DirectionLTR},
	{Code: "en-US", Name: "English (United States)", Direction: model.DirectionLTR},
	{Code: "ru", Name: "Русский", Direction: model.DirectionLTR},
	{Code: "ar", Name: "العربية", Direction: model.DirectionRTL},
}

var seedSounds = []SoundpackSound{
	{Pack: "Default", Name: "Chat Incoming", Asset: "sounds/default/chat-incoming.mp3"},
	{Pack: "Default", Name: "Chat Outgoing", Asset: "sounds/default/chat-outgoing.mp3"},
	{Pack: "Default", Name: "Notification", Asset: "sounds/default/notification.mp3"},
	{Pack: "Bleeps", Name: "Bleep", Asset: "sounds/bleeps/bleep.mp3"},
	{Pack: "Bleeps", Name: "Double Bleep", Asset: "sounds/bleeps/double-bleep.mp3"},
}

var seedConfig = map[string]string{
	model.ConfigKeySiteName:       "oForum",
	model.ConfigKeyDefaultLang:    "en-GB",
	model.ConfigKeyAutoDetectLang: "1",
	model.ConfigKeyEmailService:   "",
	model.SoundTypeNotification:   "Default | Notification",
	model.SoundTypeChatIncoming:   "Default | Chat Incoming",
	model.SoundTypeChatOutgoing:   "Default | Chat Outgoing",
}

var seedCategories = []string{"Announcements", "General Discussion", "Feedback"}

// Seed creates initial data in the database. It does nothing if the
// default admin account already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetUserByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	qtx := queries.WithTx(tx)

	now := time.Now()
	user, err := qtx.CreateUser(ctx, CreateUserParams{
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	for i, g := range seedGroups {
		g.CreatedAt = now.Add(time.Duration(i) * time.Second)
		if err := qtx.CreateGroup(ctx, g); err != nil {
			return fmt.Errorf("creating group %s: %w", g.Name, err)
		}
	}
	for _, name := range []string{model.GroupAdministrators, model.GroupRegisteredUsers} {
		if err := qtx.AddGroupMember(ctx, name, user.ID); err != nil {
			return fmt.Errorf("adding admin to %s: %w", name, err)
		}
	}

	if err := seedForum(ctx, qtx, now); err != nil {
		return err
	}
	if err := seedNavigation(ctx, qtx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"username", user.Username,
		"password", DefaultAdminPassword,
	)
	return nil
}

func seedForum(ctx context.Context, q *Queries, now time.Time) error {
	for i, lang := range seedLanguages {
		lang.Position = int64(i)
		if err := q.CreateLanguage(ctx, lang); err != nil {
			return fmt.Errorf("creating language %s: %w", lang.Code, err)
		}
	}

	packPos := map[string]int64{}
	for _, s := range seedSounds {
		s.Position = packPos[s.Pack]
		packPos[s.Pack]++
		if err := q.CreateSoundpackSound(ctx, s); err != nil {
			return fmt.Errorf("creating sound %s/%s: %w", s.Pack, s.Name, err)
		}
	}

	for key, value := range seedConfig {
		typ := model.ConfigTypeString
		if key == model.ConfigKeyAutoDetectLang {
			typ = model.ConfigTypeBool
		}
		if err := q.UpsertConfig(ctx, UpsertConfigParams{Key: key, Value: value, Type: typ, UpdatedAt: now}); err != nil {
			return fmt.Errorf("setting config %s: %w", key, err)
		}
	}

	for i, name := range seedCategories {
		id, err := q.CreateCategory(ctx, CreateCategoryParams{
			Name:     name,
			Slug:     util.Slugify(name),
			Position: int64(i),
		})
		if err != nil {
			return fmt.Errorf("creating category %s: %w", name, err)
		}

		// Per-category privilege groups live alongside regular groups.
		for _, priv := range []string{model.PrivilegeFind, model.PrivilegeRead} {
			if err := q.CreateGroup(ctx, CreateGroupParams{
				Name:        fmt.Sprintf("cid:%d:privileges:groups:%s", id, priv),
				DisplayName: fmt.Sprintf("cid:%d:privileges:groups:%s", id, priv),
				System:      true,
				Hidden:      true,
				CreatedAt:   now,
			}); err != nil {
				return fmt.Errorf("creating privilege group: %w", err)
			}
			for _, group := range []string{model.GroupRegisteredUsers, model.GroupGuests, model.GroupSpiders} {
				if err := q.GrantCategoryPrivilege(ctx, CategoryPrivilege{CategoryID: id, Privilege: priv, GroupName: group}); err != nil {
					return fmt.Errorf("granting %s on %s: %w", priv, name, err)
				}
			}
		}
	}

	return q.ActivateSocialNetwork(ctx, "facebook")
}

func seedNavigation(ctx context.Context, q *Queries) error {
	for i, tmpl := range model.CoreNavigation {
		id, err := q.CreateNavigationItem(ctx, CreateNavigationItemParams{
			ItemKey:   uuid.NewString(),
			Position:  int64(i),
			HtmlID:    tmpl.ID,
			Route:     tmpl.Route,
			Title:     tmpl.Title,
			Text:      tmpl.Text,
			IconClass: tmpl.IconClass,
			TextClass: tmpl.TextClass,
			Enabled:   true,
		})
		if err != nil {
			return fmt.Errorf("creating navigation item %s: %w", tmpl.Route, err)
		}
		if strings.HasPrefix(tmpl.Route, "/admin") {
			if err := q.AddNavigationItemGroup(ctx, id, model.GroupAdministrators); err != nil {
				return fmt.Errorf("restricting navigation item %s: %w", tmpl.Route, err)
			}
		}
	}
	return nil
}
