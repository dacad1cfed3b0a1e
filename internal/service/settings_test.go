// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/oforum/internal/cache"
	"github.com/olegiv/oforum/internal/hooks"
	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/store"
	"github.com/olegiv/oforum/internal/testutil"
)

func TestNotificationService_AllTypes(t *testing.T) {
	svc := NewNotificationService(nil)
	types, err := svc.AllTypes(context.Background())
	require.NoError(t, err)

	require.Len(t, types, len(baseNotificationTypes)+len(privilegedNotificationTypes))
	assert.Equal(t, "notificationType_upvote", types[0])
	assert.Equal(t, "notificationType_new-user-flag", types[len(types)-1])
}

func TestNotificationService_Hook(t *testing.T) {
	registry := hooks.NewRegistry(testutil.DiscardLogger())
	registry.RegisterFunc(hooks.NotificationTypes, "mentions", "mentions", func(_ context.Context, data any) (any, error) {
		nt := data.(model.NotificationTypes)
		nt.Types = append(nt.Types, "notificationType_mention")
		return nt, nil
	})

	types, err := NewNotificationService(registry).AllTypes(context.Background())
	require.NoError(t, err)

	// Plugin base types come before the privileged block.
	assert.Equal(t, "notificationType_mention", types[len(baseNotificationTypes)])
	assert.Len(t, types, len(baseNotificationTypes)+len(privilegedNotificationTypes)+1)
}

func TestNotificationService_HookError(t *testing.T) {
	registry := hooks.NewRegistry(testutil.DiscardLogger())
	registry.RegisterFunc(hooks.NotificationTypes, "broken", "broken", func(context.Context, any) (any, error) {
		return nil, errors.New("plugin failed")
	})

	_, err := NewNotificationService(registry).AllTypes(context.Background())
	assert.Error(t, err)
}

func TestLanguageAndSoundServices(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx, db))

	langs, err := NewLanguageService(db).List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, langs)
	assert.Equal(t, "en-GB", langs[0].Code)

	var rtl int
	for _, l := range langs {
		if l.IsRTL() {
			rtl++
		}
	}
	assert.Equal(t, 1, rtl)

	packs, err := NewSoundService(db).Soundpacks(ctx)
	require.NoError(t, err)
	require.Len(t, packs, 2)
	assert.Equal(t, "Bleeps", packs[0].Name)
	assert.Equal(t, "Default", packs[1].Name)
	assert.Equal(t, "sounds/default/notification.mp3", packs[1].Sounds["Notification"])
}

func TestHomepageService_Routes(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	q := store.New(db)

	testutil.CreateGroup(t, db, model.GroupAdministrators, true, time.Now())
	testutil.CreateGroup(t, db, model.GroupRegisteredUsers, true, time.Now())
	admin := testutil.CreateUser(t, db, "root", model.GroupAdministrators)
	member := testutil.CreateUser(t, db, "bob")

	public, err := q.CreateCategory(ctx, store.CreateCategoryParams{Name: "General", Slug: "general"})
	require.NoError(t, err)
	members, err := q.CreateCategory(ctx, store.CreateCategoryParams{Name: "Members", Slug: "members", Position: 1})
	require.NoError(t, err)
	_, err = q.CreateCategory(ctx, store.CreateCategoryParams{Name: "Archive", Slug: "archive", Position: 2, Disabled: true})
	require.NoError(t, err)

	require.NoError(t, q.GrantCategoryPrivilege(ctx, store.CategoryPrivilege{CategoryID: public, Privilege: model.PrivilegeFind, GroupName: model.GroupGuests}))
	require.NoError(t, q.GrantCategoryPrivilege(ctx, store.CategoryPrivilege{CategoryID: public, Privilege: model.PrivilegeFind, GroupName: model.GroupRegisteredUsers}))
	require.NoError(t, q.GrantCategoryPrivilege(ctx, store.CategoryPrivilege{CategoryID: members, Privilege: model.PrivilegeFind, GroupName: model.GroupRegisteredUsers}))

	svc := NewHomepageService(db, NewGroupService(db), nil)

	routeNames := func(uid int64) []string {
		t.Helper()
		routes, err := svc.Routes(ctx, uid)
		require.NoError(t, err)
		out := make([]string, len(routes))
		for i, r := range routes {
			out[i] = r.Route
		}
		return out
	}

	base := []string{"categories", "unread", "recent", "top", "popular"}
	assert.Equal(t, append(append([]string{}, base...), "category/general", "custom"), routeNames(model.GuestUID))
	assert.Equal(t, append(append([]string{}, base...), "category/general", "category/members", "custom"), routeNames(member))
	assert.Equal(t, append(append([]string{}, base...), "category/general", "category/members", "custom"), routeNames(admin))

	routes, err := svc.Routes(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "Category: General", routes[5].Name)
}

func TestHomepageService_Hook(t *testing.T) {
	db := testutil.TestDB(t)
	registry := hooks.NewRegistry(testutil.DiscardLogger())
	registry.RegisterFunc(hooks.HomepageRoutes, "landing", "landing", func(_ context.Context, data any) (any, error) {
		hp := data.(model.HomePageData)
		hp.Routes = append(hp.Routes, model.HomePageRoute{Route: "landing", Name: "Landing"})
		return hp, nil
	})

	routes, err := NewHomepageService(db, NewGroupService(db), registry).Routes(context.Background(), model.GuestUID)
	require.NoError(t, err)
	assert.Equal(t, "landing", routes[len(routes)-1].Route)
}

func TestSocialService_PostSharing(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	cm := cache.NewMemoryManager(time.Hour)
	defer func() { _ = cm.Close() }()

	registry := hooks.NewRegistry(testutil.DiscardLogger())
	registry.RegisterFunc(hooks.SocialPosts, "linkedin", "linkedin", func(_ context.Context, data any) (any, error) {
		return append(data.([]model.SharingNetwork), model.SharingNetwork{ID: "linkedin", Name: "LinkedIn", Class: "fa-linkedin"}), nil
	})

	svc := NewSocialService(db, cm, registry)
	require.NoError(t, svc.SetActivated(ctx, []string{"twitter", "linkedin"}))

	networks, err := svc.PostSharing(ctx)
	require.NoError(t, err)
	require.Len(t, networks, 3)
	assert.False(t, networks[0].Activated)
	assert.True(t, networks[1].Activated)
	assert.True(t, networks[2].Activated)

	// Mutating a result does not leak into the next call.
	networks[0].Activated = true
	again, err := svc.PostSharing(ctx)
	require.NoError(t, err)
	assert.False(t, again[0].Activated)

	require.NoError(t, svc.SetActivated(ctx, []string{"facebook"}))
	again, err = svc.PostSharing(ctx)
	require.NoError(t, err)
	assert.True(t, again[0].Activated)
	assert.False(t, again[1].Activated)
}

func TestConfigService(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	cm := cache.NewMemoryManager(time.Hour)
	defer func() { _ = cm.Close() }()
	svc := NewConfigService(db, cm)

	cfg, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, cfg)

	require.NoError(t, svc.SetMany(ctx, map[string]string{
		model.ConfigKeyDefaultLang:    "ru",
		model.ConfigKeyAutoDetectLang: "1",
	}))

	cfg, err = svc.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ru", cfg.Get(model.ConfigKeyDefaultLang))
	assert.True(t, cfg.Bool(model.ConfigKeyAutoDetectLang))
}

func TestEventService(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	svc := NewEventService(db)

	require.NoError(t, svc.LogInfo(ctx, model.EventCategoryNavigation, "Navigation saved", 7, map[string]any{"entries": 3}))
	require.NoError(t, svc.LogWarning(ctx, model.EventCategoryAuth, "Failed login", 0, nil))

	events, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	var saved model.Event
	for _, e := range events {
		if e.Category == model.EventCategoryNavigation {
			saved = e
		}
	}
	assert.Equal(t, int64(7), saved.UserID.Int64)
	assert.JSONEq(t, `{"entries":3}`, saved.Metadata)

	n, err := svc.DeleteOldEvents(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)
}
