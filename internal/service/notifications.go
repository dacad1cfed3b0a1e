// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/olegiv/oforum/internal/hooks"
	"github.com/olegiv/oforum/internal/model"
)

var baseNotificationTypes = []string{
	"notificationType_upvote",
	"notificationType_new-topic",
	"notificationType_new-reply",
	"notificationType_post-edit",
	"notificationType_follow",
	"notificationType_new-chat",
	"notificationType_new-group-chat",
	"notificationType_group-invite",
	"notificationType_group-leave",
	"notificationType_group-request-membership",
}

var privilegedNotificationTypes = []string{
	"notificationType_new-register",
	"notificationType_post-queue",
	"notificationType_new-post-flag",
	"notificationType_new-user-flag",
}

// NotificationService enumerates notification types.
type NotificationService struct {
	hooks *hooks.Registry
}

// NewNotificationService creates a NotificationService; registry may be nil.
func NewNotificationService(registry *hooks.Registry) *NotificationService {
	return &NotificationService{hooks: registry}
}

// AllTypes returns the base types followed by the privileged types, after
// plugins have had a chance to add their own through notifications.types.
func (s *NotificationService) AllTypes(ctx context.Context) ([]string, error) {
	types, err := hooks.Filter(ctx, s.hooks, hooks.NotificationTypes, model.NotificationTypes{
		Types:      slices.Clone(baseNotificationTypes),
		Privileged: slices.Clone(privilegedNotificationTypes),
	})
	if err != nil {
		return nil, fmt.Errorf("filtering notification types: %w", err)
	}
	return slices.Concat(types.Types, types.Privileged), nil
}
