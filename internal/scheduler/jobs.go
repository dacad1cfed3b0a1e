// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job names.
const (
	JobPurgeEvents     = "purge-events"
	JobLoginProtection = "login-protection-cleanup"
)

// EventPurger deletes old audit events.
type EventPurger interface {
	DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error)
}

// Cleaner drops stale in-memory state.
type Cleaner interface {
	Cleanup()
}

// PurgeEvents returns a job deleting events older than retentionDays.
func PurgeEvents(events EventPurger, retentionDays int, logger *slog.Logger) JobFunc {
	retention := time.Duration(retentionDays) * 24 * time.Hour
	return func(ctx context.Context) error {
		n, err := events.DeleteOldEvents(ctx, retention)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("purged old events", "deleted", n, "retention_days", retentionDays)
		}
		return nil
	}
}

// Cleanup returns a job calling c.Cleanup.
func Cleanup(c Cleaner) JobFunc {
	return func(context.Context) error {
		c.Cleanup()
		return nil
	}
}

// RegisterDefaults adds the built-in maintenance jobs. The event purge is
// skipped when retentionDays is 0.
func RegisterDefaults(s *Scheduler, events EventPurger, retentionDays int, login Cleaner) error {
	if retentionDays > 0 {
		if err := s.AddJob(JobPurgeEvents, "@hourly", PurgeEvents(events, retentionDays, s.logger)); err != nil {
			return err
		}
	}
	if login != nil {
		if err := s.AddJob(JobLoginProtection, "@every 10m", Cleanup(login)); err != nil {
			return err
		}
	}
	return nil
}
