// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models shared across oForum packages:
// groups, navigation entries, languages, and configuration keys.
package model

// GuestUID is the user id used for unauthenticated visitors.
const GuestUID int64 = 0
