// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the admin page templates, email templates and static
// assets into the binary.
package web

import "embed"

// Templates holds layouts/, partials/, admin/settings/, auth/, errors/ and
// the emails/ tree listed by the email settings page.
//
//go:embed all:templates
var Templates embed.FS

// Static is served under /static/dist/.
//
//go:embed all:static/dist
var Static embed.FS
