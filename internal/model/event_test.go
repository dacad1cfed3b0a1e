// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventCategories(t *testing.T) {
	categories := []string{
		EventCategoryAuth,
		EventCategoryNavigation,
		EventCategorySettings,
		EventCategorySystem,
		EventCategoryCache,
	}

	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		assert.NotEmpty(t, c)
		assert.False(t, seen[c], "duplicate category %q", c)
		seen[c] = true
	}
}

func TestEventLevels(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"info", "warning", "error"},
		[]string{EventLevelInfo, EventLevelWarning, EventLevelError})
}
