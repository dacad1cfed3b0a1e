// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olegiv/oforum/internal/model"
	"github.com/olegiv/oforum/internal/store"
)

// LanguageService lists installed language packs.
type LanguageService struct {
	queries *store.Queries
}

// NewLanguageService creates a new LanguageService.
func NewLanguageService(db *sql.DB) *LanguageService {
	return &LanguageService{queries: store.New(db)}
}

// List returns the installed languages in display order.
func (s *LanguageService) List(ctx context.Context) ([]model.Language, error) {
	rows, err := s.queries.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing languages: %w", err)
	}
	langs := make([]model.Language, len(rows))
	for i, r := range rows {
		langs[i] = model.Language{Code: r.Code, Name: r.Name, Direction: r.Direction}
	}
	return langs, nil
}
