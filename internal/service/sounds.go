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

// SoundService enumerates installed sound packs.
type SoundService struct {
	queries *store.Queries
}

// NewSoundService creates a new SoundService.
func NewSoundService(db *sql.DB) *SoundService {
	return &SoundService{queries: store.New(db)}
}

// Soundpacks returns the installed packs ordered by name.
func (s *SoundService) Soundpacks(ctx context.Context) ([]model.Soundpack, error) {
	rows, err := s.queries.ListSoundpackSounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sounds: %w", err)
	}

	var packs []model.Soundpack
	for _, r := range rows {
		if n := len(packs); n == 0 || packs[n-1].Name != r.Pack {
			packs = append(packs, model.Soundpack{Name: r.Pack, Sounds: map[string]string{}})
		}
		packs[len(packs)-1].Sounds[r.Name] = r.Asset
	}
	return packs, nil
}
