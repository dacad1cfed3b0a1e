// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Text directions of a language pack.
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// Language is an installed forum language pack offered as the default
// language on the languages settings page.
type Language struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Direction string `json:"dir"`
}

// IsRTL reports whether the pack is written right to left.
func (l Language) IsRTL() bool {
	return l.Direction == DirectionRTL
}
