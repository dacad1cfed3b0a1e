// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Config types
const (
	ConfigTypeString = "string"
	ConfigTypeInt    = "int"
	ConfigTypeBool   = "bool"
)

// Config keys
const (
	ConfigKeySiteName       = "site_name"
	ConfigKeyDefaultLang    = "defaultLang"
	ConfigKeyAutoDetectLang = "autoDetectLang"
	ConfigKeyEmailService   = "email:service"

	// ConfigKeyEmailCustomPrefix prefixes per-template custom email bodies.
	ConfigKeyEmailCustomPrefix = "email:custom:"
)

// Sound setting keys. Each stores a "<pack> | <sound>" value.
const (
	SoundTypeNotification = "notification"
	SoundTypeChatIncoming = "chat-incoming"
	SoundTypeChatOutgoing = "chat-outgoing"
)

// SoundTypes lists the sound slots configurable in the admin area, in display order.
var SoundTypes = []string{
	SoundTypeNotification,
	SoundTypeChatIncoming,
	SoundTypeChatOutgoing,
}

// SiteConfig is a read-only snapshot of site configuration values.
type SiteConfig map[string]string

// Get returns the value for key or an empty string.
func (c SiteConfig) Get(key string) string {
	return c[key]
}

// Bool interprets the value for key as a boolean flag ("1" or "true").
func (c SiteConfig) Bool(key string) bool {
	switch c[key] {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
