// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n translates admin UI strings and the [[namespace:key]] tokens
// stored in navigation entries and notification labels.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Message is one entry of a locales/<lang>/messages.json file.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile is the layout of a messages.json file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds translations for every supported language.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
	logger       *slog.Logger
}

var catalog *Catalog

// SupportedLanguages lists the admin UI languages, default first.
var SupportedLanguages = []string{"en", "ru"}

// tokenPattern matches [[namespace:key]] translation tokens.
var tokenPattern = regexp.MustCompile(`\[\[([\w\-]+):([\w\-.]+)\]\]`)

// Init loads every supported language from the embedded locales.
func Init(logger *slog.Logger) error {
	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  SupportedLanguages[0],
		logger:       logger,
	}

	for _, lang := range SupportedLanguages {
		c.supported = append(c.supported, language.MustParse(lang))
		if err := c.loadLanguage(lang); err != nil {
			return fmt.Errorf("loading language %s: %w", lang, err)
		}
	}
	c.matcher = language.NewMatcher(c.supported)
	catalog = c

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}
	return nil
}

func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return err
	}

	var file MessageFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	messages := make(map[string]string, len(file.Messages))
	for _, m := range file.Messages {
		messages[m.ID] = m.Translation
	}

	c.mu.Lock()
	c.translations[lang] = messages
	c.mu.Unlock()
	return nil
}

// lookup finds key in lang, falling back to the default language.
func (c *Catalog) lookup(lang, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if s, ok := c.translations[lang][key]; ok {
		return s, true
	}
	if s, ok := c.translations[c.defaultLang][key]; ok {
		if lang != c.defaultLang && c.logger != nil {
			c.logger.Debug("missing translation, using default", "key", key, "lang", lang)
		}
		return s, true
	}
	return "", false
}

// T translates key into lang. Unknown keys are returned as is. args are
// applied with fmt.Sprintf.
func T(lang, key string, args ...any) string {
	if catalog == nil {
		return key
	}
	s, ok := catalog.lookup(lang, key)
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}

// Translate replaces every [[namespace:key]] token in s. Tokens without a
// translation are left untouched.
func Translate(lang, s string) string {
	if catalog == nil || !strings.Contains(s, "[[") {
		return s
	}
	return tokenPattern.ReplaceAllStringFunc(s, func(token string) string {
		m := tokenPattern.FindStringSubmatch(token)
		if tr, ok := catalog.lookup(lang, m[1]+":"+m[2]); ok {
			return tr
		}
		return token
	})
}

// MatchLanguage picks the best supported language for an Accept-Language
// header or a single language code.
func MatchLanguage(acceptLang string) string {
	if catalog == nil {
		return SupportedLanguages[0]
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return catalog.defaultLang
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := catalog.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(catalog.supported) {
		return catalog.defaultLang
	}
	return SupportedLanguages[idx]
}

// IsSupported reports whether lang is an admin UI language.
func IsSupported(lang string) bool {
	return slices.Contains(SupportedLanguages, strings.ToLower(lang))
}

// TranslationCount returns how many messages are loaded for lang.
func TranslationCount(lang string) int {
	if catalog == nil {
		return 0
	}
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return len(catalog.translations[lang])
}
