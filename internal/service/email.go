// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/olegiv/oforum/internal/model"
)

// EmailTemplateDir is the directory of email templates inside the template FS.
const EmailTemplateDir = "emails"

// wellKnownEmailServices are the SMTP presets offered in the email settings.
var wellKnownEmailServices = []string{
	"126", "163", "1und1", "AOL", "DebugMail", "DynectEmail", "FastMail",
	"GandiMail", "Gmail", "Godaddy", "GodaddyAsia", "GodaddyEurope",
	"Hotmail", "Mail.ru", "Mailgun", "Mailjet", "Mailosaur", "Mandrill",
	"Naver", "OpenMailBox", "Outlook365", "Postmark", "QQ", "QQex",
	"SES", "SES-US-EAST-1", "SES-US-WEST-2", "SES-EU-WEST-1", "Sendgrid",
	"Sendinblue", "SendPulse", "SparkPost", "Yahoo", "Yandex", "Zoho",
	"hot.ee", "iCloud", "mail.ee",
}

// EmailService lists email templates and transport presets.
type EmailService struct {
	templates fs.FS
}

// NewEmailService reads templates from the emails/ directory of templates.
func NewEmailService(templates fs.FS) *EmailService {
	return &EmailService{templates: templates}
}

// Templates returns every *.tpl file under emails/, sorted by path. Text is
// the custom body from cfg (key email:custom:<path>) when one is set,
// otherwise the file contents.
func (s *EmailService) Templates(cfg model.SiteConfig) ([]model.EmailTemplate, error) {
	var out []model.EmailTemplate

	err := fs.WalkDir(s.templates, EmailTemplateDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".tpl" {
			return nil
		}

		original, err := fs.ReadFile(s.templates, p)
		if err != nil {
			return err
		}

		rel := strings.TrimSuffix(strings.TrimPrefix(p, EmailTemplateDir+"/"), ".tpl")
		custom := cfg.Get(model.ConfigKeyEmailCustomPrefix + rel)

		tpl := model.EmailTemplate{
			Path:     rel,
			FullPath: p,
			Text:     string(original),
			Original: string(original),
			IsCustom: custom != "",
		}
		if tpl.IsCustom {
			tpl.Text = custom
		}
		out = append(out, tpl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking email templates: %w", err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Sendable returns the paths of templates that can be sent on their own,
// leaving out plaintext variants and partials.
func Sendable(templates []model.EmailTemplate) []string {
	paths := make([]string, 0, len(templates))
	for _, t := range templates {
		if strings.Contains(t.Path, "_plaintext") || strings.Contains(t.Path, "partials") {
			continue
		}
		paths = append(paths, t.Path)
	}
	return paths
}

// Services returns the well-known SMTP service names.
func (s *EmailService) Services() []string {
	return append([]string(nil), wellKnownEmailServices...)
}
