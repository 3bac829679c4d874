package services

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driven"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyPrefix    = "split.prefix"
	keySuffix    = "split.suffix"
	keySeparator = "split.separator"
	keyCollision = "split.collision"
	keyRulesFile = "rules.file"
	keyTextMode  = "engine.text"
	keyHistory   = "history.enabled"
)

var settingKeys = []string{
	keyPrefix, keySuffix, keySeparator, keyCollision, keyRulesFile, keyTextMode, keyHistory,
}

// SettingsService manages user defaults.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings merged over defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Prefix:    s.getString(keyPrefix, defaults.Prefix),
		Suffix:    s.getString(keySuffix, defaults.Suffix),
		Separator: s.getString(keySeparator, defaults.Separator),
		Collision: domain.CollisionPolicy(s.getString(keyCollision, string(defaults.Collision))),
		RulesFile: s.configStore.GetString(keyRulesFile),
		TextMode:  domain.TextMode(s.getString(keyTextMode, string(defaults.TextMode))),
		History:   defaults.History,
	}
	if v, ok := s.configStore.GetBool(keyHistory); ok {
		settings.History = v
	}

	return settings, nil
}

// Save persists all settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := validateSettings(settings); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyPrefix, settings.Prefix},
		{keySuffix, settings.Suffix},
		{keySeparator, settings.Separator},
		{keyCollision, settings.Collision.String()},
		{keyRulesFile, settings.RulesFile},
		{keyTextMode, string(settings.TextMode)},
		{keyHistory, settings.History},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyPrefix:
		settings.Prefix = value
	case keySuffix:
		settings.Suffix = strings.TrimPrefix(value, ".")
	case keySeparator:
		settings.Separator = value
	case keyCollision:
		settings.Collision = domain.CollisionPolicy(value)
	case keyRulesFile:
		settings.RulesFile = value
	case keyTextMode:
		settings.TextMode = domain.TextMode(value)
	case keyHistory:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrConfiguration, key)
		}
		settings.History = b
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrConfiguration, key)
	}

	if err := validateSettings(settings); err != nil {
		return err
	}

	var stored any = value
	switch key {
	case keySuffix:
		stored = settings.Suffix
	case keyHistory:
		stored = settings.History
	}
	return s.configStore.Set(key, stored)
}

// Keys lists the settable config keys.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// Validate checks that the stored settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return validateSettings(settings)
}

func validateSettings(settings *domain.Settings) error {
	if strings.TrimSpace(settings.Prefix) == "" {
		return fmt.Errorf("%w: prefix must not be blank", domain.ErrConfiguration)
	}
	if strings.ContainsAny(settings.Prefix+settings.Suffix, `/\`) {
		return fmt.Errorf("%w: prefix and suffix must not contain a path", domain.ErrConfiguration)
	}
	if utf8.RuneCountInString(settings.Separator) != 1 {
		return fmt.Errorf("%w: separator must be a single character, got %q", domain.ErrConfiguration, settings.Separator)
	}
	if r, _ := utf8.DecodeRuneInString(settings.Separator); unicode.IsSpace(r) || r == '/' || r == '\\' {
		return fmt.Errorf("%w: separator %q cannot be used in file names", domain.ErrConfiguration, settings.Separator)
	}
	if !settings.Collision.IsValid() {
		return fmt.Errorf("%w: unknown collision policy %q", domain.ErrConfiguration, settings.Collision)
	}
	if !settings.TextMode.IsValid() {
		return fmt.Errorf("%w: unknown text mode %q", domain.ErrConfiguration, settings.TextMode)
	}
	return nil
}

func (s *SettingsService) getString(key, fallback string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}
