package domain

import "unicode/utf8"

// TextMode selects how the document engine extracts page text.
type TextMode string

// Available text modes.
const (
	// TextModePdftotext shells out to poppler's pdftotext.
	TextModePdftotext TextMode = "pdftotext"

	// TextModeNative uses a pure Go PDF reader.
	TextModeNative TextMode = "native"
)

// IsValid returns true if the text mode is recognised.
func (m TextMode) IsValid() bool {
	return m == TextModePdftotext || m == TextModeNative
}

// DefaultPrefix is the prefix offered when the user has not set one.
const DefaultPrefix = "ExamTimetable"

// Settings holds user defaults applied to every run.
type Settings struct {
	// Prefix is the default output prefix.
	Prefix string

	// Suffix is the output file extension.
	Suffix string

	// Separator joins prefix and identifiers.
	Separator string

	// Collision selects the duplicate-name policy.
	Collision CollisionPolicy

	// RulesFile is a TOML rule set; empty means the built-in rules.
	RulesFile string

	// TextMode selects the page text extractor.
	TextMode TextMode

	// History enables run history persistence.
	History bool
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Prefix:    DefaultPrefix,
		Suffix:    DefaultSuffix,
		Separator: string(DefaultSeparator),
		Collision: CollisionOverwrite,
		TextMode:  TextModePdftotext,
		History:   true,
	}
}

// SeparatorRune returns the separator as a rune, falling back to the default.
func (s Settings) SeparatorRune() rune {
	if utf8.RuneCountInString(s.Separator) != 1 {
		return DefaultSeparator
	}
	r, _ := utf8.DecodeRuneInString(s.Separator)
	return r
}
