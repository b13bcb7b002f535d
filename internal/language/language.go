// Package language defines the set of supported document languages and
// their script properties.
package language

import (
	"fmt"
	"strings"
)

// Language identifies one of the supported document languages.
type Language string

const (
	English Language = "english"
	Hindi   Language = "hindi"
	Marathi Language = "marathi"
	Tamil   Language = "tamil"
)

// All lists every supported language.
var All = []Language{English, Hindi, Marathi, Tamil}

// UnsupportedError reports a language tag outside the supported set.
type UnsupportedError struct {
	Tag string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported language: %q (supported: english, hindi, marathi, tamil)", e.Tag)
}

// Parse maps a user-supplied tag to a Language. Tags are matched
// case-insensitively, and ISO 639-1 codes are accepted alongside
// full names.
func Parse(tag string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "english", "en":
		return English, nil
	case "hindi", "hi":
		return Hindi, nil
	case "marathi", "mr":
		return Marathi, nil
	case "tamil", "ta":
		return Tamil, nil
	default:
		return "", &UnsupportedError{Tag: tag}
	}
}

// Display returns the capitalized display name used in reports.
func (l Language) Display() string {
	switch l {
	case English:
		return "English"
	case Hindi:
		return "Hindi"
	case Marathi:
		return "Marathi"
	case Tamil:
		return "Tamil"
	}
	return string(l)
}

// HasCase reports whether the language's script distinguishes letter
// case. Lowercasing during tokenization is a no-op for the Indic
// scripts.
func (l Language) HasCase() bool {
	return l == English
}

// SentenceTerminators returns the rune set that ends a sentence in this
// language. Hindi and Marathi use the Devanagari danda and double danda
// in addition to Latin punctuation; Tamil prose uses Latin punctuation.
func (l Language) SentenceTerminators() []rune {
	switch l {
	case Hindi, Marathi:
		return []rune{'.', '!', '?', '।', '॥'}
	default:
		return []rune{'.', '!', '?'}
	}
}
