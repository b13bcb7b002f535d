// Package segment splits raw document text into sentences and word
// tokens using language-appropriate boundary rules.
package segment

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vaanilabs/docvani/internal/language"
)

// ErrEmptyDocument is returned when no usable sentences remain after
// trimming whitespace.
var ErrEmptyDocument = errors.New("document contains no sentences")

// Sentence is one sentence of a document under analysis. Ordinal is the
// 0-based position in original document order. Score is populated by
// the feature scorer after segmentation.
type Sentence struct {
	Ordinal int
	Text    string
	Tokens  []string
	Score   float64
}

// Segment splits text into sentences for the given language. Sentences
// are returned in document order with consecutive ordinals starting at
// zero. Whitespace-only spans are discarded. The same text and language
// always produce the same sequence.
func Segment(text string, lang language.Language) ([]Sentence, error) {
	terms := lang.SentenceTerminators()
	spans := splitSpans(text, terms)

	sentences := make([]Sentence, 0, len(spans))
	for _, span := range spans {
		trimmed := strings.TrimSpace(span)
		if trimmed == "" {
			continue
		}
		sentences = append(sentences, Sentence{
			Ordinal: len(sentences),
			Text:    trimmed,
			Tokens:  Tokenize(trimmed, lang),
		})
	}

	if len(sentences) == 0 {
		return nil, ErrEmptyDocument
	}
	return sentences, nil
}

// splitSpans cuts text at sentence terminators and blank lines. A run
// of consecutive terminators (e.g. "?!", "...") ends a single sentence.
func splitSpans(text string, terminators []rune) []string {
	var spans []string
	start := 0

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])

		// A blank line ends the current sentence even without
		// terminal punctuation (headings, addresses, list items).
		if r == '\n' && i+1 < len(text) && text[i+1] == '\n' {
			j := i
			for j < len(text) && text[j] == '\n' {
				j++
			}
			spans = append(spans, text[start:j])
			start = j
			i = j
			continue
		}

		if isTerminator(r, terminators) {
			j := i + size
			for j < len(text) {
				nr, ns := utf8.DecodeRuneInString(text[j:])
				if !isTerminator(nr, terminators) {
					break
				}
				j += ns
			}
			spans = append(spans, text[start:j])
			start = j
			i = j
			continue
		}

		i += size
	}

	if start < len(text) {
		spans = append(spans, text[start:])
	}
	return spans
}

func isTerminator(r rune, terminators []rune) bool {
	for _, t := range terminators {
		if r == t {
			return true
		}
	}
	return false
}

// Tokenize splits a sentence into word tokens. Words are maximal runs
// of letters, digits, and combining marks (the Indic scripts encode
// vowel signs as combining marks, so dropping them would mangle
// words). Tokens are lower-cased only for languages whose script has a
// case distinction.
func Tokenize(text string, lang language.Language) []string {
	fold := lang.HasCase()

	var tokens []string
	var current strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			if fold {
				r = unicode.ToLower(r)
			}
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
