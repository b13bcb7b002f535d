package intent

import (
	"encoding/json"
	"fmt"
	"os"

	_ "embed"

	"github.com/vaanilabs/docvani/internal/language"
)

//go:embed lexicon.json
var defaultLexiconRaw []byte

// Lexicon maps each language and intent category to its indicative
// keywords and phrases. It is read-only after construction and shared
// across requests.
type Lexicon map[language.Language]map[Category][]string

// lexiconFile is the on-disk JSON shape: language name -> category
// name -> keyword list.
type lexiconFile map[string]map[string][]string

// categoryKeys maps JSON keys to categories.
var categoryKeys = map[string]Category{
	"complaint":           Complaint,
	"request":             Request,
	"update_notification": UpdateNotification,
	"appreciation":        Appreciation,
}

// DefaultLexicon returns the built-in starter lexicon.
func DefaultLexicon() Lexicon {
	lex, err := parseLexicon(defaultLexiconRaw)
	if err != nil {
		// The embedded file is validated by tests; a parse failure
		// here is a build defect.
		panic(fmt.Sprintf("intent: embedded lexicon invalid: %v", err))
	}
	return lex
}

// LoadLexicon reads a lexicon from a JSON file. It is used to extend
// or replace the built-in keyword tables without code changes.
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	lex, err := parseLexicon(data)
	if err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return lex, nil
}

func parseLexicon(data []byte) (Lexicon, error) {
	var file lexiconFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	lex := make(Lexicon, len(file))
	for langKey, cats := range file {
		lang, err := language.Parse(langKey)
		if err != nil {
			return nil, fmt.Errorf("unknown language key %q", langKey)
		}
		byCat := make(map[Category][]string, len(cats))
		for catKey, words := range cats {
			cat, ok := categoryKeys[catKey]
			if !ok {
				return nil, fmt.Errorf("unknown category key %q", catKey)
			}
			if len(words) == 0 {
				return nil, fmt.Errorf("empty keyword list for %s/%s", langKey, catKey)
			}
			byCat[cat] = words
		}
		for _, cat := range Priority {
			if len(byCat[cat]) == 0 {
				return nil, fmt.Errorf("language %q is missing category %q", langKey, cat)
			}
		}
		lex[lang] = byCat
	}

	for _, lang := range language.All {
		if _, ok := lex[lang]; !ok {
			return nil, fmt.Errorf("lexicon is missing language %q", lang)
		}
	}
	return lex, nil
}
