// Package intent classifies documents into intent categories using
// per-language keyword lexicons.
//
// Classification is deterministic: a category's raw score is its
// keyword match count normalized per 1000 characters of text, the
// winning category's confidence is its share of the total score, and
// ties are broken by the fixed priority Complaint > Request >
// Update/Notification > Appreciation. A document with no keyword
// matches at all is Unclassified with confidence 0.
package intent

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	goahocorasick "github.com/anknown/ahocorasick"

	"github.com/vaanilabs/docvani/internal/language"
)

// Category is an intent classification label.
type Category string

const (
	Complaint          Category = "Complaint"
	Request            Category = "Request"
	UpdateNotification Category = "Update/Notification"
	Appreciation       Category = "Appreciation"
	Unclassified       Category = "Unclassified"
)

// Priority is the fixed tie-break order: when two categories share the
// top score, the one listed earlier wins.
var Priority = []Category{Complaint, Request, UpdateNotification, Appreciation}

// Result is the outcome of classifying one document.
type Result struct {
	Category    Category `json:"category"`
	Confidence  float64  `json:"confidence"` // in [0,1]; 0 iff Unclassified
	Keywords    []string `json:"keywords"`   // matched keywords for the winning category
	Explanation string   `json:"explanation"`
}

// Matcher finds lexicon keywords in text for a single language.
type Matcher struct {
	machine    *goahocorasick.Machine
	categories map[string][]Category // normalized keyword -> categories it indicates
}

// NewMatcher builds an Aho-Corasick automaton over the language's
// lexicon. Keywords are matched case-insensitively for scripts with a
// case distinction.
func NewMatcher(lex Lexicon, lang language.Language) (*Matcher, error) {
	byCat, ok := lex[lang]
	if !ok {
		return nil, fmt.Errorf("lexicon has no entries for language %q", lang)
	}

	categories := make(map[string][]Category)
	var patterns [][]rune
	for _, cat := range Priority {
		for _, kw := range byCat[cat] {
			norm := normalize(kw)
			if norm == "" {
				continue
			}
			if _, seen := categories[norm]; !seen {
				patterns = append(patterns, []rune(norm))
			}
			categories[norm] = append(categories[norm], cat)
		}
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, fmt.Errorf("build keyword automaton: %w", err)
	}
	return &Matcher{machine: machine, categories: categories}, nil
}

// Match is one keyword occurrence in the scanned text.
type Match struct {
	Keyword    string
	Categories []Category
}

// Scan returns every lexicon keyword occurrence in text.
func (m *Matcher) Scan(text string) []Match {
	terms := m.machine.MultiPatternSearch([]rune(normalize(text)), false)
	matches := make([]Match, 0, len(terms))
	for _, t := range terms {
		kw := string(t.Word)
		matches = append(matches, Match{Keyword: kw, Categories: m.categories[kw]})
	}
	return matches
}

// HasAny reports whether text contains at least one lexicon keyword.
// The feature scorer uses this as a summary-worthiness hint.
func (m *Matcher) HasAny(text string) bool {
	terms := m.machine.MultiPatternSearch([]rune(normalize(text)), true)
	return len(terms) > 0
}

// normalize lower-cases text for matching. Lowercasing is a no-op for
// the Indic scripts, so a single pass serves all four languages.
func normalize(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// Classifier holds one matcher per supported language. It is built
// once at startup from the lexicon and is safe for concurrent use.
type Classifier struct {
	matchers map[language.Language]*Matcher
}

// NewClassifier builds matchers for every supported language.
func NewClassifier(lex Lexicon) (*Classifier, error) {
	matchers := make(map[language.Language]*Matcher, len(language.All))
	for _, lang := range language.All {
		m, err := NewMatcher(lex, lang)
		if err != nil {
			return nil, fmt.Errorf("language %s: %w", lang, err)
		}
		matchers[lang] = m
	}
	return &Classifier{matchers: matchers}, nil
}

// Matcher returns the keyword matcher for a language.
func (c *Classifier) Matcher(lang language.Language) *Matcher {
	return c.matchers[lang]
}

// Classify scores the document text against every category and returns
// the winning label with its confidence and explanation.
func (c *Classifier) Classify(text string, lang language.Language) Result {
	matcher := c.matchers[lang]

	counts := make(map[Category]int, len(Priority))
	keywords := make(map[Category][]string, len(Priority))
	seen := make(map[string]bool)
	for _, match := range matcher.Scan(text) {
		for _, cat := range match.Categories {
			counts[cat]++
		}
		if !seen[match.Keyword] {
			seen[match.Keyword] = true
			for _, cat := range match.Categories {
				keywords[cat] = append(keywords[cat], match.Keyword)
			}
		}
	}

	// Normalize to matches per 1000 characters so long documents do
	// not trivially outscore short ones.
	chars := utf8.RuneCountInString(text)
	if chars == 0 {
		return unclassified()
	}
	scores := make(map[Category]float64, len(counts))
	var total float64
	for cat, n := range counts {
		score := float64(n) * 1000 / float64(chars)
		scores[cat] = score
		total += score
	}
	if total == 0 {
		return unclassified()
	}

	winner := Priority[0]
	best := -1.0
	for _, cat := range Priority {
		if scores[cat] > best {
			best = scores[cat]
			winner = cat
		}
	}

	confidence := scores[winner] / total
	kws := keywords[winner]
	if len(kws) > maxExplainKeywords {
		kws = kws[:maxExplainKeywords]
	}
	return Result{
		Category:    winner,
		Confidence:  confidence,
		Keywords:    kws,
		Explanation: explain(winner, confidence, kws),
	}
}

func unclassified() Result {
	return Result{
		Category:    Unclassified,
		Confidence:  0,
		Explanation: "No indicative keywords for any intent category were found in the document.",
	}
}
