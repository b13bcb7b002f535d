// Package analyze runs the document analysis pipeline: segmentation,
// feature scoring, summary selection, and intent classification.
//
// A Pipeline holds only read-only configuration (lexicon matchers and
// scoring weights), so one instance serves concurrent requests without
// locking. Each Analyze call operates on its own document and returns
// a self-contained result; failures are whole-request failures and no
// partial result is ever returned.
package analyze

import (
	"fmt"
	"unicode/utf8"

	"github.com/vaanilabs/docvani/internal/intent"
	"github.com/vaanilabs/docvani/internal/language"
	"github.com/vaanilabs/docvani/internal/score"
	"github.com/vaanilabs/docvani/internal/segment"
	"github.com/vaanilabs/docvani/internal/summary"
)

// MaxDocumentChars is the hard per-document size limit, in characters.
// Oversized documents are rejected, not truncated; truncation is a
// caller-side decision.
const MaxDocumentChars = 500000

// ErrEmptyDocument indicates the document had no usable sentences
// after segmentation.
var ErrEmptyDocument = segment.ErrEmptyDocument

// TooLargeError reports a document over the character limit.
type TooLargeError struct {
	Chars int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("document has %d characters, limit is %d", e.Chars, MaxDocumentChars)
}

// ConfigError reports an invalid analysis configuration.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid analysis config: " + e.Reason
}

// Document is one unit of input to the pipeline. It is treated as
// immutable; Filename and Format are opaque metadata carried through
// to the result for export.
type Document struct {
	Text     string
	Language language.Language
	Filename string
	Format   string
}

// Config controls one analysis run.
type Config struct {
	SummaryRatio  float64 // fraction of sentences kept in the summary, in (0,1]
	MaxBullets    int     // cap on bullet count; zero disables bullets
	EnableSummary bool
	EnableBullets bool
	EnableIntent  bool
}

// DefaultConfig enables every stage with the tuned defaults.
func DefaultConfig() Config {
	return Config{
		SummaryRatio:  0.3,
		MaxBullets:    20,
		EnableSummary: true,
		EnableBullets: true,
		EnableIntent:  true,
	}
}

// Result is the immutable outcome of one Document+Config analysis.
type Result struct {
	Summary       string        `json:"summary,omitempty"`
	Bullets       []string      `json:"bullets,omitempty"`
	Intent        intent.Result `json:"intent"`
	SentenceCount int           `json:"sentence_count"`
	CharCount     int           `json:"char_count"`
}

// Pipeline sequences the analysis stages with a fixed lexicon and
// scoring weights.
type Pipeline struct {
	classifier *intent.Classifier
	weights    score.Weights
}

// New builds a pipeline around a prepared classifier.
func New(classifier *intent.Classifier, weights score.Weights) *Pipeline {
	return &Pipeline{classifier: classifier, weights: weights}
}

// Analyze validates the request and runs the enabled stages.
// Segmentation and scoring always run; both the summary selector and
// the intent classifier consume their output.
func (p *Pipeline) Analyze(doc Document, cfg Config) (Result, error) {
	if err := validate(doc, cfg); err != nil {
		return Result{}, err
	}

	sentences, err := segment.Segment(doc.Text, doc.Language)
	if err != nil {
		return Result{}, err
	}

	matcher := p.classifier.Matcher(doc.Language)
	sentences = score.Score(sentences, matcher, p.weights)

	res := Result{
		SentenceCount: len(sentences),
		CharCount:     utf8.RuneCountInString(doc.Text),
		Intent:        intent.Result{Category: intent.Unclassified},
	}
	if cfg.EnableSummary {
		res.Summary = summary.SelectSummary(sentences, cfg.SummaryRatio)
	}
	if cfg.EnableBullets {
		res.Bullets = summary.SelectBullets(sentences, cfg.MaxBullets)
	}
	if cfg.EnableIntent {
		res.Intent = p.classifier.Classify(doc.Text, doc.Language)
	}
	return res, nil
}

func validate(doc Document, cfg Config) error {
	if _, err := language.Parse(string(doc.Language)); err != nil {
		return err
	}
	if chars := utf8.RuneCountInString(doc.Text); chars > MaxDocumentChars {
		return &TooLargeError{Chars: chars}
	}
	if cfg.SummaryRatio <= 0 || cfg.SummaryRatio > 1 {
		return &ConfigError{Reason: fmt.Sprintf("summary_ratio %v is outside (0,1]", cfg.SummaryRatio)}
	}
	if cfg.MaxBullets < 0 {
		return &ConfigError{Reason: fmt.Sprintf("max_bullets %d is negative", cfg.MaxBullets)}
	}
	return nil
}
