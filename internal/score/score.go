// Package score computes per-sentence importance scores from lexical
// features of the document itself. No external corpus is consulted, so
// identical documents always receive identical scores.
package score

import (
	"sort"

	"github.com/vaanilabs/docvani/internal/intent"
	"github.com/vaanilabs/docvani/internal/segment"
)

// Weights are the tunable scoring coefficients. Zero values are not
// meaningful; start from DefaultWeights.
type Weights struct {
	// TermFrequency scales the mean document-level term frequency of
	// the sentence's tokens, the centrality signal.
	TermFrequency float64

	// KeywordBonus is added when the sentence contains any intent
	// lexicon keyword. Such sentences are often summary-worthy.
	KeywordBonus float64

	// PositionMultiplier is applied to the first and last sentences.
	// Government and legal documents front- and back-load their key
	// statements.
	PositionMultiplier float64

	// LengthPenalty is applied to sentences whose token count falls
	// outside [ShortRatio, LongRatio] times the document median.
	LengthPenalty float64
	ShortRatio    float64
	LongRatio     float64
}

// DefaultWeights returns the coefficients validated against the test
// scenarios. They are starting points for tuning, not ground truth.
func DefaultWeights() Weights {
	return Weights{
		TermFrequency:      1.0,
		KeywordBonus:       0.2,
		PositionMultiplier: 1.5,
		LengthPenalty:      0.7,
		ShortRatio:         0.5,
		LongRatio:          2.0,
	}
}

// Hinter reports whether a sentence contains intent lexicon keywords.
// *intent.Matcher satisfies it.
type Hinter interface {
	HasAny(text string) bool
}

var _ Hinter = (*intent.Matcher)(nil)

// Score populates the Score field of each sentence in place and
// returns the same slice, in the same order. hinter may be nil, in
// which case the keyword bonus is skipped.
func Score(sentences []segment.Sentence, hinter Hinter, w Weights) []segment.Sentence {
	if len(sentences) == 0 {
		return sentences
	}

	// Document-wide term frequencies, normalized by total token count.
	freq := make(map[string]int)
	total := 0
	for i := range sentences {
		for _, tok := range sentences[i].Tokens {
			freq[tok]++
			total++
		}
	}

	median := medianTokenCount(sentences)

	for i := range sentences {
		s := &sentences[i]

		var tf float64
		if total > 0 && len(s.Tokens) > 0 {
			var sum float64
			for _, tok := range s.Tokens {
				sum += float64(freq[tok]) / float64(total)
			}
			tf = sum / float64(len(s.Tokens))
		}

		sc := w.TermFrequency * tf
		if hinter != nil && hinter.HasAny(s.Text) {
			sc += w.KeywordBonus
		}
		if i == 0 || i == len(sentences)-1 {
			sc *= w.PositionMultiplier
		}
		if median > 0 {
			ratio := float64(len(s.Tokens)) / median
			if ratio < w.ShortRatio || ratio > w.LongRatio {
				sc *= w.LengthPenalty
			}
		}
		s.Score = sc
	}
	return sentences
}

func medianTokenCount(sentences []segment.Sentence) float64 {
	counts := make([]int, len(sentences))
	for i := range sentences {
		counts[i] = len(sentences[i].Tokens)
	}
	sort.Ints(counts)
	mid := len(counts) / 2
	if len(counts)%2 == 1 {
		return float64(counts[mid])
	}
	return float64(counts[mid-1]+counts[mid]) / 2
}
