// Package summary selects scored sentences for the extractive summary
// and the ranked bullet list.
//
// The two outputs follow different, fixed ordering policies: summary
// sentences are re-sorted into original document order so the result
// reads as prose, while bullets stay in descending score order because
// they are an explicit key-point ranking.
package summary

import (
	"math"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/vaanilabs/docvani/internal/segment"
)

// SelectSummary picks the top ceil(ratio*n) sentences by score
// (minimum one, at most all), restores document order, and joins them
// into a single text.
func SelectSummary(sentences []segment.Sentence, ratio float64) string {
	if len(sentences) == 0 {
		return ""
	}

	keep := int(math.Ceil(ratio * float64(len(sentences))))
	if keep < 1 {
		keep = 1
	}
	if keep > len(sentences) {
		keep = len(sentences)
	}

	selected := topByScore(sentences, keep)
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Ordinal < selected[j].Ordinal
	})

	parts := lo.Map(selected, func(s segment.Sentence, _ int) string {
		return trimTrailingTerminators(s.Text)
	})
	return strings.Join(parts, " ")
}

// SelectBullets picks up to maxBullets sentences in descending score
// order. When maxBullets meets or exceeds the sentence count, every
// sentence is returned.
func SelectBullets(sentences []segment.Sentence, maxBullets int) []string {
	if len(sentences) == 0 || maxBullets <= 0 {
		return nil
	}
	keep := maxBullets
	if keep > len(sentences) {
		keep = len(sentences)
	}

	selected := topByScore(sentences, keep)
	return lo.Map(selected, func(s segment.Sentence, _ int) string {
		return s.Text
	})
}

// topByScore returns the keep highest-scoring sentences in descending
// score order. Equal scores are broken by document order, which keeps
// selection deterministic.
func topByScore(sentences []segment.Sentence, keep int) []segment.Sentence {
	ranked := make([]segment.Sentence, len(sentences))
	copy(ranked, sentences)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Ordinal < ranked[j].Ordinal
	})
	return ranked[:keep]
}

// trimTrailingTerminators collapses a run of trailing terminal
// punctuation to a single mark so joined summaries do not contain
// doubled periods.
func trimTrailingTerminators(s string) string {
	runes := []rune(s)
	end := len(runes)
	for end > 1 && isTerminal(runes[end-1]) && isTerminal(runes[end-2]) {
		end--
	}
	return string(runes[:end])
}

func isTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '।', '॥':
		return true
	}
	return false
}
