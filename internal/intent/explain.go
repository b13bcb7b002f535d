package intent

import (
	"fmt"
	"strings"
)

// maxExplainKeywords caps how many matched keywords appear in the
// explanation text.
const maxExplainKeywords = 5

// categoryDescriptions gives the one-line reading of each category used
// in report explanations.
var categoryDescriptions = map[Category]string{
	Complaint:          "The document contains expressions of dissatisfaction or descriptions of problems that need to be addressed.",
	Request:            "The document is primarily asking for information, action, or consideration of a specific matter.",
	UpdateNotification: "The document provides information, updates, or notifications about policies, procedures, or events.",
	Appreciation:       "The document expresses gratitude, acknowledgment, or positive feedback.",
}

// explain assembles the human-readable classification rationale:
// category description, confidence phrasing, and detected keywords.
func explain(cat Category, confidence float64, keywords []string) string {
	var b strings.Builder
	b.WriteString(categoryDescriptions[cat])
	fmt.Fprintf(&b, " The document has been classified %s (%.2f).", confidencePhrase(confidence), confidence)
	if len(keywords) > 0 {
		fmt.Fprintf(&b, " Keywords detected: %s.", strings.Join(keywords, ", "))
	}
	return b.String()
}

func confidencePhrase(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "with high confidence"
	case confidence > 0.6:
		return "with moderate confidence"
	default:
		return "with low confidence"
	}
}
