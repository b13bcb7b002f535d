package intent

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vaanilabs/docvani/internal/language"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(DefaultLexicon())
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	return c
}

func TestClassify_Categories(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name string
		text string
		lang language.Language
		want Category
	}{
		{
			name: "complaint",
			text: "We are dissatisfied with the poor service. The issue remains unresolved and this problem must be fixed.",
			lang: language.English,
			want: Complaint,
		},
		{
			name: "request",
			text: "Please provide the required documents. We request your approval at the earliest.",
			lang: language.English,
			want: Request,
		},
		{
			name: "update",
			text: "We hereby inform all residents that the revised schedule takes effect Monday. This notice serves as a reminder.",
			lang: language.English,
			want: UpdateNotification,
		},
		{
			name: "appreciation",
			text: "Thank you for the excellent and helpful support. We truly appreciate your outstanding work.",
			lang: language.English,
			want: Appreciation,
		},
		{
			name: "hindi complaint",
			text: "हम सेवा से असंतुष्ट हैं। यह एक शिकायत है।",
			lang: language.Hindi,
			want: Complaint,
		},
		{
			name: "marathi complaint",
			text: "ही एक तक्रार आहे. सेवा वाईट आहे.",
			lang: language.Marathi,
			want: Complaint,
		},
		{
			name: "tamil complaint",
			text: "இது ஒரு புகார். சேவை மிகவும் மோசமான.",
			lang: language.Tamil,
			want: Complaint,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.text, tt.lang)
			if got.Category != tt.want {
				t.Errorf("expected %s, got %s (confidence %.2f, keywords %v)",
					tt.want, got.Category, got.Confidence, got.Keywords)
			}
			if got.Confidence <= 0 || got.Confidence > 1 {
				t.Errorf("confidence out of range: %v", got.Confidence)
			}
			if got.Explanation == "" {
				t.Error("expected non-empty explanation")
			}
		})
	}
}

func TestClassify_Unclassified(t *testing.T) {
	c := newTestClassifier(t)

	for _, text := range []string{
		"The sky is blue over the hills today.",
		"",
	} {
		got := c.Classify(text, language.English)
		if got.Category != Unclassified {
			t.Errorf("Classify(%q): expected Unclassified, got %s", text, got.Category)
		}
		if got.Confidence != 0 {
			t.Errorf("Classify(%q): expected confidence 0, got %v", text, got.Confidence)
		}
	}
}

func TestClassify_TieBreakPriority(t *testing.T) {
	c := newTestClassifier(t)

	// One complaint keyword and one request keyword tie; the fixed
	// priority order resolves the tie in favor of Complaint.
	got := c.Classify("There is an issue. Please look into it.", language.English)
	if got.Category != Complaint {
		t.Errorf("expected Complaint to win the tie, got %s", got.Category)
	}
	if got.Confidence != 0.5 {
		t.Errorf("expected confidence 0.5 for an even split, got %v", got.Confidence)
	}
}

func TestClassify_ConfidenceIsWinnerShare(t *testing.T) {
	c := newTestClassifier(t)

	// Two complaint keywords against one request and one appreciation.
	got := c.Classify("Thank you. Please fix this issue.", language.English)
	if got.Category != Complaint {
		t.Fatalf("expected Complaint, got %s", got.Category)
	}
	if got.Confidence != 0.5 {
		t.Errorf("expected confidence 0.5, got %v", got.Confidence)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify("THANK YOU FOR THE EXCELLENT SUPPORT.", language.English)
	if got.Category != Appreciation {
		t.Errorf("expected Appreciation for upper-cased text, got %s", got.Category)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	c := newTestClassifier(t)

	text := "Please fix this issue. Thank you for the update and the notice."
	a := c.Classify(text, language.English)
	for i := 0; i < 10; i++ {
		b := c.Classify(text, language.English)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("run %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestClassify_ExplanationMentionsKeywords(t *testing.T) {
	c := newTestClassifier(t)

	got := c.Classify("We are grateful for your excellent support.", language.English)
	if got.Category != Appreciation {
		t.Fatalf("expected Appreciation, got %s", got.Category)
	}
	if !strings.Contains(got.Explanation, "grateful") {
		t.Errorf("expected explanation to mention matched keyword, got %q", got.Explanation)
	}
	if !strings.Contains(got.Explanation, "with high confidence") {
		t.Errorf("expected high-confidence phrasing, got %q", got.Explanation)
	}
}

func TestMatcher_HasAny(t *testing.T) {
	c := newTestClassifier(t)
	m := c.Matcher(language.English)

	if !m.HasAny("please respond soon") {
		t.Error("expected keyword hit")
	}
	if m.HasAny("zebras wander freely") {
		t.Error("expected no keyword hit")
	}
}

func TestConfidencePhrase(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.95, "with high confidence"},
		{0.81, "with high confidence"},
		{0.8, "with moderate confidence"},
		{0.61, "with moderate confidence"},
		{0.6, "with low confidence"},
		{0.1, "with low confidence"},
	}
	for _, tt := range tests {
		if got := confidencePhrase(tt.confidence); got != tt.want {
			t.Errorf("confidencePhrase(%v): expected %q, got %q", tt.confidence, got, tt.want)
		}
	}
}
