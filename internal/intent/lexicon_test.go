package intent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vaanilabs/docvani/internal/language"
)

func TestDefaultLexicon_Complete(t *testing.T) {
	lex := DefaultLexicon()
	for _, lang := range language.All {
		byCat, ok := lex[lang]
		if !ok {
			t.Fatalf("missing language %s", lang)
		}
		for _, cat := range Priority {
			if len(byCat[cat]) == 0 {
				t.Errorf("%s: missing keywords for %s", lang, cat)
			}
		}
	}
}

func TestLoadLexicon_File(t *testing.T) {
	const doc = `{
		"english": {"complaint": ["broken"], "request": ["please"], "update_notification": ["notice"], "appreciation": ["thanks"]},
		"hindi": {"complaint": ["शिकायत"], "request": ["कृपया"], "update_notification": ["सूचना"], "appreciation": ["धन्यवाद"]},
		"marathi": {"complaint": ["तक्रार"], "request": ["विनंती"], "update_notification": ["सूचना"], "appreciation": ["धन्यवाद"]},
		"tamil": {"complaint": ["புகார்"], "request": ["கோரிக்கை"], "update_notification": ["அறிவிப்பு"], "appreciation": ["நன்றி"]}
	}`

	path := filepath.Join(t.TempDir(), "lexicon.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}

	c, err := NewClassifier(lex)
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	got := c.Classify("The printer is broken again.", language.English)
	if got.Category != Complaint {
		t.Errorf("expected Complaint from custom lexicon, got %s", got.Category)
	}
}

func TestLoadLexicon_MissingFile(t *testing.T) {
	if _, err := LoadLexicon(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseLexicon_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "invalid json",
			doc:     `{`,
			wantErr: "unexpected end",
		},
		{
			name:    "unknown language",
			doc:     `{"klingon": {"complaint": ["x"], "request": ["x"], "update_notification": ["x"], "appreciation": ["x"]}}`,
			wantErr: "unknown language",
		},
		{
			name:    "unknown category",
			doc:     `{"english": {"complaint": ["x"], "request": ["x"], "update_notification": ["x"], "appreciation": ["x"], "gossip": ["x"]}}`,
			wantErr: "unknown category",
		},
		{
			name:    "missing category",
			doc:     `{"english": {"complaint": ["x"], "request": ["x"], "update_notification": ["x"]}}`,
			wantErr: "missing category",
		},
		{
			name:    "missing language",
			doc:     `{"english": {"complaint": ["x"], "request": ["x"], "update_notification": ["x"], "appreciation": ["x"]}}`,
			wantErr: "missing language",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLexicon([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
