package language

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		tag  string
		want Language
	}{
		{"english", English},
		{"English", English},
		{"EN", English},
		{"  hindi ", Hindi},
		{"hi", Hindi},
		{"marathi", Marathi},
		{"mr", Marathi},
		{"tamil", Tamil},
		{"ta", Tamil},
	}
	for _, tt := range tests {
		got, err := Parse(tt.tag)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tt.tag, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q): expected %s, got %s", tt.tag, tt.want, got)
		}
	}
}

func TestParse_Unsupported(t *testing.T) {
	for _, tag := range []string{"", "french", "fr", "hin"} {
		_, err := Parse(tag)
		var ue *UnsupportedError
		if !errors.As(err, &ue) {
			t.Errorf("Parse(%q): expected UnsupportedError, got %v", tag, err)
			continue
		}
		if ue.Tag != tag {
			t.Errorf("Parse(%q): error carries tag %q", tag, ue.Tag)
		}
	}
}

func TestDisplay(t *testing.T) {
	if got := Hindi.Display(); got != "Hindi" {
		t.Errorf("expected Hindi, got %q", got)
	}
	if got := English.Display(); got != "English" {
		t.Errorf("expected English, got %q", got)
	}
}

func TestHasCase(t *testing.T) {
	if !English.HasCase() {
		t.Error("English script has case")
	}
	for _, lang := range []Language{Hindi, Marathi, Tamil} {
		if lang.HasCase() {
			t.Errorf("%s script has no case distinction", lang)
		}
	}
}

func TestSentenceTerminators(t *testing.T) {
	hasDanda := func(terms []rune) bool {
		for _, r := range terms {
			if r == '।' {
				return true
			}
		}
		return false
	}

	if !hasDanda(Hindi.SentenceTerminators()) {
		t.Error("Hindi terminators must include the danda")
	}
	if !hasDanda(Marathi.SentenceTerminators()) {
		t.Error("Marathi terminators must include the danda")
	}
	if hasDanda(English.SentenceTerminators()) {
		t.Error("English terminators must not include the danda")
	}
	if hasDanda(Tamil.SentenceTerminators()) {
		t.Error("Tamil terminators must not include the danda")
	}
}
