package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vaanilabs/docvani/internal/analyze"
	"github.com/vaanilabs/docvani/internal/language"
)

// analyzeRequest is the synchronous analysis request body. Language is
// optional; omitted or empty means "detect".
type analyzeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`

	SummaryRatio  *float64 `json:"summary_ratio,omitempty"`
	MaxBullets    *int     `json:"max_bullets,omitempty"`
	EnableSummary *bool    `json:"enable_summary,omitempty"`
	EnableBullets *bool    `json:"enable_bullets,omitempty"`
	EnableIntent  *bool    `json:"enable_intent,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	var lang language.Language
	detected := false
	if req.Language != "" {
		var err error
		lang, err = language.Parse(req.Language)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		lang = language.Detect(req.Text)
		detected = true
	}

	cfg := s.analysisConfig(req)
	doc := analyze.Document{Text: req.Text, Language: lang}

	res, err := s.pipeline.Analyze(doc, cfg)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"language":          lang,
		"language_detected": detected,
		"result":            res,
	})
}

// analysisConfig builds the per-request config from service defaults
// plus request overrides.
func (s *Server) analysisConfig(req analyzeRequest) analyze.Config {
	cfg := analyze.DefaultConfig()
	cfg.SummaryRatio = s.cfg.SummaryRatio
	cfg.MaxBullets = s.cfg.MaxBullets

	if req.SummaryRatio != nil {
		cfg.SummaryRatio = *req.SummaryRatio
	}
	if req.MaxBullets != nil {
		cfg.MaxBullets = *req.MaxBullets
	}
	if req.EnableSummary != nil {
		cfg.EnableSummary = *req.EnableSummary
	}
	if req.EnableBullets != nil {
		cfg.EnableBullets = *req.EnableBullets
	}
	if req.EnableIntent != nil {
		cfg.EnableIntent = *req.EnableIntent
	}
	return cfg
}

// writeAnalysisError maps pipeline failures to HTTP statuses. All are
// whole-request validation failures, so no retry semantics apply.
func writeAnalysisError(w http.ResponseWriter, err error) {
	var tooLarge *analyze.TooLargeError
	var cfgErr *analyze.ConfigError
	var unsupported *language.UnsupportedError

	switch {
	case errors.Is(err, analyze.ErrEmptyDocument):
		jsonError(w, "document contains no sentences", http.StatusBadRequest)
	case errors.As(err, &tooLarge):
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.As(err, &cfgErr):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &unsupported):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		jsonError(w, "analysis failed: "+err.Error(), http.StatusInternalServerError)
	}
}
