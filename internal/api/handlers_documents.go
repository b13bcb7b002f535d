package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vaanilabs/docvani/internal/analyze"
	"github.com/vaanilabs/docvani/internal/export"
	"github.com/vaanilabs/docvani/internal/language"
	"github.com/vaanilabs/docvani/internal/parser"
	"github.com/vaanilabs/docvani/internal/pipeline"
)

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	// Limit total request size; extra 1MB covers form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	// Language is optional on uploads; the worker detects it from the
	// extracted text when absent.
	var lang language.Language
	if tag := r.FormValue("language"); tag != "" {
		lang, err = language.Parse(tag)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	cfg := analyze.DefaultConfig()
	cfg.SummaryRatio = s.cfg.SummaryRatio
	cfg.MaxBullets = s.cfg.MaxBullets
	if v := r.FormValue("summary_ratio"); v != "" {
		ratio, err := strconv.ParseFloat(v, 64)
		if err != nil {
			jsonError(w, "invalid summary_ratio: "+v, http.StatusBadRequest)
			return
		}
		cfg.SummaryRatio = ratio
	}
	if v := r.FormValue("max_bullets"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, "invalid max_bullets: "+v, http.StatusBadRequest)
			return
		}
		cfg.MaxBullets = n
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewJobID(),
		DocID:     pipeline.ContentHashHex(data)[:16],
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)
	job.SetConfig(cfg)
	if lang != "" {
		job.SetLanguage(lang, false)
	}

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"doc_id":   job.DocID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.exportRecord(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="document_analysis_results_%s.csv"`, rec.Language))
	if err := export.WriteCSV(w, []export.Record{rec}); err != nil {
		s.log.Error("csv export failed", "doc_id", rec.DocID, "error", err)
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.exportRecord(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="document_analysis_report_%s.pdf"`, rec.Language))
	if err := export.WritePDF(w, rec); err != nil {
		s.log.Error("pdf export failed", "doc_id", rec.DocID, "error", err)
	}
}

// exportRecord loads the completed job named in the URL and assembles
// its export record. On failure it writes the error response and
// returns ok=false.
func (s *Server) exportRecord(w http.ResponseWriter, r *http.Request) (export.Record, bool) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return export.Record{}, false
	}
	text, res, ok := job.Result()
	if !ok {
		jsonError(w, "job has no result yet", http.StatusConflict)
		return export.Record{}, false
	}
	snap := job.Snapshot()
	return export.Record{
		DocID:     snap.DocID,
		Filename:  snap.Filename,
		Language:  snap.Language,
		Text:      text,
		Result:    res,
		Timestamp: time.Now(),
	}, true
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
