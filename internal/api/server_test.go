package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vaanilabs/docvani/internal/analyze"
	"github.com/vaanilabs/docvani/internal/config"
	"github.com/vaanilabs/docvani/internal/intent"
	"github.com/vaanilabs/docvani/internal/pipeline"
	"github.com/vaanilabs/docvani/internal/score"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T) *Server {
	t.Helper()

	classifier, err := intent.NewClassifier(intent.DefaultLexicon())
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	p := analyze.New(classifier, score.DefaultWeights())
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.Config{
		Port:           "0",
		APIKey:         testAPIKey,
		SummaryRatio:   0.3,
		MaxBullets:     20,
		WorkerCount:    2,
		MaxQueueSize:   10,
		MaxUploadBytes: 1 << 20,
		JobTTL:         time.Hour,
	}

	orch := pipeline.NewOrchestrator(cfg, p, log)
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)

	return NewServer(orch, p, log, cfg)
}

func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	return req
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"wrong key", "Bearer wrong", http.StatusUnauthorized},
		{"valid", "Bearer " + testAPIKey, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/stats/analysis", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestAnalyze(t *testing.T) {
	s := newTestServer(t)

	body := `{"text": "Notice to all residents. The water supply will be interrupted on Friday. Residents are advised to store water.", "language": "english"}`
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest("POST", "/api/analyze", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Language         string         `json:"language"`
		LanguageDetected bool           `json:"language_detected"`
		Result           analyze.Result `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Language != "english" || resp.LanguageDetected {
		t.Errorf("unexpected language fields: %+v", resp)
	}
	if resp.Result.SentenceCount != 3 {
		t.Errorf("expected 3 sentences, got %d", resp.Result.SentenceCount)
	}
	if resp.Result.Intent.Category != intent.UpdateNotification {
		t.Errorf("expected Update/Notification, got %s", resp.Result.Intent.Category)
	}
}

func TestAnalyze_DetectsLanguage(t *testing.T) {
	s := newTestServer(t)

	body := `{"text": "இது ஒரு புகார். சேவை மிகவும் மோசமாக உள்ளது."}`
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest("POST", "/api/analyze", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Language         string `json:"language"`
		LanguageDetected bool   `json:"language_detected"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Language != "tamil" || !resp.LanguageDetected {
		t.Errorf("expected detected tamil, got %+v", resp)
	}
}

func TestAnalyze_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty body", `{}`, http.StatusBadRequest},
		{"blank text", `{"text": "   ", "language": "english"}`, http.StatusBadRequest},
		{"unsupported language", `{"text": "Hello.", "language": "french"}`, http.StatusBadRequest},
		{"bad ratio", `{"text": "Hello.", "language": "english", "summary_ratio": 2.0}`, http.StatusBadRequest},
		{"negative bullets", `{"text": "Hello.", "language": "english", "max_bullets": -1}`, http.StatusBadRequest},
		{"malformed json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.ServeHTTP(rec, authedRequest("POST", "/api/analyze", strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func uploadRequest(t *testing.T, filename, content string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	mw.Close()

	req := authedRequest("POST", "/api/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadAndExport(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "notice.txt",
		"Please provide the documents. We request your approval.", nil))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var accepted struct {
		JobID   string `json:"job_id"`
		DocID   string `json:"doc_id"`
		PollURL string `json:"poll_url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &accepted); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(accepted.JobID) != 26 {
		t.Errorf("expected ulid job id, got %q", accepted.JobID)
	}
	if len(accepted.DocID) != 16 {
		t.Errorf("expected 16-char doc id, got %q", accepted.DocID)
	}

	// Poll until the worker finishes.
	var snap pipeline.JobSnapshot
	deadline := time.Now().Add(5 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatalf("job did not complete: %+v", snap)
		}
		poll := httptest.NewRecorder()
		s.ServeHTTP(poll, authedRequest("GET", accepted.PollURL, nil))
		if poll.Code != http.StatusOK {
			t.Fatalf("poll: expected 200, got %d", poll.Code)
		}
		if err := json.Unmarshal(poll.Body.Bytes(), &snap); err != nil {
			t.Fatalf("decode snapshot: %v", err)
		}
		if snap.Status == pipeline.StatusCompleted {
			break
		}
		if snap.Status == pipeline.StatusFailed {
			t.Fatalf("job failed: %s", snap.Error)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if snap.Result == nil || snap.Result.Intent.Category != intent.Request {
		t.Fatalf("unexpected result: %+v", snap.Result)
	}

	csvRec := httptest.NewRecorder()
	s.ServeHTTP(csvRec, authedRequest("GET", accepted.PollURL+"/export/csv", nil))
	if csvRec.Code != http.StatusOK {
		t.Fatalf("csv export: expected 200, got %d", csvRec.Code)
	}
	if ct := csvRec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("unexpected csv content type %q", ct)
	}
	if !strings.Contains(csvRec.Body.String(), "notice.txt") {
		t.Errorf("csv missing filename: %s", csvRec.Body.String())
	}

	pdfRec := httptest.NewRecorder()
	s.ServeHTTP(pdfRec, authedRequest("GET", accepted.PollURL+"/export/pdf", nil))
	if pdfRec.Code != http.StatusOK {
		t.Fatalf("pdf export: expected 200, got %d", pdfRec.Code)
	}
	if !bytes.HasPrefix(pdfRec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("pdf export does not start with a PDF signature")
	}
}

func TestUpload_UnsupportedType(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "malware.exe", "MZ", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestUpload_BadLanguage(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, uploadRequest(t, "a.txt", "Hello.", map[string]string{"language": "french"}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestJobStatus_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest("GET", "/api/jobs/01ARZ3NDEKTSV4RRFFQ69G5FAV", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestExport_NotReady(t *testing.T) {
	s := newTestServer(t)

	// A job that exists but can never produce a result: empty file
	// data fails analysis, and a failed job keeps no result.
	job := &pipeline.Job{
		ID:       pipeline.NewJobID(),
		Status:   pipeline.StatusQueued,
		Filename: "pending.txt",
	}
	if err := s.orchestrator.Submit(job); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest("GET", "/api/jobs/"+job.ID+"/export/csv", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestStats(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, authedRequest("GET", "/api/stats/analysis", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		QueueDepth int                    `json:"queue_depth"`
		Stats      pipeline.StatsSnapshot `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
