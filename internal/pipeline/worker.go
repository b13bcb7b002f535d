package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vaanilabs/docvani/internal/analyze"
	"github.com/vaanilabs/docvani/internal/language"
	"github.com/vaanilabs/docvani/internal/parser"
)

// Worker processes a single document job.
type Worker struct {
	pipeline *analyze.Pipeline
	log      *slog.Logger
	stats    *AnalysisStats

	pdfFallback bool
}

func NewWorker(p *analyze.Pipeline, log *slog.Logger, stats *AnalysisStats, pdfFallback bool) *Worker {
	return &Worker{
		pipeline:    p,
		log:         log,
		stats:       stats,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full parse+analyze pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.Fail("parsing", err.Error())
		return
	}
	if pdf, ok := p.(*parser.PDFParser); ok {
		pdf.FallbackPdftotext = w.pdfFallback
	}

	text, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail("parsing", fmt.Sprintf("parse: %s", err))
		return
	}

	// Phase 2: Language
	lang, known := job.Lang()
	if !known {
		lang = language.Detect(text)
		job.SetLanguage(lang, true)
		log.Info("detected language", "language", lang)
	}

	// Phase 3: Analyze
	job.SetStatus(StatusAnalyzing, "analyzing")
	doc := analyze.Document{
		Text:     text,
		Language: lang,
		Filename: job.Filename,
	}

	start := time.Now()
	res, err := w.pipeline.Analyze(doc, job.Config())
	w.stats.Record(time.Since(start).Milliseconds())
	if err != nil {
		log.Error("analysis failed", "error", err)
		job.Fail("analyzing", err.Error())
		return
	}

	job.SetResult(text, res)
	job.SetStatus(StatusCompleted, "done")
	log.Info("analysis complete",
		"sentences", res.SentenceCount,
		"chars", res.CharCount,
		"intent", res.Intent.Category,
	)
}
