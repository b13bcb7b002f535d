// Package export renders completed analysis results as CSV records or
// formatted PDF reports.
package export

import (
	"time"

	"github.com/vaanilabs/docvani/internal/analyze"
	"github.com/vaanilabs/docvani/internal/language"
)

// Record is one exportable analysis outcome: the result plus the
// document metadata the caller supplies. The timestamp comes from the
// caller, not from the exporter.
type Record struct {
	DocID     string
	Filename  string
	Language  language.Language
	Text      string // extracted document text, used for preview and counts
	Result    analyze.Result
	Timestamp time.Time
}
