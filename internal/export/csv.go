package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// csvHeader lists the exported columns, matching the report fields.
var csvHeader = []string{
	"Document",
	"Language",
	"Character Count",
	"Summary",
	"Key Points",
	"Intent",
	"Confidence",
	"Explanation",
	"Timestamp",
}

// WriteCSV renders records as UTF-8 CSV with a header row. Bullet
// points are joined into a single cell, one per line.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		bullets := make([]string, len(rec.Result.Bullets))
		for i, b := range rec.Result.Bullets {
			bullets[i] = "• " + b
		}

		row := []string{
			rec.Filename,
			rec.Language.Display(),
			fmt.Sprintf("%d", rec.Result.CharCount),
			rec.Result.Summary,
			strings.Join(bullets, "\n"),
			string(rec.Result.Intent.Category),
			fmt.Sprintf("%.2f", rec.Result.Intent.Confidence),
			rec.Result.Intent.Explanation,
			rec.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
