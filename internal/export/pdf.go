package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const previewChars = 300

// WritePDF renders a formatted analysis report for a single record:
// document information, a short preview, the summary, the ranked key
// points, and the intent analysis.
//
// The built-in PDF fonts are Latin-1 only, so body text passes through
// a transliteration filter; Indic-script characters outside Latin-1
// are replaced. CSV export carries the full UTF-8 text.
func WritePDF(w io.Writer, rec Record) error {
	pdf := gofpdf.New("P", "mm", "A4", "")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 15)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(0, 10, "Document Analysis", "", 0, "C", true, 0, "")
		pdf.Ln(16)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Multi-Language Document Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	chapterTitle(pdf, "Document Information")
	infoRow(pdf, "Document:", rec.Filename)
	infoRow(pdf, "Language:", rec.Language.Display())
	infoRow(pdf, "Character Count:", fmt.Sprintf("%d", rec.Result.CharCount))
	infoRow(pdf, "Analyzed:", rec.Timestamp.Format("2006-01-02 15:04:05 MST"))

	horizontalLine(pdf)
	chapterTitle(pdf, "Document Preview")
	preview := []rune(rec.Text)
	if len(preview) > previewChars {
		chapterBody(pdf, string(preview[:previewChars])+"...")
	} else {
		chapterBody(pdf, rec.Text)
	}

	if rec.Result.Summary != "" {
		horizontalLine(pdf)
		chapterTitle(pdf, "Document Summary")
		chapterBody(pdf, rec.Result.Summary)
	}

	if len(rec.Result.Bullets) > 0 {
		horizontalLine(pdf)
		chapterTitle(pdf, "Key Points")
		pdf.SetFont("Arial", "", 11)
		for _, b := range rec.Result.Bullets {
			pdf.CellFormat(6, 6, "-", "", 0, "R", false, 0, "")
			pdf.MultiCell(0, 6, latin1(b), "", "L", false)
			pdf.Ln(1)
		}
		pdf.Ln(4)
	}

	if rec.Result.Intent.Category != "" {
		horizontalLine(pdf)
		chapterTitle(pdf, "Document Intent Analysis")
		infoRow(pdf, "Classified Intent:", string(rec.Result.Intent.Category))
		infoRow(pdf, "Confidence:", fmt.Sprintf("%.2f", rec.Result.Intent.Confidence))
		pdf.Ln(3)
		chapterBody(pdf, rec.Result.Intent.Explanation)
	}

	horizontalLine(pdf)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 10, "Multi-Language Document Analysis System | Government/Legal Document Analysis", "", 1, "C", false, 0, "")

	return pdf.Output(w)
}

func chapterTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(200, 220, 255)
	pdf.CellFormat(0, 9, title, "", 1, "L", true, 0, "")
	pdf.Ln(4)
}

func chapterBody(pdf *gofpdf.Fpdf, body string) {
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 5, latin1(body), "", "L", false)
	pdf.Ln(4)
}

func infoRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, latin1(value), "", 1, "L", false, 0, "")
}

func horizontalLine(pdf *gofpdf.Fpdf) {
	pdf.Ln(1)
	w, _ := pdf.GetPageSize()
	pdf.Line(10, pdf.GetY(), w-10, pdf.GetY())
	pdf.Ln(3)
}

// translit maps common non-Latin-1 punctuation to ASCII equivalents.
var translit = map[rune]string{
	'•': "-",   // bullet
	'→': "->",  // right arrow
	'←': "<-",  // left arrow
	'’': "'",   // right single quote
	'‘': "'",   // left single quote
	'“': `"`,   // left double quote
	'”': `"`,   // right double quote
	'…': "...", // ellipsis
	'—': "-",   // em dash
	'–': "-",   // en dash
	'।': ".",   // danda
	'॥': ".",   // double danda
}

// latin1 converts text to the Latin-1 repertoire the core PDF fonts
// support, transliterating known punctuation and replacing the rest.
func latin1(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < 0x100:
			b.WriteRune(r)
		case translit[r] != "":
			b.WriteString(translit[r])
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
