package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Paragraph text and table cell text
// are both extracted, matching how government forms mix prose with
// tabular fields.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (string, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "docvani-docx-*.docx")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return "", fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var out strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			text := docxParagraphText(it)
			if text != "" {
				out.WriteString(text)
				out.WriteString("\n\n")
			}
		case *docx.Table:
			text := docxTableText(it)
			if text != "" {
				out.WriteString(text)
				out.WriteString("\n\n")
			}
		}
	}

	return CleanText(out.String()), nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func docxTableText(table *docx.Table) string {
	var buf strings.Builder
	for _, row := range table.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			var cellText strings.Builder
			for _, para := range cell.Paragraphs {
				if t := docxParagraphText(para); t != "" {
					if cellText.Len() > 0 {
						cellText.WriteString(" ")
					}
					cellText.WriteString(t)
				}
			}
			if cellText.Len() > 0 {
				cells = append(cells, cellText.String())
			}
		}
		if len(cells) > 0 {
			buf.WriteString(strings.Join(cells, " "))
			buf.WriteString("\n")
		}
	}
	return strings.TrimSpace(buf.String())
}
