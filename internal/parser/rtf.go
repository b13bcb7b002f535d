package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RTFParser handles RTF files with a small control-word stripper.
// Formatting is discarded; group destinations that carry no document
// text (font tables, style sheets, embedded images) are skipped whole.
type RTFParser struct{}

// skipDestinations are RTF group destinations whose content is not
// document text.
var skipDestinations = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"header":     true,
	"footer":     true,
	"footnote":   true,
}

func (p *RTFParser) Parse(r io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(string(data), `{\rtf`) {
		return "", fmt.Errorf("not an rtf document")
	}

	var out strings.Builder
	depth := 0
	skipUntil := -1 // group depth at which skipping began, -1 when not skipping

	i := 0
	for i < len(data) {
		c := data[i]
		switch c {
		case '{':
			depth++
			i++
		case '}':
			depth--
			if skipUntil >= 0 && depth < skipUntil {
				skipUntil = -1
			}
			i++
		case '\\':
			word, param, hasParam, next := readControl(data, i+1)
			i = next
			if skipUntil >= 0 {
				continue
			}
			switch word {
			case "par", "line", "sect", "page":
				out.WriteString("\n")
			case "tab", "cell":
				out.WriteString(" ")
			case "\\", "{", "}":
				out.WriteString(word) // escaped literal
			case "u":
				if hasParam {
					n := param
					if n < 0 {
						n += 65536
					}
					out.WriteRune(rune(n))
					// The character after \uN is the ANSI fallback;
					// consume it so it is not emitted twice.
					i = skipUnicodeFallback(data, i)
				}
			case "'":
				if i+1 < len(data) {
					if b, err := strconv.ParseUint(string(data[i:i+2]), 16, 8); err == nil {
						out.WriteRune(rune(b)) // latin-1 byte
					}
					i += 2
				}
			case "*":
				// \* marks an unknown destination group.
				skipUntil = depth
			default:
				if skipDestinations[word] {
					skipUntil = depth
				}
			}
		default:
			if skipUntil < 0 && c != '\r' && c != '\n' {
				out.WriteByte(c)
			}
			i++
		}
	}

	return CleanText(out.String()), nil
}

// readControl parses the control word starting at pos (just past the
// backslash). It returns the word, its numeric parameter if present,
// and the index of the first byte after the control.
func readControl(data []byte, pos int) (word string, param int, hasParam bool, next int) {
	if pos < len(data) {
		c := data[pos]
		// Control symbols: a single non-alphabetic character.
		if c == '\'' || c == '*' || c == '\\' || c == '{' || c == '}' || c == '~' || c == '-' || c == '_' {
			if c == '~' {
				return "tab", 0, false, pos + 1 // non-breaking space
			}
			return string(c), 0, false, pos + 1
		}
	}

	start := pos
	for pos < len(data) && isASCIILetter(data[pos]) {
		pos++
	}
	word = string(data[start:pos])

	numStart := pos
	if pos < len(data) && (data[pos] == '-' || isASCIIDigit(data[pos])) {
		pos++
		for pos < len(data) && isASCIIDigit(data[pos]) {
			pos++
		}
		if n, err := strconv.Atoi(string(data[numStart:pos])); err == nil {
			param = n
			hasParam = true
		}
	}

	// A single trailing space is part of the control word.
	if pos < len(data) && data[pos] == ' ' {
		pos++
	}
	return word, param, hasParam, pos
}

// skipUnicodeFallback consumes the ANSI fallback character that
// follows a \uN control (either a plain byte or a \'hh escape).
func skipUnicodeFallback(data []byte, pos int) int {
	if pos < len(data) && data[pos] == '\\' && pos+3 < len(data) && data[pos+1] == '\'' {
		return pos + 4
	}
	if pos < len(data) && data[pos] != '\\' && data[pos] != '{' && data[pos] != '}' {
		return pos + 1
	}
	return pos
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
