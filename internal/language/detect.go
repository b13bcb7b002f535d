package language

import (
	"github.com/abadojack/whatlanggo"
)

// Detect guesses the document language from its text. It is used when a
// request omits the language tag. Only the four supported languages are
// candidates; anything else falls back to English, which keeps the
// pipeline usable for mixed or ambiguous input.
func Detect(text string) Language {
	info := whatlanggo.Detect(text)
	switch info.Lang {
	case whatlanggo.Hin:
		return Hindi
	case whatlanggo.Mar:
		return Marathi
	case whatlanggo.Tam:
		return Tamil
	default:
		return English
	}
}
