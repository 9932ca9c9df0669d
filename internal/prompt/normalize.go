package prompt

import "strings"

// ocrSymbols maps typographic symbols Tesseract emits for math and dashes to ASCII.
var ocrSymbols = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"—", "-",
)

// NormalizeOCRText rewrites known symbols to ASCII, then drops every rune >= 128.
// Substitution runs first because the replaced symbols are themselves non-ASCII.
func NormalizeOCRText(s string) string {
	s = ocrSymbols.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
