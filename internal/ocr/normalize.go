package ocr

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var reMultiSpace = regexp.MustCompile(`\s{2,}`)

// NormalizeText prepares one recognized token/line for matching: fold
// full-width forms (Korean OCR output mixes Ｗ１２３ with W123), apply NFKC,
// and collapse runs of whitespace. Conservative on purpose; the extraction
// patterns do the heavy lifting.
func NormalizeText(s string) string {
	if s == "" {
		return s
	}
	s = width.Fold.String(s)
	s = norm.NFKC.String(s)
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
