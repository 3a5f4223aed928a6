package engine

import "strings"

// ocrDigitSubst maps letters that OCR commonly confuses with digits to the
// digit they usually stand for. Applied only as a last resort in the BRN
// chain; the original line text is never modified.
var ocrDigitSubst = map[rune]rune{
	'O': '0', 'o': '0',
	'D': '3', 'd': '3',
	'l': '1', 'I': '1', 'i': '1', 'L': '1',
	'S': '5', 's': '5',
	'Z': '2', 'z': '2',
	'B': '8', 'b': '8',
	'A': '4', 'a': '4',
	'E': '3', 'e': '3',
	'G': '6', 'g': '6',
	'T': '7', 't': '7',
}

// correctDigitConfusions substitutes confusable letters with their digit
// counterparts, leaving every other rune untouched.
func correctDigitConfusions(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if d, ok := ocrDigitSubst[r]; ok {
			b.WriteRune(d)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
