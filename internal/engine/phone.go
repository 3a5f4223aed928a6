package engine

import "strings"

// extractTel scans every line for a phone-number shape. Confidence is the
// max across all matching lines; absence is not a warning — plenty of
// receipts simply have no phone number.
func (e *Extractor) extractTel(lines []Line) (string, float64, bool) {
	var tel string
	var conf float64
	found := false
	for _, ln := range lines {
		m := reTel.FindString(ln.Text)
		if m == "" {
			continue
		}
		tel = strings.ReplaceAll(m, " ", "-")
		if ln.Confidence > conf {
			conf = ln.Confidence
		}
		found = true
	}
	return tel, conf, found
}
