package engine

import "unicode/utf8"

// extractMerchantName takes the first line near the top of the receipt that
// is neither boilerplate nor too short, verbatim.
func (e *Extractor) extractMerchantName(lines []Line) (string, float64, bool) {
	limit := e.cfg.MerchantScanLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, ln := range lines[:limit] {
		if reMerchantExclude.MatchString(ln.Text) {
			continue
		}
		if utf8.RuneCountInString(ln.Text) < 2 {
			continue
		}
		return ln.Text, ln.Confidence, true
	}
	return "", 0, false
}
