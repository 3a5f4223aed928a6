package engine

import (
	"fmt"
	"strconv"
)

// extractTradeDate keeps the date match from the highest-confidence line,
// first occurrence winning ties, normalized to YYYY-MM-DD.
func (e *Extractor) extractTradeDate(lines []Line) (string, float64, bool) {
	var best string
	var conf float64
	found := false
	for _, ln := range lines {
		m := reDate.FindStringSubmatch(ln.Text)
		if m == nil {
			continue
		}
		month, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		day, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		if !found || ln.Confidence > conf {
			best = fmt.Sprintf("%s-%02d-%02d", m[1], month, day)
			conf = ln.Confidence
			found = true
		}
	}
	return best, conf, found
}
