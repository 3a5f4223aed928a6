package engine

import (
	"strconv"
	"strings"
)

// parseAmount turns a matched digit group (possibly with thousands commas)
// into an integer. A group that fails to parse simply does not count.
func parseAmount(group string) (int, error) {
	return strconv.Atoi(strings.ReplaceAll(group, ",", ""))
}

// extractAmount tries, in order: keyword match over the whole text, keyword
// match per line, then bare currency-suffixed numbers. When a keyword match
// succeeded, a refinement pass prefers a much larger bare total found
// elsewhere — taxi receipts often show a small keyword-adjacent number and
// the true total further down.
func (e *Extractor) extractAmount(lines []Line) (int, float64, bool) {
	var amount int
	var conf float64
	found := false

	// Whole-document keyword match carries a fixed synthetic confidence.
	if m := reAmountKeyword.FindStringSubmatch(joinLines(lines)); m != nil {
		if v, err := parseAmount(m[2]); err == nil {
			amount, conf, found = v, e.cfg.WholeTextConfidence, true
		}
	}

	if !found {
		for _, ln := range lines {
			m := reAmountKeyword.FindStringSubmatch(strings.ReplaceAll(ln.Text, " ", ""))
			if m == nil {
				continue
			}
			v, err := parseAmount(m[2])
			if err != nil {
				continue
			}
			if !found || ln.Confidence > conf {
				amount, conf = v, ln.Confidence
			}
			found = true
		}
	}

	if !found {
		// Bare candidates above the floor; highest confidence wins, value
		// breaks ties.
		for _, ln := range lines {
			for _, m := range reAmountBare.FindAllStringSubmatch(ln.Text, -1) {
				v, err := parseAmount(m[1])
				if err != nil || v <= e.cfg.BareAmountFloor {
					continue
				}
				if !found || ln.Confidence > conf || (ln.Confidence == conf && v > amount) {
					amount, conf, found = v, ln.Confidence, true
				}
			}
		}
		return amount, conf, found
	}

	// Refinement: replace only with a bare candidate that beats the current
	// amount by more than the configured ratio and clears the floor.
	for _, ln := range lines {
		for _, m := range reAmountBare.FindAllStringSubmatch(ln.Text, -1) {
			v, err := parseAmount(m[1])
			if err != nil {
				continue
			}
			if float64(v) > float64(amount)*e.cfg.RefineRatio && v > e.cfg.BareAmountFloor {
				amount, conf = v, ln.Confidence
			}
		}
	}
	return amount, conf, true
}
