package engine

import "strings"

// extractBizNo runs the 4-stage BRN fallback chain; first success wins.
func (e *Extractor) extractBizNo(lines []Line) (string, float64, bool) {
	chain := []stage[string]{
		bizNoStrictStage,
		bizNoKeywordStage,
		bizNoLooseStage,
		bizNoBareStage,
	}
	c, ok := runStages(lines, chain)
	if !ok {
		return "", 0, false
	}
	return c.value, c.conf, true
}

// formatBizNo slices the first 10 digits into the canonical 3-2-5 grouping.
func formatBizNo(digits string) string {
	return digits[:3] + "-" + digits[3:5] + "-" + digits[5:10]
}

// bizNoStrictStage searches the whole concatenated text for the strict 3-2-5
// shape. Confidence is the max over lines whose space-stripped text contains
// the space-stripped match.
func bizNoStrictStage(lines []Line) (candidate[string], bool) {
	m := reBizNo.FindStringSubmatch(joinLines(lines))
	if m == nil {
		return candidate[string]{}, false
	}
	needle := strings.ReplaceAll(m[0], " ", "")
	var conf float64
	for _, ln := range lines {
		if strings.Contains(strings.ReplaceAll(ln.Text, " ", ""), needle) && ln.Confidence > conf {
			conf = ln.Confidence
		}
	}
	return candidate[string]{value: m[1] + "-" + m[2] + "-" + m[3], conf: conf}, true
}

// bizNoKeywordStage looks for a 사업자…번호 label line and reads the number
// from the line immediately below it. Only the first labelled line counts;
// if it yields nothing usable the stage gives up rather than scanning on.
func bizNoKeywordStage(lines []Line) (candidate[string], bool) {
	for i := 0; i+1 < len(lines); i++ {
		txt := lines[i].Text
		if !strings.Contains(txt, "사업자") || !strings.Contains(txt, "번호") {
			continue
		}
		next := lines[i+1]
		if runs := reDigits.FindAllString(next.Text, -1); len(runs) > 0 && len(runs[0]) >= 10 {
			return candidate[string]{value: formatBizNo(runs[0]), conf: next.Confidence}, true
		}
		// Last resort: undo digit/letter confusions in the whole line.
		num := digitsOnly(correctDigitConfusions(next.Text))
		switch {
		case len(num) >= 10:
			return candidate[string]{value: formatBizNo(num), conf: next.Confidence}, true
		case len(num) >= 8:
			return candidate[string]{value: num, conf: next.Confidence}, true
		}
		break
	}
	return candidate[string]{}, false
}

// bizNoLooseStage scans line by line for 3-2-5 with a mandatory single
// space/hyphen separator; first match wins.
func bizNoLooseStage(lines []Line) (candidate[string], bool) {
	for _, ln := range lines {
		if m := reBizNoLoose.FindStringSubmatch(ln.Text); m != nil {
			return candidate[string]{value: m[1] + "-" + m[2] + "-" + m[3], conf: ln.Confidence}, true
		}
	}
	return candidate[string]{}, false
}

// bizNoBareStage takes the first line whose digits-only projection has at
// least 10 digits and slices it into 3-2-5.
func bizNoBareStage(lines []Line) (candidate[string], bool) {
	for _, ln := range lines {
		if num := digitsOnly(ln.Text); len(num) >= 10 {
			return candidate[string]{value: formatBizNo(num), conf: ln.Confidence}, true
		}
	}
	return candidate[string]{}, false
}
