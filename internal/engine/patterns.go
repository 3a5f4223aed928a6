package engine

import (
	"regexp"
	"strings"
)

// Pattern library. Every matcher the extractors use lives in this table so
// each rule can be tested in isolation.
var (
	// reDate matches YYYY<sep>MM<sep>DD with ., -, / or the Korean
	// year/month words as separators and an optional trailing 일.
	reDate = regexp.MustCompile(`(20\d{2})\s*[.\-/년 ]\s*(\d{1,2})\s*[.\-/월 ]\s*(\d{1,2})\s*(?:일)?`)

	// reBizNo is the strict 3-2-5 business registration number shape.
	reBizNo = regexp.MustCompile(`\b(\d{3})[- ]?(\d{2})[- ]?(\d{5})\b`)

	// reBizNoLoose requires exactly one space or hyphen between groups;
	// used for the line-by-line fallback scan.
	reBizNoLoose = regexp.MustCompile(`(\d{3})[- ](\d{2})[- ](\d{5})`)

	// reAmountKeyword matches a total-ish keyword followed by a digit group.
	// 온 is a common OCR misread of the 원 currency glyph; [층총] covers the
	// same confusion on taxi fare labels.
	reAmountKeyword = regexp.MustCompile(`(합계|총액|결제금액|결제요금|승인금액|거래금액|미터\s*요금|[층총]\s*운임)\s*[:\-]?\s*([0-9,]+)\s*[원온]?`)

	// reAmountBare matches a digit group directly followed by a currency
	// token. Latin O included for the 원→O misread.
	reAmountBare = regexp.MustCompile(`([0-9,]+)\s*[원온O]`)

	// Payment-method hint sets.
	reCardHint = regexp.MustCompile(`(?i)(카드|신용|체크|승인|VISA|MASTER|AMEX)`)
	reCashHint = regexp.MustCompile(`(?i)(현금|현금영수증)`)
	reAppHint  = regexp.MustCompile(`(?i)(페이|PAY|간편결제|삼성페이|카카오페이|네이버페이|토스페이)`)

	// reTel matches domestic phone numbers: leading 0, 1-2 digit area code,
	// 3-4 digit middle group, 4 digit tail, hyphen/space tolerant.
	reTel = regexp.MustCompile(`\b0\d{1,2}[- ]?\d{3,4}[- ]?\d{4}\b`)

	// reMerchantExclude rejects boilerplate lines when picking a merchant name.
	reMerchantExclude = regexp.MustCompile(`(?i)(영수증|매출|합계|총액|승인|결제|금액|VAT|사업자|대표|부가세|카드|현금)`)

	reDigits    = regexp.MustCompile(`\d+`)
	reNonDigits = regexp.MustCompile(`\D`)
)

// joinLines concatenates all line texts newline-separated, for the matchers
// that run once over the whole document before per-line scanning.
func joinLines(lines []Line) string {
	parts := make([]string, 0, len(lines))
	for _, ln := range lines {
		parts = append(parts, ln.Text)
	}
	return strings.Join(parts, "\n")
}

// digitsOnly strips every non-digit rune.
func digitsOnly(s string) string {
	return reNonDigits.ReplaceAllString(s, "")
}
