package engine

import "github.com/mes-labs/receipt-extractor/constants"

// fieldPrompts maps each field label to the canned instruction shown when the
// caller asks a human to fill the field in.
var fieldPrompts = map[string]string{
	constants.LabelBusinessRegNo: "사업자번호를 입력해 주세요. 예: 123-45-67890",
	constants.LabelTradeDate:     "거래일자를 입력해 주세요. 예: 2024-01-15",
	constants.LabelAmount:        "결제금액을 입력해 주세요. 예: 32,000",
	constants.LabelMerchantName:  "가맹점명을 입력해 주세요.",
	constants.LabelMerchantTel:   "가맹점 전화번호를 입력해 주세요. 예: 02-1234-5678",
}

// PromptFor returns the canned prompt for a field label. Unknown labels fall
// back to the caller-supplied instruction, or failing that the label itself.
func PromptFor(label, fallback string) string {
	if p, ok := fieldPrompts[label]; ok {
		return p
	}
	if fallback != "" {
		return fallback
	}
	return label
}

// AllPrompts returns a copy of the full label→prompt vocabulary.
func AllPrompts() map[string]string {
	out := make(map[string]string, len(fieldPrompts))
	for label, p := range fieldPrompts {
		out[label] = p
	}
	return out
}

// MissingFieldPrompts builds the label→prompt map for every field the result
// still needs from the user.
func MissingFieldPrompts(res *Result) map[string]string {
	prompts := make(map[string]string, len(res.MissingFields))
	for _, label := range res.MissingFields {
		prompts[label] = PromptFor(label, "")
	}
	return prompts
}
