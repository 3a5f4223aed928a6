package engine

import (
	"regexp"
	"strings"

	"github.com/mes-labs/receipt-extractor/constants"
)

// FieldUpdate maps a human-readable field label (the warnings vocabulary) to
// a user-supplied raw value. Consumed once, never stored.
type FieldUpdate map[string]string

// Confidence ceilings for human-confirmed values.
const (
	confirmedConfidence = 1.0
	// A BRN kept as-given (not reformattable to 3-2-5) gets slightly less.
	confirmedBizNoRawConfidence = 0.95
)

var reNonBizNoChars = regexp.MustCompile(`[^0-9-]`)

// ApplyUpdates merges user corrections into the result, normalizing each
// value the same way the extractors do and forcing confidence to the
// human-confirmed ceiling. Unknown labels are silently ignored. Afterwards
// missing_fields and user_input_required are cleared unconditionally; the
// caller re-derives them if it cares.
func (r *Result) ApplyUpdates(updates FieldUpdate) {
	// Results deserialized from external callers may lack the seeded maps.
	if r.Confidence == nil {
		r.Confidence = make(map[string]float64, len(constants.FieldKeys))
		for _, k := range constants.FieldKeys {
			r.Confidence[k] = 0.0
		}
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	for label, raw := range updates {
		switch label {
		case constants.LabelBusinessRegNo:
			stripped := reNonBizNoChars.ReplaceAllString(raw, "")
			if digits := digitsOnly(stripped); len(digits) == 10 {
				v := formatBizNo(digits)
				r.BusinessRegNo = &v
				r.setConfidence(constants.FieldBusinessRegNo, confirmedConfidence)
			} else {
				v := stripped
				r.BusinessRegNo = &v
				r.setConfidence(constants.FieldBusinessRegNo, confirmedBizNoRawConfidence)
			}
		case constants.LabelTradeDate:
			v := strings.ReplaceAll(raw, "/", "-")
			r.TradeDate = &v
			r.setConfidence(constants.FieldTradeDate, confirmedConfidence)
		case constants.LabelAmount:
			v, err := parseAmount(digitsOnly(raw))
			if err != nil {
				continue
			}
			r.Amount = &v
			r.setConfidence(constants.FieldAmount, confirmedConfidence)
		case constants.LabelMerchantName:
			v := raw
			r.Merchant.Name = &v
			r.setConfidence(constants.FieldMerchantName, confirmedConfidence)
		case constants.LabelMerchantTel:
			v := raw
			r.Merchant.Tel = &v
			r.setConfidence(constants.FieldMerchantTel, confirmedConfidence)
		}
	}
	r.MissingFields = nil
	r.UserInputRequired = false
}
