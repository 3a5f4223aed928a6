package engine

import (
	"github.com/mes-labs/receipt-extractor/constants"
)

// hintConfidence is the score a payment hint guarantees once any hint class
// matches.
const hintConfidence = 0.7

// extractPaymentMethod tests the app-pay, card, and cash hint sets in that
// fixed order against the whole text. A later hit overwrites the label while
// confidence keeps the max seen so far. The order is load-bearing: it
// reproduces the sequential-overwrite behavior callers depend on.
func (e *Extractor) extractPaymentMethod(lines []Line) (constants.PaymentMethod, float64) {
	text := joinLines(lines)
	method := constants.PaymentUnknown
	var conf float64
	if reAppHint.MatchString(text) {
		method = constants.PaymentAppPay
		conf = hintConfidence
	}
	if reCardHint.MatchString(text) {
		method = constants.PaymentCard
		conf = max(conf, hintConfidence)
	}
	if reCashHint.MatchString(text) {
		method = constants.PaymentCash
		conf = max(conf, hintConfidence)
	}
	return method, conf
}
