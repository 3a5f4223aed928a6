package engine

import (
	"math"

	"github.com/mes-labs/receipt-extractor/constants"
)

// Merchant groups the merchant-related fields of a result. Address is
// reserved for a future bounding-box-based refinement and stays nil.
type Merchant struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Tel     *string `json:"tel"`
}

// Result is the engine's output aggregate. The confidence map always carries
// every key in constants.FieldKeys, defaulting to 0.0.
type Result struct {
	TradeDate         *string                 `json:"trade_date"`
	Amount            *int                    `json:"amount"`
	Merchant          Merchant                `json:"merchant"`
	PaymentMethod     constants.PaymentMethod `json:"payment_method"`
	BusinessRegNo     *string                 `json:"business_reg_no"`
	Confidence        map[string]float64      `json:"confidence"`
	Warnings          []string                `json:"warnings"`
	MissingFields     []string                `json:"missing_fields"`
	UserInputRequired bool                    `json:"user_input_required"`
	RawLines          []RawLine               `json:"raw_lines,omitempty"`
}

func newResult() *Result {
	conf := make(map[string]float64, len(constants.FieldKeys))
	for _, k := range constants.FieldKeys {
		conf[k] = 0.0
	}
	return &Result{
		PaymentMethod: constants.PaymentUnknown,
		Confidence:    conf,
		Warnings:      []string{},
	}
}

// setConfidence records a field confidence rounded to 3 decimals.
func (r *Result) setConfidence(field string, v float64) {
	r.Confidence[field] = math.Round(v*1000) / 1000
}
