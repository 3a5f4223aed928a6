package engine

import (
	"log/slog"

	"github.com/mes-labs/receipt-extractor/constants"
)

// Warning texts, one per field the engine could not determine.
const (
	warnBizNo    = "사업자번호를 찾지 못했습니다."
	warnDate     = "거래일자를 찾지 못했습니다."
	warnAmount   = "결제금액(합계/총액)을 찾지 못했습니다."
	warnPayment  = "결제수단을 확정하지 못했습니다(카드/현금/앱결제)."
	warnMerchant = "가맹점명을 확정하지 못했습니다."
)

// Config holds the engine tunables. The amount floor and refinement ratio
// are hand-tuned; treat them as knobs, not derived values.
type Config struct {
	BareAmountFloor     int     // bare amount candidates must exceed this; default 1000
	RefineRatio         float64 // replace when a bare candidate exceeds amount*ratio; default 1.5
	WholeTextConfidence float64 // synthetic confidence for whole-document keyword matches; default 0.8
	MerchantScanLines   int     // how many top lines to consider for the merchant name; default 12
}

func (c *Config) applyDefaults() {
	if c.BareAmountFloor <= 0 {
		c.BareAmountFloor = 1000
	}
	if c.RefineRatio <= 0 {
		c.RefineRatio = 1.5
	}
	if c.WholeTextConfidence <= 0 {
		c.WholeTextConfidence = 0.8
	}
	if c.MerchantScanLines <= 0 {
		c.MerchantScanLines = 12
	}
}

// Extractor runs the per-field extraction chains over one line list.
// It holds no mutable state and is safe for concurrent use.
type Extractor struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.applyDefaults()
	return &Extractor{cfg: cfg, logger: logger}
}

// Extract fans out to every field extractor, assembles the result, and
// derives missing_fields / user_input_required. An empty line list is valid
// input and yields a result with every field unset.
func (e *Extractor) Extract(lines []Line) *Result {
	res := newResult()

	res.RawLines = make([]RawLine, 0, len(lines))
	for _, ln := range lines {
		res.RawLines = append(res.RawLines, RawLine{Text: ln.Text, Confidence: ln.Confidence})
	}

	if v, conf, ok := e.extractBizNo(lines); ok {
		res.BusinessRegNo = &v
		res.setConfidence(constants.FieldBusinessRegNo, conf)
	} else {
		res.Warnings = append(res.Warnings, warnBizNo)
	}

	if v, conf, ok := e.extractTradeDate(lines); ok {
		res.TradeDate = &v
		res.setConfidence(constants.FieldTradeDate, conf)
	} else {
		res.Warnings = append(res.Warnings, warnDate)
	}

	if v, conf, ok := e.extractAmount(lines); ok {
		res.Amount = &v
		res.setConfidence(constants.FieldAmount, conf)
	} else {
		res.Warnings = append(res.Warnings, warnAmount)
	}

	method, conf := e.extractPaymentMethod(lines)
	res.PaymentMethod = method
	res.setConfidence(constants.FieldPaymentMethod, conf)
	if method == constants.PaymentUnknown {
		res.Warnings = append(res.Warnings, warnPayment)
	}

	if v, conf, ok := e.extractMerchantName(lines); ok {
		res.Merchant.Name = &v
		res.setConfidence(constants.FieldMerchantName, conf)
	} else {
		res.Warnings = append(res.Warnings, warnMerchant)
	}

	if v, conf, ok := e.extractTel(lines); ok {
		res.Merchant.Tel = &v
		res.setConfidence(constants.FieldMerchantTel, conf)
	}

	res.MissingFields = missingFields(res)
	res.UserInputRequired = len(res.MissingFields) > 0

	e.logger.Debug("extraction complete",
		"lines", len(lines),
		"warnings", len(res.Warnings),
		"missing_fields", len(res.MissingFields),
	)
	return res
}

// missingFields maps unset required fields to their human-readable labels,
// in the fixed label order.
func missingFields(res *Result) []string {
	missing := make([]string, 0, len(constants.RequiredLabels))
	if res.BusinessRegNo == nil {
		missing = append(missing, constants.LabelBusinessRegNo)
	}
	if res.TradeDate == nil {
		missing = append(missing, constants.LabelTradeDate)
	}
	if res.Amount == nil {
		missing = append(missing, constants.LabelAmount)
	}
	if res.Merchant.Name == nil {
		missing = append(missing, constants.LabelMerchantName)
	}
	return missing
}
