package constants

// Confidence-map keys for the extraction result. Every result carries all of
// these, defaulting to 0.0.
const (
	FieldBusinessRegNo = "business_reg_no"
	FieldTradeDate     = "trade_date"
	FieldAmount        = "amount"
	FieldPaymentMethod = "payment_method"
	FieldMerchantName  = "merchant_name"
	FieldMerchantTel   = "merchant_tel"
)

// FieldKeys lists every confidence-map key in result order.
var FieldKeys = []string{
	FieldBusinessRegNo,
	FieldTradeDate,
	FieldAmount,
	FieldPaymentMethod,
	FieldMerchantName,
	FieldMerchantTel,
}

// Human-readable field labels. These are the vocabulary shared by warnings,
// missing_fields, the prompting contract, and field updates.
const (
	LabelBusinessRegNo = "사업자번호"
	LabelTradeDate     = "거래일자"
	LabelAmount        = "결제금액"
	LabelMerchantName  = "가맹점명"
	LabelMerchantTel   = "전화번호"
)

// RequiredLabels are the fields a caller must supply when extraction could not
// determine them. Phone and payment method are never required.
var RequiredLabels = []string{
	LabelBusinessRegNo,
	LabelTradeDate,
	LabelAmount,
	LabelMerchantName,
}

// UpdateLabels is the full 5-label vocabulary accepted by field updates.
var UpdateLabels = []string{
	LabelBusinessRegNo,
	LabelTradeDate,
	LabelAmount,
	LabelMerchantName,
	LabelMerchantTel,
}
