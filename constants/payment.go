package constants

// PaymentMethod is the canonical payment classification for a receipt.
type PaymentMethod string

// Stable values (these exact strings appear in the result JSON).
const (
	PaymentCard    PaymentMethod = "card"
	PaymentCash    PaymentMethod = "cash"
	PaymentAppPay  PaymentMethod = "app_pay"
	PaymentUnknown PaymentMethod = "unknown"
)
