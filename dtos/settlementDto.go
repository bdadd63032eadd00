package dtos

// PaymentInput is one line of a payment breakdown. Method "credit" draws on
// the customer's credit ledger instead of fresh tender.
type PaymentInput struct {
	Method string  `json:"method" binding:"required"`
	Amount float64 `json:"amount"`
}

type DirectSettlementInput struct {
	OrderID  uint           `json:"order_id" binding:"required"`
	Payments []PaymentInput `json:"payments" binding:"required,min=1"`

	// Discount/return overrides arrive as strings straight from the form;
	// unparsable values fall back to zero instead of rejecting the request.
	DiscountType  *string `json:"discount_type,omitempty"`
	DiscountValue *string `json:"discount_value,omitempty"`
	ReturnAmount  *string `json:"return_amount,omitempty"`

	Attachments []string `json:"attachments,omitempty"`
	Note        *string  `json:"note,omitempty"`
}

type DepositInput struct {
	Method   string  `json:"method" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	ProofURL *string `json:"proof_url,omitempty"`
}

type OrderCreateInput struct {
	Number            string  `json:"number" binding:"required"`
	CustomerID        uint    `json:"customer_id" binding:"required"`
	GrossValue        float64 `json:"gross_value" binding:"required"`
	DiscountType      *string `json:"discount_type,omitempty"`
	DiscountValue     *string `json:"discount_value,omitempty"`
	CommissionPercent *string `json:"commission_percent,omitempty"`
}
