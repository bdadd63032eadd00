package dtos

type CascadeEntryInput struct {
	Type  string `json:"type" binding:"required,oneof=fixed percent"`
	Value string `json:"value" binding:"required"`
}

type PendingSubmitInput struct {
	CustomerID          uint                `json:"customer_id" binding:"required"`
	OrderIDs            []uint              `json:"order_ids" binding:"required,min=1"`
	DiscountCascade     []CascadeEntryInput `json:"discount_cascade,omitempty"`
	ReturnAmount        *string             `json:"return_amount,omitempty"`
	ReturnJustification *string             `json:"return_justification,omitempty"`
	Payments            []PaymentInput      `json:"payments" binding:"required,min=1"`
	Attachments         []string            `json:"attachments" binding:"required,min=1"`
	Note                *string             `json:"note,omitempty"`
}

// ReviewUpdateInput carries reviewer edits. Nil fields are left untouched,
// non-nil fields replace the submitted values wholesale.
type ReviewUpdateInput struct {
	OrderIDs            *[]uint              `json:"order_ids,omitempty"`
	DiscountCascade     *[]CascadeEntryInput `json:"discount_cascade,omitempty"`
	ReturnAmount        *string              `json:"return_amount,omitempty"`
	ReturnJustification *string              `json:"return_justification,omitempty"`
	Payments            *[]PaymentInput      `json:"payments,omitempty"`
	Attachments         *[]string            `json:"attachments,omitempty"`
	Note                *string              `json:"note,omitempty"`
}

type RejectInput struct {
	Reason string `json:"reason"`
}
