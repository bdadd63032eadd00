package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementRecord is the immutable receipt of a completed settlement,
// direct or approved. Created once, never updated.
type SettlementRecord struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Number     uint64    `gorm:"uniqueIndex;not null" json:"number"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	OperatorID uint      `gorm:"not null" json:"operator_id"`

	// SourceRequestID links back to the pending settlement on the approval path.
	SourceRequestID *uuid.UUID `gorm:"type:char(36)" json:"source_request_id,omitempty"`

	TotalPaid    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_paid"`
	CreditUsed   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"credit_used"`
	CreditIssued decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"credit_issued"`

	Orders      []SettlementRecordOrder      `json:"orders"`
	Payments    []SettlementRecordPayment    `json:"payments"`
	Attachments []SettlementRecordAttachment `json:"attachments"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type SettlementRecordOrder struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	SettlementRecordID uuid.UUID       `gorm:"type:char(36);index;not null" json:"-"`
	OrderID            uint            `gorm:"not null" json:"order_id"`
	OrderNumber        string          `gorm:"size:20;not null" json:"order_number"`
	AmountApplied      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_applied"`
	BalanceAfter       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_after"`
}

type SettlementRecordPayment struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	SettlementRecordID uuid.UUID       `gorm:"type:char(36);index;not null" json:"-"`
	Method             string          `gorm:"type:enum('cash','check','transfer','card','credit');not null" json:"method"`
	Amount             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
}

type SettlementRecordAttachment struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	SettlementRecordID uuid.UUID `gorm:"type:char(36);index;not null" json:"-"`
	ProofURL           string    `gorm:"size:500;not null" json:"proof_url"`
}
