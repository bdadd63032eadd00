package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingSettlement is a remotely submitted, batched settlement proposal.
// It is inert data until an administrator approves or rejects it; both
// transitions are terminal.
type PendingSettlement struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Number     uint64    `gorm:"uniqueIndex;not null" json:"number"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	Customer   Customer  `json:"customer,omitempty"`

	Orders          []PendingSettlementOrder   `json:"orders"`
	DiscountCascade []DiscountCascadeEntry     `gorm:"foreignKey:PendingSettlementID" json:"discount_cascade"`
	Payments        []PendingSettlementPayment `json:"payments"`
	Attachments     []PendingAttachment        `json:"attachments"`

	OriginalTotal       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"original_total"`
	ReturnAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"return_amount"`
	ReturnJustification *string         `gorm:"type:text" json:"return_justification,omitempty"`
	TotalProposed       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_proposed"`

	Status        string  `gorm:"type:enum('pending','approved','rejected');default:'pending'" json:"status"`
	SubmitterType string  `gorm:"type:enum('representative','customer');not null" json:"submitter_type"`
	SubmitterID   *uint   `json:"submitter_id,omitempty"`
	Note          *string `gorm:"type:text" json:"note,omitempty"`

	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	ReviewerID      *uint      `json:"reviewer_id,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type PendingSettlementOrder struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	PendingSettlementID uuid.UUID `gorm:"type:char(36);index;not null" json:"-"`
	OrderID             uint      `gorm:"not null" json:"order_id"`
	Order               Order     `json:"order,omitempty"`
}

// DiscountCascadeEntry is one step of an ordered discount sequence applied
// to the proposal's original total before comparison with the tender.
type DiscountCascadeEntry struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	PendingSettlementID uuid.UUID       `gorm:"type:char(36);index;not null" json:"-"`
	Position            int             `gorm:"not null" json:"position"`
	Type                string          `gorm:"type:enum('fixed','percent');not null" json:"type"`
	Value               decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"value"`
}

type PendingSettlementPayment struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	PendingSettlementID uuid.UUID       `gorm:"type:char(36);index;not null" json:"-"`
	Method              string          `gorm:"type:enum('cash','check','transfer','card','credit');not null" json:"method"`
	Amount              decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
}

type PendingAttachment struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	PendingSettlementID uuid.UUID `gorm:"type:char(36);index;not null" json:"-"`
	ProofURL            string    `gorm:"size:500;not null" json:"proof_url"`
}

const (
	PendingStatusPending  = "pending"
	PendingStatusApproved = "approved"
	PendingStatusRejected = "rejected"
)

const (
	SubmitterRepresentative = "representative"
	SubmitterCustomer       = "customer"
)
