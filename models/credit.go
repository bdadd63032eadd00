package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Credit is a standing balance owed back to a customer, created from
// overpayment and consumed whole-entry, oldest first, against later
// settlements. Once used, amount and consuming order never change.
type Credit struct {
	ID         uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	Number     uint64          `gorm:"uniqueIndex;not null" json:"number"`
	CustomerID uint            `gorm:"not null;index" json:"customer_id"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Origin     string          `gorm:"size:255" json:"origin"`

	Status         string     `gorm:"type:enum('available','used');default:'available'" json:"status"`
	ConsumingOrder *string    `gorm:"size:20" json:"consuming_order,omitempty"`
	ConsumedAt     *time.Time `json:"consumed_at,omitempty"`

	Version uint `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

const (
	CreditAvailable = "available"
	CreditUsed      = "used"
)
