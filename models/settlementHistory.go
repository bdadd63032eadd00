package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementHistory is the append-only per-order audit trail. One row per
// settlement event; rows are never edited or deleted.
type SettlementHistory struct {
	ID      uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID uint      `gorm:"not null;index" json:"order_id"`
	Actor   string    `gorm:"size:100;not null" json:"actor"`

	// Methods is the comma-joined payment methods of the event.
	Methods      string          `gorm:"size:100" json:"methods"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreditUsed   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"credit_used"`
	CreditIssued decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"credit_issued"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance_after"`
	Note         *string         `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
