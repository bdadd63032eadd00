package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deposit is a pre-payment ("sinal") recorded against a not-yet-settled
// order. Immutable once the order reaches paid.
type Deposit struct {
	ID       uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID  uint            `gorm:"not null;index" json:"order_id"`
	Method   string          `gorm:"type:enum('cash','check','transfer','card','credit');not null" json:"method"`
	Amount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	ProofURL *string         `gorm:"size:500" json:"proof_url,omitempty"`
	Consumed bool            `gorm:"not null;default:false" json:"consumed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

const (
	MethodCash     = "cash"
	MethodCheck    = "check"
	MethodTransfer = "transfer"
	MethodCard     = "card"
	MethodCredit   = "credit"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCash, MethodCheck, MethodTransfer, MethodCard, MethodCredit:
		return true
	}
	return false
}
