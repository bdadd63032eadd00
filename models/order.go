package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is a sale awaiting collection. The remaining balance is always
// derived, never stored: max(0, gross - discount - return - deposits - paid).
type Order struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Number     string   `gorm:"size:20;uniqueIndex;not null" json:"number"`
	CustomerID uint     `gorm:"not null;index" json:"customer_id"`
	Customer   Customer `json:"customer,omitempty"`

	GrossValue        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"gross_value"`
	DiscountType      string          `gorm:"type:enum('fixed','percent');default:'fixed'" json:"discount_type"`
	DiscountValue     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"discount_value"`
	ReturnAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"return_amount"`
	AmountPaid        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"amount_paid"`
	CommissionPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"commission_percent"`

	Deposits []Deposit `json:"deposits,omitempty"`

	// awaiting_confirmation is set by the dispatch process, never by this core.
	Status      string     `gorm:"type:enum('open','partial','paid','awaiting_confirmation');default:'open'" json:"status"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`

	// Version guards read-modify-write settlement updates.
	Version uint `gorm:"not null;default:1" json:"version"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

const (
	OrderStatusOpen         = "open"
	OrderStatusPartial      = "partial"
	OrderStatusPaid         = "paid"
	OrderStatusAwaitingConf = "awaiting_confirmation"
)

const (
	DiscountFixed   = "fixed"
	DiscountPercent = "percent"
)
