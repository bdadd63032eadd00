package utils

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cobranca-api/models"
)

// CreateSettlementHistory appends one audit row for a settlement event.
// History rows are insert-only; nothing in the app updates or deletes them.
func CreateSettlementHistory(
	db *gorm.DB,
	orderID uint,
	actor string,
	methods string,
	amount decimal.Decimal,
	creditUsed decimal.Decimal,
	creditIssued decimal.Decimal,
	balanceAfter decimal.Decimal,
	note *string,
) error {
	entry := models.SettlementHistory{
		ID:           uuid.New(),
		OrderID:      orderID,
		Actor:        actor,
		Methods:      methods,
		Amount:       amount,
		CreditUsed:   creditUsed,
		CreditIssued: creditIssued,
		BalanceAfter: balanceAfter,
		Note:         note,
	}

	return db.Create(&entry).Error
}
