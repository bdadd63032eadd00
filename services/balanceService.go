package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"cobranca-api/models"
	"cobranca-api/utils"
)

var oneHundred = decimal.NewFromInt(100)

// BalanceBreakdown is the output of the balance calculator.
type BalanceBreakdown struct {
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	TotalDeposits   decimal.Decimal `json:"total_deposits"`
	AdjustedBalance decimal.Decimal `json:"adjusted_balance"`
}

// DiscountAmount resolves a fixed or percentage discount against the gross.
func DiscountAmount(gross decimal.Decimal, discountType string, value decimal.Decimal) decimal.Decimal {
	if discountType == models.DiscountPercent {
		return utils.Money(gross.Mul(value).Div(oneHundred))
	}
	return utils.Money(value)
}

// ComputeBalance derives the adjusted balance of an order snapshot:
// max(0, gross - discount - return - deposits - paid). Pure; re-running it
// on an unchanged snapshot always yields the same result.
func ComputeBalance(order *models.Order) BalanceBreakdown {
	discount := DiscountAmount(order.GrossValue, order.DiscountType, order.DiscountValue)

	deposits := decimal.Zero
	for _, d := range order.Deposits {
		deposits = deposits.Add(d.Amount)
	}
	deposits = utils.Money(deposits)

	adjusted := order.GrossValue.
		Sub(discount).
		Sub(order.ReturnAmount).
		Sub(deposits).
		Sub(order.AmountPaid)
	if adjusted.IsNegative() {
		adjusted = decimal.Zero
	}

	return BalanceBreakdown{
		DiscountAmount:  discount,
		TotalDeposits:   deposits,
		AdjustedBalance: utils.Money(adjusted),
	}
}

// ApplyCascade runs an ordered discount sequence against a gross total and
// returns the combined discount amount. Each percentage step applies to the
// running total left by the previous steps, not to the original gross.
func ApplyCascade(gross decimal.Decimal, entries []models.DiscountCascadeEntry) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}

	ordered := make([]models.DiscountCascadeEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	running := gross
	for _, e := range ordered {
		var step decimal.Decimal
		if e.Type == models.DiscountPercent {
			step = running.Mul(e.Value).Div(oneHundred)
		} else {
			step = e.Value
		}
		running = running.Sub(step)
		if running.IsNegative() {
			running = decimal.Zero
		}
	}

	return utils.Money(gross.Sub(running))
}
