package services

import (
	"github.com/shopspring/decimal"

	"cobranca-api/dtos"
	"cobranca-api/models"
	"cobranca-api/utils"
)

// PaymentEntry is one line of a payment breakdown with money-scale amount.
type PaymentEntry struct {
	Method string
	Amount decimal.Decimal
}

func PaymentEntriesFromInput(in []dtos.PaymentInput) []PaymentEntry {
	entries := make([]PaymentEntry, 0, len(in))
	for _, p := range in {
		entries = append(entries, PaymentEntry{
			Method: p.Method,
			Amount: utils.Money(decimal.NewFromFloat(p.Amount)),
		})
	}
	return entries
}

// SplitCreditEntries separates internal-credit lines from fresh tender.
// Credit lines are not cash; they become a draw on the credit ledger.
func SplitCreditEntries(entries []PaymentEntry) ([]PaymentEntry, decimal.Decimal) {
	var cash []PaymentEntry
	credit := decimal.Zero
	for _, e := range entries {
		if e.Method == models.MethodCredit {
			credit = credit.Add(e.Amount)
			continue
		}
		cash = append(cash, e)
	}
	return cash, credit
}

// AllocateProRata splits a total across weights, rounded to money scale.
// The final share is the exact remainder, so the pieces always sum back to
// the total. A zero weight sum sends everything to the first slot.
func AllocateProRata(total decimal.Decimal, weights []decimal.Decimal) []decimal.Decimal {
	n := len(weights)
	if n == 0 {
		return nil
	}

	shares := make([]decimal.Decimal, n)
	weightSum := decimal.Zero
	for _, w := range weights {
		weightSum = weightSum.Add(w)
	}

	if !weightSum.IsPositive() {
		shares[0] = utils.Money(total)
		for i := 1; i < n; i++ {
			shares[i] = decimal.Zero
		}
		return shares
	}

	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		share := utils.Money(total.Mul(weights[i]).Div(weightSum))
		shares[i] = share
		allocated = allocated.Add(share)
	}
	shares[n-1] = utils.Money(total.Sub(allocated))
	return shares
}

// AllocateEntries distributes every payment line across the orders by their
// balance share, preserving the per-method breakdown on each order.
func AllocateEntries(entries []PaymentEntry, weights []decimal.Decimal) [][]PaymentEntry {
	n := len(weights)
	if n == 0 {
		return nil
	}

	perOrder := make([][]PaymentEntry, n)
	for _, e := range entries {
		shares := AllocateProRata(e.Amount, weights)
		for i, share := range shares {
			if share.IsZero() {
				continue
			}
			perOrder[i] = append(perOrder[i], PaymentEntry{Method: e.Method, Amount: share})
		}
	}
	return perOrder
}
