package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cobranca-api/config"
	"cobranca-api/dtos"
	"cobranca-api/models"
	"cobranca-api/utils"
)

// Absolute tolerance for floating rounding when deciding whether a tender
// overshoots the adjusted balance.
var overpayTolerance = decimal.NewFromFloat(0.01)

type DiscountOverride struct {
	Type  string
	Value decimal.Decimal
}

// SettleInput is one settlement event against one order.
type SettleInput struct {
	Payments         []PaymentEntry
	CreditRequested  decimal.Decimal
	DiscountOverride *DiscountOverride
	ReturnOverride   *decimal.Decimal
	Actor            string
}

type SettleOutcome struct {
	OrderID      uint            `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	CashApplied  decimal.Decimal `json:"cash_applied"`
	CreditUsed   decimal.Decimal `json:"credit_used"`
	CreditIssued decimal.Decimal `json:"credit_issued"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Status       string          `json:"status"`
}

type SettlementService interface {
	SettleOrder(tx *gorm.DB, orderID uint, input SettleInput) (*SettleOutcome, error)
	SettleDirect(operatorID uint, actor string, input dtos.DirectSettlementInput) (*models.SettlementRecord, *SettleOutcome, []string, error)
}

type settlementService struct {
	credits CreditService
}

func NewSettlementService() SettlementService {
	return &settlementService{credits: NewCreditService()}
}

// ValidateSettlePayments enforces the processor's only hard preconditions:
// known methods, no negative lines, and a positive combined tender.
func ValidateSettlePayments(entries []PaymentEntry, creditRequested decimal.Decimal) error {
	total := creditRequested
	for _, e := range entries {
		if !models.ValidPaymentMethod(e.Method) {
			return ErrMalformedSettlementRequest
		}
		if e.Amount.IsNegative() {
			return ErrInvalidPaymentAmount
		}
		total = total.Add(e.Amount)
	}
	if !total.IsPositive() {
		return ErrInvalidPaymentAmount
	}
	return nil
}

// OverpaymentExcess returns how much of the tender exceeds the adjusted
// balance, or zero when it is within tolerance.
func OverpaymentExcess(tender, adjusted decimal.Decimal) decimal.Decimal {
	excess := tender.Sub(adjusted)
	if excess.GreaterThan(overpayTolerance) {
		return utils.Money(excess)
	}
	return decimal.Zero
}

// RemainingAfter folds a tender into an adjusted balance and derives the
// resulting order status. The remaining balance never goes negative.
func RemainingAfter(adjusted, tender decimal.Decimal) (decimal.Decimal, string) {
	remaining := adjusted.Sub(tender)
	if !remaining.IsPositive() {
		return decimal.Zero, models.OrderStatusPaid
	}
	return utils.Money(remaining), models.OrderStatusPartial
}

// SettleOrder applies exactly one settlement event to exactly one order.
// Credit consumption runs before the overpayment check, matching the form
// flow: a stated credit draw is validated against the ledger first, and
// only the real tender can turn into a fresh credit.
func (s *settlementService) SettleOrder(tx *gorm.DB, orderID uint, input SettleInput) (*SettleOutcome, error) {
	if orderID == 0 {
		return nil, ErrMalformedSettlementRequest
	}

	cashEntries, creditFromLines := SplitCreditEntries(input.Payments)
	creditRequested := utils.Money(input.CreditRequested.Add(creditFromLines))

	if err := ValidateSettlePayments(input.Payments, input.CreditRequested); err != nil {
		return nil, err
	}

	var order models.Order
	if err := tx.Preload("Deposits").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMalformedSettlementRequest
		}
		return nil, err
	}

	// Overrides land on the snapshot before the balance is derived, so the
	// calculator and the persisted order agree.
	if input.DiscountOverride != nil {
		order.DiscountType = input.DiscountOverride.Type
		order.DiscountValue = utils.Money(input.DiscountOverride.Value)
	}
	if input.ReturnOverride != nil {
		order.ReturnAmount = utils.Money(*input.ReturnOverride)
	}

	breakdown := ComputeBalance(&order)

	creditUsed := decimal.Zero
	if creditRequested.IsPositive() {
		applied, err := s.credits.ApplyCredit(tx, order.CustomerID, creditRequested, order.Number)
		if err != nil {
			return nil, err
		}
		creditUsed = applied
	}

	cashTotal := decimal.Zero
	for _, e := range cashEntries {
		cashTotal = cashTotal.Add(e.Amount)
	}
	cashTotal = utils.Money(cashTotal)
	tender := cashTotal.Add(creditUsed)

	creditIssued := decimal.Zero
	if excess := OverpaymentExcess(tender, breakdown.AdjustedBalance); excess.IsPositive() {
		origin := fmt.Sprintf("Overpayment on order %s", order.Number)
		credit, err := s.credits.IssueCredit(tx, order.CustomerID, excess, origin)
		if err != nil {
			return nil, err
		}
		creditIssued = credit.Amount
	}

	remaining, status := RemainingAfter(breakdown.AdjustedBalance, tender)

	updates := map[string]interface{}{
		"amount_paid":    utils.Money(order.AmountPaid.Add(tender)),
		"discount_type":  order.DiscountType,
		"discount_value": order.DiscountValue,
		"return_amount":  order.ReturnAmount,
		"status":         status,
		"version":        order.Version + 1,
	}
	if status == models.OrderStatusPaid {
		updates["payment_date"] = time.Now()
	}

	res := tx.Model(&models.Order{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrStaleOrder
	}

	// Deposits are folded in for good once the order is fully collected.
	if status == models.OrderStatusPaid {
		err := tx.Model(&models.Deposit{}).
			Where("order_id = ? AND consumed = ?", order.ID, false).
			Update("consumed", true).Error
		if err != nil {
			return nil, err
		}
	}

	err := utils.CreateSettlementHistory(
		tx,
		order.ID,
		input.Actor,
		joinMethods(input.Payments, creditUsed),
		cashTotal,
		creditUsed,
		creditIssued,
		remaining,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &SettleOutcome{
		OrderID:      order.ID,
		OrderNumber:  order.Number,
		CashApplied:  cashTotal,
		CreditUsed:   creditUsed,
		CreditIssued: creditIssued,
		BalanceAfter: remaining,
		Status:       status,
	}, nil
}

// SettleDirect is the admin path: one order, one transaction, one record.
func (s *settlementService) SettleDirect(operatorID uint, actor string, input dtos.DirectSettlementInput) (*models.SettlementRecord, *SettleOutcome, []string, error) {
	settle := SettleInput{
		Payments: PaymentEntriesFromInput(input.Payments),
		Actor:    actor,
	}

	if input.DiscountType != nil {
		t := *input.DiscountType
		if t != models.DiscountFixed && t != models.DiscountPercent {
			return nil, nil, nil, ErrMalformedSettlementRequest
		}
		settle.DiscountOverride = &DiscountOverride{
			Type:  t,
			Value: utils.ParseAmount(input.DiscountValue),
		}
	}
	if input.ReturnAmount != nil {
		r := utils.ParseAmount(input.ReturnAmount)
		settle.ReturnOverride = &r
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	outcome, err := s.SettleOrder(tx, input.OrderID, settle)
	if err != nil {
		tx.Rollback()
		return nil, nil, nil, err
	}

	var order models.Order
	if err := tx.First(&order, input.OrderID).Error; err != nil {
		tx.Rollback()
		return nil, nil, nil, err
	}

	record, err := s.createRecord(tx, order.CustomerID, operatorID, nil, settle.Payments, input.Attachments, []*SettleOutcome{outcome})
	if err != nil {
		tx.Rollback()
		return nil, nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, nil, err
	}

	var warnings []string
	if outcome.CreditIssued.IsPositive() {
		warnings = append(warnings,
			fmt.Sprintf("Overpayment of %s converted into customer credit", outcome.CreditIssued.StringFixed(2)))
	}

	return record, outcome, warnings, nil
}

// createRecord writes the immutable batch receipt inside the caller's
// transaction.
func (s *settlementService) createRecord(
	tx *gorm.DB,
	customerID uint,
	operatorID uint,
	sourceRequestID *uuid.UUID,
	payments []PaymentEntry,
	attachments []string,
	outcomes []*SettleOutcome,
) (*models.SettlementRecord, error) {
	number, err := NextSequence(tx, models.SequenceSettlementRecord)
	if err != nil {
		return nil, err
	}

	totalPaid := decimal.Zero
	creditUsed := decimal.Zero
	creditIssued := decimal.Zero

	record := models.SettlementRecord{
		ID:              uuid.New(),
		Number:          number,
		CustomerID:      customerID,
		OperatorID:      operatorID,
		SourceRequestID: sourceRequestID,
	}

	for _, o := range outcomes {
		totalPaid = totalPaid.Add(o.CashApplied).Add(o.CreditUsed)
		creditUsed = creditUsed.Add(o.CreditUsed)
		creditIssued = creditIssued.Add(o.CreditIssued)
		record.Orders = append(record.Orders, models.SettlementRecordOrder{
			OrderID:       o.OrderID,
			OrderNumber:   o.OrderNumber,
			AmountApplied: o.CashApplied.Add(o.CreditUsed),
			BalanceAfter:  o.BalanceAfter,
		})
	}

	record.TotalPaid = utils.Money(totalPaid)
	record.CreditUsed = utils.Money(creditUsed)
	record.CreditIssued = utils.Money(creditIssued)

	for _, p := range payments {
		record.Payments = append(record.Payments, models.SettlementRecordPayment{
			Method: p.Method,
			Amount: p.Amount,
		})
	}
	for _, a := range attachments {
		record.Attachments = append(record.Attachments, models.SettlementRecordAttachment{
			ProofURL: a,
		})
	}

	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func joinMethods(entries []PaymentEntry, creditUsed decimal.Decimal) string {
	seen := make(map[string]bool)
	var methods []string
	for _, e := range entries {
		if !seen[e.Method] {
			seen[e.Method] = true
			methods = append(methods, e.Method)
		}
	}
	if creditUsed.IsPositive() && !seen[models.MethodCredit] {
		methods = append(methods, models.MethodCredit)
	}
	return strings.Join(methods, ",")
}
