package services

import (
	"errors"
	"fmt"
	"log"
	"os"
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

type PendingSettlementService interface {
	Submit(submitterID *uint, submitterType string, input dtos.PendingSubmitInput) (*models.PendingSettlement, error)
	UpdateReview(id uuid.UUID, input dtos.ReviewUpdateInput) (*models.PendingSettlement, error)
	Approve(id uuid.UUID, reviewerID uint, actor string) (*models.SettlementRecord, error)
	Reject(id uuid.UUID, reviewerID uint, reason string) (*models.PendingSettlement, error)
}

type pendingSettlementService struct {
	settlements SettlementService
}

func NewPendingSettlementService() PendingSettlementService {
	return &pendingSettlementService{settlements: NewSettlementService()}
}

// Submit records a solicitation as inert data. Nothing in the ledger moves
// until a reviewer acts on it.
func (s *pendingSettlementService) Submit(submitterID *uint, submitterType string, input dtos.PendingSubmitInput) (*models.PendingSettlement, error) {
	if len(input.OrderIDs) == 0 || len(input.Payments) == 0 {
		return nil, ErrMalformedSettlementRequest
	}
	if len(input.Attachments) == 0 {
		return nil, ErrAttachmentRequired
	}

	entries := PaymentEntriesFromInput(input.Payments)
	for _, e := range entries {
		if !models.ValidPaymentMethod(e.Method) {
			return nil, ErrMalformedSettlementRequest
		}
	}

	var orders []models.Order
	err := config.DB.Where("id IN ? AND customer_id = ?", input.OrderIDs, input.CustomerID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	if len(orders) != len(input.OrderIDs) {
		return nil, ErrMalformedSettlementRequest
	}

	originalTotal := decimal.Zero
	for _, o := range orders {
		originalTotal = originalTotal.Add(o.GrossValue)
	}

	proposed := decimal.Zero
	for _, e := range entries {
		proposed = proposed.Add(e.Amount)
	}

	request := models.PendingSettlement{
		ID:                  uuid.New(),
		CustomerID:          input.CustomerID,
		OriginalTotal:       utils.Money(originalTotal),
		ReturnAmount:        utils.ParseAmount(input.ReturnAmount),
		ReturnJustification: input.ReturnJustification,
		TotalProposed:       utils.Money(proposed),
		Status:              models.PendingStatusPending,
		SubmitterType:       submitterType,
		SubmitterID:         submitterID,
		Note:                input.Note,
	}
	for _, id := range input.OrderIDs {
		request.Orders = append(request.Orders, models.PendingSettlementOrder{OrderID: id})
	}
	for i, entry := range input.DiscountCascade {
		request.DiscountCascade = append(request.DiscountCascade, models.DiscountCascadeEntry{
			Position: i,
			Type:     entry.Type,
			Value:    utils.ParseAmount(&entry.Value),
		})
	}
	for _, e := range entries {
		request.Payments = append(request.Payments, models.PendingSettlementPayment{
			Method: e.Method,
			Amount: e.Amount,
		})
	}
	for _, a := range input.Attachments {
		request.Attachments = append(request.Attachments, models.PendingAttachment{ProofURL: a})
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	number, err := NextSequence(tx, models.SequencePendingSettlement)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	request.Number = number

	if err := tx.Create(&request).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.notifyBackOffice(&request)

	return &request, nil
}

func (s *pendingSettlementService) notifyBackOffice(request *models.PendingSettlement) {
	phone := os.Getenv("BACKOFFICE_PHONE")
	if phone == "" {
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, request.CustomerID).Error; err != nil {
		return
	}

	message := utils.FormatSolicitationMessage(
		request.Number,
		customer.Name,
		len(request.Orders),
		request.TotalProposed.StringFixed(2),
	)

	go func() {
		if err := utils.SendWhatsAppNotification(phone, message); err != nil {
			log.Println("solicitation notification failed:", err)
		}
	}()
}

// UpdateReview replaces reviewer-editable pieces of a still-pending
// request and re-derives its totals.
func (s *pendingSettlementService) UpdateReview(id uuid.UUID, input dtos.ReviewUpdateInput) (*models.PendingSettlement, error) {
	request, err := s.loadRequest(config.DB, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.PendingStatusPending {
		return nil, ErrRequestNotPending
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if input.OrderIDs != nil {
		var orders []models.Order
		err := tx.Where("id IN ? AND customer_id = ?", *input.OrderIDs, request.CustomerID).
			Find(&orders).Error
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if len(orders) != len(*input.OrderIDs) {
			tx.Rollback()
			return nil, ErrMalformedSettlementRequest
		}

		if err := tx.Where("pending_settlement_id = ?", id).Delete(&models.PendingSettlementOrder{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		originalTotal := decimal.Zero
		for _, o := range orders {
			originalTotal = originalTotal.Add(o.GrossValue)
			if err := tx.Create(&models.PendingSettlementOrder{PendingSettlementID: id, OrderID: o.ID}).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
		request.OriginalTotal = utils.Money(originalTotal)
	}

	if input.DiscountCascade != nil {
		if err := tx.Where("pending_settlement_id = ?", id).Delete(&models.DiscountCascadeEntry{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		for i, entry := range *input.DiscountCascade {
			row := models.DiscountCascadeEntry{
				PendingSettlementID: id,
				Position:            i,
				Type:                entry.Type,
				Value:               utils.ParseAmount(&entry.Value),
			}
			if err := tx.Create(&row).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if input.Payments != nil {
		entries := PaymentEntriesFromInput(*input.Payments)
		for _, e := range entries {
			if !models.ValidPaymentMethod(e.Method) {
				tx.Rollback()
				return nil, ErrMalformedSettlementRequest
			}
		}
		if err := tx.Where("pending_settlement_id = ?", id).Delete(&models.PendingSettlementPayment{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		proposed := decimal.Zero
		for _, e := range entries {
			proposed = proposed.Add(e.Amount)
			row := models.PendingSettlementPayment{PendingSettlementID: id, Method: e.Method, Amount: e.Amount}
			if err := tx.Create(&row).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
		request.TotalProposed = utils.Money(proposed)
	}

	if input.Attachments != nil {
		if err := tx.Where("pending_settlement_id = ?", id).Delete(&models.PendingAttachment{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		for _, a := range *input.Attachments {
			if err := tx.Create(&models.PendingAttachment{PendingSettlementID: id, ProofURL: a}).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	updates := map[string]interface{}{
		"original_total": request.OriginalTotal,
		"total_proposed": request.TotalProposed,
	}
	if input.ReturnAmount != nil {
		updates["return_amount"] = utils.ParseAmount(input.ReturnAmount)
	}
	if input.ReturnJustification != nil {
		updates["return_justification"] = *input.ReturnJustification
	}
	if input.Note != nil {
		updates["note"] = *input.Note
	}

	res := tx.Model(&models.PendingSettlement{}).
		Where("id = ? AND status = ?", id, models.PendingStatusPending).
		Updates(updates)
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrRequestNotPending
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.loadRequest(config.DB, id)
}

// Approve settles every order of the (possibly edited) proposal in a single
// transaction: the payment breakdown and the cascade discount are spread
// pro rata over the orders' adjusted balances, the last order absorbing the
// rounding remainder. Any per-order failure rolls the whole approval back.
func (s *pendingSettlementService) Approve(id uuid.UUID, reviewerID uint, actor string) (*models.SettlementRecord, error) {
	request, err := s.loadRequest(config.DB, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.PendingStatusPending {
		return nil, ErrRequestNotPending
	}

	entries := make([]PaymentEntry, 0, len(request.Payments))
	for _, p := range request.Payments {
		entries = append(entries, PaymentEntry{Method: p.Method, Amount: p.Amount})
	}
	proposed := decimal.Zero
	for _, e := range entries {
		proposed = proposed.Add(e.Amount)
	}
	if len(request.Orders) == 0 || !proposed.IsPositive() {
		return nil, ErrApprovalPreconditionFailed
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	orderIDs := make([]uint, 0, len(request.Orders))
	for _, ro := range request.Orders {
		orderIDs = append(orderIDs, ro.OrderID)
	}

	var orders []models.Order
	if err := tx.Preload("Deposits").Where("id IN ?", orderIDs).Find(&orders).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(orders) != len(orderIDs) {
		tx.Rollback()
		return nil, ErrMalformedSettlementRequest
	}

	grossTotal := decimal.Zero
	grossWeights := make([]decimal.Decimal, len(orders))
	for i, o := range orders {
		grossTotal = grossTotal.Add(o.GrossValue)
		grossWeights[i] = o.GrossValue
	}

	// The cascade and the batch return amount are evaluated once over the
	// batch and distributed by gross share as per-order overrides.
	cascadeDiscount := ApplyCascade(grossTotal, request.DiscountCascade)
	discountShares := AllocateProRata(cascadeDiscount, grossWeights)
	returnShares := AllocateProRata(request.ReturnAmount, grossWeights)

	balanceWeights := make([]decimal.Decimal, len(orders))
	for i := range orders {
		snapshot := orders[i]
		snapshot.DiscountType = models.DiscountFixed
		snapshot.DiscountValue = discountShares[i]
		snapshot.ReturnAmount = returnShares[i]
		balanceWeights[i] = ComputeBalance(&snapshot).AdjustedBalance
	}

	perOrder := AllocateEntries(entries, balanceWeights)

	outcomes := make([]*SettleOutcome, 0, len(orders))
	for i := range orders {
		if len(perOrder[i]) == 0 {
			// No payment share lands here, but the approved terms still
			// replace the order's own discount and return.
			outcome, err := applyApprovedTerms(tx, &orders[i], discountShares[i], returnShares[i], actor)
			if err != nil {
				tx.Rollback()
				return nil, err
			}
			outcomes = append(outcomes, outcome)
			continue
		}
		returnShare := returnShares[i]
		outcome, err := s.settlements.SettleOrder(tx, orders[i].ID, SettleInput{
			Payments:         perOrder[i],
			DiscountOverride: &DiscountOverride{Type: models.DiscountFixed, Value: discountShares[i]},
			ReturnOverride:   &returnShare,
			Actor:            actor,
		})
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		outcomes = append(outcomes, outcome)
	}

	attachments := make([]string, 0, len(request.Attachments))
	for _, a := range request.Attachments {
		attachments = append(attachments, a.ProofURL)
	}

	settlementSvc, ok := s.settlements.(*settlementService)
	if !ok {
		tx.Rollback()
		return nil, errors.New("settlement service misconfigured")
	}
	record, err := settlementSvc.createRecord(tx, request.CustomerID, reviewerID, &request.ID, entries, attachments, outcomes)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	res := tx.Model(&models.PendingSettlement{}).
		Where("id = ? AND status = ?", id, models.PendingStatusPending).
		Updates(map[string]interface{}{
			"status":      models.PendingStatusApproved,
			"reviewer_id": reviewerID,
			"reviewed_at": now,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrRequestNotPending
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return record, nil
}

// Reject closes the request without touching the ledger. A reason is
// mandatory.
func (s *pendingSettlementService) Reject(id uuid.UUID, reviewerID uint, reason string) (*models.PendingSettlement, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrRejectionReasonRequired
	}

	request, err := s.loadRequest(config.DB, id)
	if err != nil {
		return nil, err
	}
	if request.Status != models.PendingStatusPending {
		return nil, ErrRequestNotPending
	}

	now := time.Now()
	res := config.DB.Model(&models.PendingSettlement{}).
		Where("id = ? AND status = ?", id, models.PendingStatusPending).
		Updates(map[string]interface{}{
			"status":           models.PendingStatusRejected,
			"rejection_reason": reason,
			"reviewer_id":      reviewerID,
			"reviewed_at":      now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrRequestNotPending
	}

	return s.loadRequest(config.DB, id)
}

// applyApprovedTerms persists the proposal's discount and return shares on
// an order that received no payment share. An order whose adjusted balance
// hits zero under the approved terms is collected outright.
func applyApprovedTerms(tx *gorm.DB, order *models.Order, discount, returned decimal.Decimal, actor string) (*SettleOutcome, error) {
	snapshot := *order
	snapshot.DiscountType = models.DiscountFixed
	snapshot.DiscountValue = utils.Money(discount)
	snapshot.ReturnAmount = utils.Money(returned)
	breakdown := ComputeBalance(&snapshot)

	status := order.Status
	if breakdown.AdjustedBalance.IsZero() {
		status = models.OrderStatusPaid
	}

	updates := map[string]interface{}{
		"discount_type":  models.DiscountFixed,
		"discount_value": utils.Money(discount),
		"return_amount":  utils.Money(returned),
		"status":         status,
		"version":        order.Version + 1,
	}
	if status == models.OrderStatusPaid && order.Status != models.OrderStatusPaid {
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

	if status == models.OrderStatusPaid {
		err := tx.Model(&models.Deposit{}).
			Where("order_id = ? AND consumed = ?", order.ID, false).
			Update("consumed", true).Error
		if err != nil {
			return nil, err
		}
	}

	note := "settlement approved, no payment allocated to this order"
	err := utils.CreateSettlementHistory(
		tx,
		order.ID,
		actor,
		"",
		decimal.Zero,
		decimal.Zero,
		decimal.Zero,
		breakdown.AdjustedBalance,
		&note,
	)
	if err != nil {
		return nil, err
	}

	return &SettleOutcome{
		OrderID:      order.ID,
		OrderNumber:  order.Number,
		CashApplied:  decimal.Zero,
		CreditUsed:   decimal.Zero,
		CreditIssued: decimal.Zero,
		BalanceAfter: breakdown.AdjustedBalance,
		Status:       status,
	}, nil
}

func (s *pendingSettlementService) loadRequest(db *gorm.DB, id uuid.UUID) (*models.PendingSettlement, error) {
	var request models.PendingSettlement
	err := db.
		Preload("Orders.Order").
		Preload("DiscountCascade", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Payments").
		Preload("Attachments").
		Preload("Customer").
		First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("settlement request not found: %w", err)
		}
		return nil, err
	}
	return &request, nil
}
