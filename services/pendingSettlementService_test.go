package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cobranca-api/models"
)

func pendingRequest(t *testing.T, orderIDs []uint, proposed string) models.PendingSettlement {
	t.Helper()
	request := models.PendingSettlement{
		ID:            uuid.New(),
		Number:        1,
		CustomerID:    3,
		OriginalTotal: dec(proposed),
		TotalProposed: dec(proposed),
		Status:        models.PendingStatusPending,
		SubmitterType: models.SubmitterRepresentative,
		Payments: []models.PendingSettlementPayment{
			{Method: models.MethodCash, Amount: dec(proposed)},
		},
		Attachments: []models.PendingAttachment{
			{ProofURL: "https://proofs/receipt-1.jpg"},
		},
	}
	for _, id := range orderIDs {
		request.Orders = append(request.Orders, models.PendingSettlementOrder{OrderID: id})
	}
	return request
}

func TestRejectFlipsStatusAndLeavesOrdersAlone(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Customer{ID: 3, Name: "Mercearia Central"}).Error)
	order := openOrder(t, db, "PED-0200", "100")

	request := pendingRequest(t, []uint{order.ID}, "100")
	require.NoError(t, db.Create(&request).Error)

	service := NewPendingSettlementService()
	updated, err := service.Reject(request.ID, 9, "amounts do not match the receipts")
	require.NoError(t, err)

	assert.Equal(t, models.PendingStatusRejected, updated.Status)
	require.NotNil(t, updated.RejectionReason)
	assert.Equal(t, "amounts do not match the receipts", *updated.RejectionReason)
	require.NotNil(t, updated.ReviewerID)
	assert.Equal(t, uint(9), *updated.ReviewerID)
	assert.NotNil(t, updated.ReviewedAt)

	// the ledger never moved
	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.OrderStatusOpen, got.Status)
	assert.True(t, got.AmountPaid.IsZero())
	assert.Equal(t, uint(1), got.Version)

	_, err = service.Reject(request.ID, 9, "already closed")
	assert.ErrorIs(t, err, ErrRequestNotPending)
}

func TestApproveAppliesTermsToOrdersWithoutPaymentShare(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Customer{ID: 3, Name: "Mercearia Central"}).Error)

	// covered's deposit already clears its whole balance, so every payment
	// line lands on the other order
	covered := openOrder(t, db, "PED-0201", "100")
	deposit := models.Deposit{
		ID:      uuid.New(),
		OrderID: covered.ID,
		Method:  models.MethodCash,
		Amount:  dec("100"),
	}
	require.NoError(t, db.Create(&deposit).Error)
	open := openOrder(t, db, "PED-0202", "200")

	request := pendingRequest(t, []uint{covered.ID, open.ID}, "200")
	require.NoError(t, db.Create(&request).Error)

	service := NewPendingSettlementService()
	record, err := service.Approve(request.ID, 9, "admin")
	require.NoError(t, err)

	require.Len(t, record.Orders, 2)
	assert.True(t, dec("200").Equal(record.TotalPaid))

	// the approved terms landed on the zero-share order too
	var gotCovered models.Order
	require.NoError(t, db.First(&gotCovered, covered.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, gotCovered.Status)
	assert.Equal(t, models.DiscountFixed, gotCovered.DiscountType)
	assert.True(t, gotCovered.DiscountValue.IsZero())
	assert.Equal(t, uint(2), gotCovered.Version)
	assert.NotNil(t, gotCovered.PaymentDate)

	var gotDeposit models.Deposit
	require.NoError(t, db.First(&gotDeposit, "id = ?", deposit.ID).Error)
	assert.True(t, gotDeposit.Consumed)

	var coveredHistory []models.SettlementHistory
	require.NoError(t, db.Where("order_id = ?", covered.ID).Find(&coveredHistory).Error)
	require.Len(t, coveredHistory, 1)
	assert.True(t, coveredHistory[0].Amount.IsZero())
	assert.True(t, coveredHistory[0].BalanceAfter.IsZero())

	var gotOpen models.Order
	require.NoError(t, db.First(&gotOpen, open.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, gotOpen.Status)
	assert.True(t, dec("200").Equal(gotOpen.AmountPaid))

	var gotRequest models.PendingSettlement
	require.NoError(t, db.First(&gotRequest, "id = ?", request.ID).Error)
	assert.Equal(t, models.PendingStatusApproved, gotRequest.Status)
}
