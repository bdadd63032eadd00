package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cobranca-api/models"
)

func availableCredit(amount string, age time.Duration) models.Credit {
	return models.Credit{
		ID:        uuid.New(),
		Amount:    dec(amount),
		Status:    models.CreditAvailable,
		CreatedAt: time.Now().Add(-age),
	}
}

func TestPlanCreditConsumption(t *testing.T) {
	forty := availableCredit("40", 48*time.Hour)
	sixty := availableCredit("60", 24*time.Hour)
	used := models.Credit{ID: uuid.New(), Amount: dec("500"), Status: models.CreditUsed}

	tests := []struct {
		name        string
		credits     []models.Credit
		requested   string
		wantPicked  int
		wantApplied string
	}{
		{
			// whole-entry rule: 40 does not cover 50, so the 60 is
			// depleted in full as well
			name:        "request between entries depletes both",
			credits:     []models.Credit{forty, sixty},
			requested:   "50",
			wantPicked:  2,
			wantApplied: "100",
		},
		{
			name:        "exact first entry stops there",
			credits:     []models.Credit{forty, sixty},
			requested:   "40",
			wantPicked:  1,
			wantApplied: "40",
		},
		{
			name:        "used entries are skipped",
			credits:     []models.Credit{used, forty, sixty},
			requested:   "40",
			wantPicked:  1,
			wantApplied: "40",
		},
		{
			name:        "zero request consumes nothing",
			credits:     []models.Credit{forty, sixty},
			requested:   "0",
			wantPicked:  0,
			wantApplied: "0",
		},
		{
			name:        "request above everything takes everything",
			credits:     []models.Credit{forty, sixty},
			requested:   "500",
			wantPicked:  2,
			wantApplied: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picked, applied := PlanCreditConsumption(tt.credits, dec(tt.requested))
			assert.Len(t, picked, tt.wantPicked)
			assert.True(t, dec(tt.wantApplied).Equal(applied), "want %s got %s", tt.wantApplied, applied)
		})
	}
}

func TestPlanCreditConsumptionKeepsIterationOrder(t *testing.T) {
	first := availableCredit("40", 48*time.Hour)
	second := availableCredit("60", 24*time.Hour)

	picked, _ := PlanCreditConsumption([]models.Credit{first, second}, dec("50"))

	require.Len(t, picked, 2)
	// oldest entry goes first; the plan never reorders what the query gave it
	assert.Equal(t, first.ID, picked[0].ID)
	assert.Equal(t, second.ID, picked[1].ID)
}

func TestApplyCreditMarksEntriesUsed(t *testing.T) {
	db := newTestDB(t)

	older := availableCredit("40", 48*time.Hour)
	older.Number = 1
	older.CustomerID = 7
	newer := availableCredit("60", 24*time.Hour)
	newer.Number = 2
	newer.CustomerID = 7
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	service := NewCreditService()
	applied, err := service.ApplyCredit(db, 7, dec("50"), "PED-0001")
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(applied), "want 100 got %s", applied)

	var got []models.Credit
	require.NoError(t, db.Order("number ASC").Find(&got).Error)
	require.Len(t, got, 2)
	for _, cr := range got {
		assert.Equal(t, models.CreditUsed, cr.Status)
		require.NotNil(t, cr.ConsumingOrder)
		assert.Equal(t, "PED-0001", *cr.ConsumingOrder)
		assert.NotNil(t, cr.ConsumedAt)
		assert.Equal(t, uint(2), cr.Version)
	}
}

func TestApplyCreditInsufficientLeavesLedgerUntouched(t *testing.T) {
	db := newTestDB(t)

	entry := availableCredit("100", 24*time.Hour)
	entry.Number = 1
	entry.CustomerID = 7
	require.NoError(t, db.Create(&entry).Error)

	service := NewCreditService()
	_, err := service.ApplyCredit(db, 7, dec("150"), "PED-0001")
	assert.ErrorIs(t, err, ErrInsufficientCreditRequested)

	var got models.Credit
	require.NoError(t, db.First(&got, "id = ?", entry.ID).Error)
	assert.Equal(t, models.CreditAvailable, got.Status)
	assert.Nil(t, got.ConsumingOrder)
	assert.Equal(t, uint(1), got.Version)
}
