package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cobranca-api/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name         string
		gross        string
		discountType string
		value        string
		want         string
	}{
		{"fixed discount", "1000", models.DiscountFixed, "150", "150"},
		{"percentage discount", "1000", models.DiscountPercent, "10", "100"},
		{"percentage rounds to cents", "333.33", models.DiscountPercent, "10", "33.33"},
		{"zero discount", "1000", models.DiscountFixed, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DiscountAmount(dec(tt.gross), tt.discountType, dec(tt.value))
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestComputeBalance(t *testing.T) {
	tests := []struct {
		name         string
		order        models.Order
		wantDiscount string
		wantDeposits string
		wantBalance  string
	}{
		{
			name: "plain open order",
			order: models.Order{
				GrossValue:   dec("500"),
				DiscountType: models.DiscountFixed,
			},
			wantDiscount: "0",
			wantDeposits: "0",
			wantBalance:  "500",
		},
		{
			name: "percentage discount",
			order: models.Order{
				GrossValue:    dec("1000"),
				DiscountType:  models.DiscountPercent,
				DiscountValue: dec("10"),
			},
			wantDiscount: "100",
			wantDeposits: "0",
			wantBalance:  "900",
		},
		{
			name: "deposits and prior payments fold in",
			order: models.Order{
				GrossValue:    dec("1000"),
				DiscountType:  models.DiscountFixed,
				DiscountValue: dec("50"),
				ReturnAmount:  dec("100"),
				AmountPaid:    dec("200"),
				Deposits: []models.Deposit{
					{Amount: dec("150")},
					{Amount: dec("100")},
				},
			},
			wantDiscount: "50",
			wantDeposits: "250",
			wantBalance:  "400",
		},
		{
			name: "never goes negative",
			order: models.Order{
				GrossValue:    dec("100"),
				DiscountType:  models.DiscountFixed,
				DiscountValue: dec("50"),
				AmountPaid:    dec("200"),
			},
			wantDiscount: "50",
			wantDeposits: "0",
			wantBalance:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBalance(&tt.order)
			assert.True(t, dec(tt.wantDiscount).Equal(got.DiscountAmount), "discount: want %s got %s", tt.wantDiscount, got.DiscountAmount)
			assert.True(t, dec(tt.wantDeposits).Equal(got.TotalDeposits), "deposits: want %s got %s", tt.wantDeposits, got.TotalDeposits)
			assert.True(t, dec(tt.wantBalance).Equal(got.AdjustedBalance), "balance: want %s got %s", tt.wantBalance, got.AdjustedBalance)
		})
	}
}

func TestComputeBalanceIdempotent(t *testing.T) {
	order := models.Order{
		GrossValue:    dec("750.40"),
		DiscountType:  models.DiscountPercent,
		DiscountValue: dec("5"),
		ReturnAmount:  dec("20"),
		AmountPaid:    dec("100"),
		Deposits:      []models.Deposit{{Amount: dec("80")}},
	}

	first := ComputeBalance(&order)
	second := ComputeBalance(&order)

	require.True(t, first.AdjustedBalance.Equal(second.AdjustedBalance))
	require.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	require.True(t, first.TotalDeposits.Equal(second.TotalDeposits))
}

func TestApplyCascade(t *testing.T) {
	tests := []struct {
		name    string
		gross   string
		entries []models.DiscountCascadeEntry
		want    string
	}{
		{
			name:  "no entries",
			gross: "1000",
			want:  "0",
		},
		{
			name:  "single percentage",
			gross: "1000",
			entries: []models.DiscountCascadeEntry{
				{Position: 0, Type: models.DiscountPercent, Value: dec("10")},
			},
			want: "100",
		},
		{
			name:  "percent applies to running total, not gross",
			gross: "1000",
			entries: []models.DiscountCascadeEntry{
				{Position: 0, Type: models.DiscountFixed, Value: dec("200")},
				{Position: 1, Type: models.DiscountPercent, Value: dec("10")},
			},
			// 1000 - 200 = 800, then 10% of 800 = 80
			want: "280",
		},
		{
			name:  "entries run in position order regardless of slice order",
			gross: "1000",
			entries: []models.DiscountCascadeEntry{
				{Position: 1, Type: models.DiscountPercent, Value: dec("10")},
				{Position: 0, Type: models.DiscountFixed, Value: dec("200")},
			},
			want: "280",
		},
		{
			name:  "cascade cannot exceed the gross",
			gross: "100",
			entries: []models.DiscountCascadeEntry{
				{Position: 0, Type: models.DiscountFixed, Value: dec("150")},
			},
			want: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyCascade(dec(tt.gross), tt.entries)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}
