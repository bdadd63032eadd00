package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cobranca-api/models"
)

func TestAllocateProRata(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		weights []string
		want    []string
	}{
		{
			name:    "even split",
			total:   "100",
			weights: []string{"50", "50"},
			want:    []string{"50", "50"},
		},
		{
			name:    "proportional split",
			total:   "90",
			weights: []string{"100", "200"},
			want:    []string{"30", "60"},
		},
		{
			name:    "last slot absorbs rounding remainder",
			total:   "100",
			weights: []string{"1", "1", "1"},
			want:    []string{"33.33", "33.33", "33.34"},
		},
		{
			name:    "zero weights send everything to the first slot",
			total:   "75",
			weights: []string{"0", "0"},
			want:    []string{"75", "0"},
		},
		{
			name:    "single order takes it all",
			total:   "123.45",
			weights: []string{"200"},
			want:    []string{"123.45"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weights := make([]decimal.Decimal, len(tt.weights))
			for i, w := range tt.weights {
				weights[i] = dec(w)
			}

			got := AllocateProRata(dec(tt.total), weights)
			require.Len(t, got, len(tt.want))

			sum := decimal.Zero
			for i, share := range got {
				assert.True(t, dec(tt.want[i]).Equal(share), "share %d: want %s got %s", i, tt.want[i], share)
				sum = sum.Add(share)
			}
			assert.True(t, dec(tt.total).Equal(sum), "shares must sum back to the total")
		})
	}
}

func TestAllocateEntries(t *testing.T) {
	entries := []PaymentEntry{
		{Method: models.MethodCash, Amount: dec("90")},
		{Method: models.MethodCheck, Amount: dec("30")},
	}
	weights := []decimal.Decimal{dec("100"), dec("200")}

	perOrder := AllocateEntries(entries, weights)
	require.Len(t, perOrder, 2)

	require.Len(t, perOrder[0], 2)
	assert.Equal(t, models.MethodCash, perOrder[0][0].Method)
	assert.True(t, dec("30").Equal(perOrder[0][0].Amount))
	assert.Equal(t, models.MethodCheck, perOrder[0][1].Method)
	assert.True(t, dec("10").Equal(perOrder[0][1].Amount))

	require.Len(t, perOrder[1], 2)
	assert.True(t, dec("60").Equal(perOrder[1][0].Amount))
	assert.True(t, dec("20").Equal(perOrder[1][1].Amount))
}

func TestSplitCreditEntries(t *testing.T) {
	entries := []PaymentEntry{
		{Method: models.MethodCash, Amount: dec("100")},
		{Method: models.MethodCredit, Amount: dec("40")},
		{Method: models.MethodCredit, Amount: dec("10")},
	}

	cash, credit := SplitCreditEntries(entries)

	require.Len(t, cash, 1)
	assert.Equal(t, models.MethodCash, cash[0].Method)
	assert.True(t, dec("50").Equal(credit))
}
