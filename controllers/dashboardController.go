package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"cobranca-api/config"
	"cobranca-api/models"
	"cobranca-api/services"
)

type TopDebtor struct {
	CustomerID uint            `json:"customer_id"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
}

// rankDebtors orders customers by outstanding balance, largest first, and
// keeps the top n. Ties break by customer id so the result is stable.
func rankDebtors(perCustomer map[uint]decimal.Decimal, n int) []TopDebtor {
	debtors := make([]TopDebtor, 0, len(perCustomer))
	for customerID, balance := range perCustomer {
		debtors = append(debtors, TopDebtor{CustomerID: customerID, Balance: balance})
	}
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].Balance.Equal(debtors[j].Balance) {
			return debtors[i].CustomerID < debtors[j].CustomerID
		}
		return debtors[i].Balance.GreaterThan(debtors[j].Balance)
	})
	if len(debtors) > n {
		debtors = debtors[:n]
	}
	return debtors
}

// GetDashboard summarises the receivables position for the back office.
func GetDashboard(c *gin.Context) {
	var openOrders []models.Order
	if err := config.DB.Preload("Deposits").
		Where("status IN ?", []string{models.OrderStatusOpen, models.OrderStatusPartial}).
		Find(&openOrders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Outstanding balances are derived per order, never read from a column.
	outstanding := decimal.Zero
	perCustomer := make(map[uint]decimal.Decimal)
	for i := range openOrders {
		balance := services.ComputeBalance(&openOrders[i]).AdjustedBalance
		outstanding = outstanding.Add(balance)
		perCustomer[openOrders[i].CustomerID] = perCustomer[openOrders[i].CustomerID].Add(balance)
	}

	var pendingCount int64
	config.DB.Model(&models.PendingSettlement{}).
		Where("status = ?", models.PendingStatusPending).
		Count(&pendingCount)

	var availableCredits []models.Credit
	config.DB.Where("status = ?", models.CreditAvailable).Find(&availableCredits)
	creditOutstanding := decimal.Zero
	for _, cr := range availableCredits {
		creditOutstanding = creditOutstanding.Add(cr.Amount)
	}

	// Settled today
	today := time.Now().Format("2006-01-02")
	start, _ := time.Parse("2006-01-02", today)
	var todayRecords []models.SettlementRecord
	config.DB.Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour)).
		Find(&todayRecords)
	settledToday := decimal.Zero
	for _, r := range todayRecords {
		settledToday = settledToday.Add(r.TotalPaid)
	}

	topDebtors := rankDebtors(perCustomer, 5)
	for i := range topDebtors {
		var customer models.Customer
		if err := config.DB.First(&customer, topDebtors[i].CustomerID).Error; err == nil {
			topDebtors[i].Name = customer.Name
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"outstanding_total":     outstanding,
		"open_orders":           len(openOrders),
		"pending_solicitations": pendingCount,
		"credit_outstanding":    creditOutstanding,
		"settled_today":         settledToday,
		"top_debtors":           topDebtors,
	})
}
