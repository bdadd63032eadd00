package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cobranca-api/config"
	"cobranca-api/dtos"
	"cobranca-api/models"
	"cobranca-api/services"
	"cobranca-api/utils"
)

// Get all orders with pagination and filters
func GetOrders(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")
	status := c.Query("status")
	customerStr := c.Query("customer_id")
	filterDate := c.Query("date")

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := config.DB.Model(&models.Order{})

	if status != "" {
		db = db.Where("status = ?", status)
	}
	if customerStr != "" {
		customerID, _ := strconv.Atoi(customerStr)
		db = db.Where("customer_id = ?", customerID)
	}
	if filterDate != "" {
		start, _ := time.Parse("2006-01-02", filterDate)
		end := start.Add(24 * time.Hour)
		db = db.Where("created_at >= ? AND created_at < ?", start, end)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var orders []models.Order
	if err := db.Preload("Deposits").Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       orders,
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": int((total + int64(limit) - 1) / int64(limit)),
	})
}

// Get order by ID together with its balance breakdown
func GetOrderByID(c *gin.Context) {
	id := c.Param("id")

	var order models.Order
	if err := config.DB.Preload("Deposits").Preload("Customer").First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	breakdown := services.ComputeBalance(&order)

	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"balance": breakdown,
	})
}

// Create order (intake shim for the external order-intake process)
func CreateOrder(c *gin.Context) {
	var input dtos.OrderCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, input.CustomerID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
		return
	}

	order := models.Order{
		Number:            input.Number,
		CustomerID:        input.CustomerID,
		GrossValue:        utils.Money(decimal.NewFromFloat(input.GrossValue)),
		DiscountType:      models.DiscountFixed,
		DiscountValue:     utils.ParseAmount(input.DiscountValue),
		CommissionPercent: utils.ParseAmount(input.CommissionPercent),
		Status:            models.OrderStatusOpen,
		Version:           1,
	}
	if input.DiscountType != nil && (*input.DiscountType == models.DiscountFixed || *input.DiscountType == models.DiscountPercent) {
		order.DiscountType = *input.DiscountType
	}

	if err := config.DB.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// Add a deposit ("sinal") to an order. Deposits beyond gross - discount are
// accepted with a warning, not rejected; the UI asks for confirmation.
func AddDeposit(c *gin.Context) {
	id := c.Param("id")

	var input dtos.DepositInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidPaymentMethod(input.Method) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Deposits").First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.Status == models.OrderStatusPaid {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrDepositLocked.Error()})
		return
	}

	amount := utils.Money(decimal.NewFromFloat(input.Amount))
	if !amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deposit amount must be positive"})
		return
	}

	var warnings []string
	discount := services.DiscountAmount(order.GrossValue, order.DiscountType, order.DiscountValue)
	existing := decimal.Zero
	for _, d := range order.Deposits {
		existing = existing.Add(d.Amount)
	}
	if existing.Add(amount).GreaterThan(order.GrossValue.Sub(discount)) {
		warnings = append(warnings, "Warning: deposits exceed the order value net of discount")
	}

	deposit := models.Deposit{
		ID:       uuid.New(),
		OrderID:  order.ID,
		Method:   input.Method,
		Amount:   amount,
		ProofURL: input.ProofURL,
	}

	if err := config.DB.Create(&deposit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"deposit": deposit,
	}
	if len(warnings) > 0 {
		response["warnings"] = warnings
	}

	c.JSON(http.StatusCreated, response)
}

// Get the append-only settlement history of an order
func GetOrderHistory(c *gin.Context) {
	id := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var history []models.SettlementHistory
	if err := config.DB.Where("order_id = ?", order.ID).
		Order("created_at ASC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, history)
}
