package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cobranca-api/config"
	"cobranca-api/models"
	"cobranca-api/services"
)

// Get all credit entries of a customer
func GetCredits(c *gin.Context) {
	customerStr := c.Query("customer_id")
	if customerStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id is required"})
		return
	}
	customerID, _ := strconv.Atoi(customerStr)

	db := config.DB.Where("customer_id = ?", customerID)
	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}

	var credits []models.Credit
	if err := db.Order("created_at ASC").Find(&credits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, credits)
}

// Get the consumable credit total of a customer
func GetAvailableCredit(c *gin.Context) {
	customerStr := c.Query("customer_id")
	if customerStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id is required"})
		return
	}
	customerID, _ := strconv.Atoi(customerStr)

	service := services.NewCreditService()
	total, err := service.AvailableTotal(config.DB, uint(customerID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer_id": customerID,
		"available":   total,
	})
}
