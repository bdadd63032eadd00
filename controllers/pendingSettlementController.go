package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cobranca-api/config"
	"cobranca-api/dtos"
	"cobranca-api/models"
	"cobranca-api/services"
	"cobranca-api/utils"
)

// Submit a settlement solicitation (representative/customer path)
func CreatePendingSettlement(c *gin.Context) {
	var input dtos.PendingSubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submitterID := utils.GetUserID(c)
	submitterType := models.SubmitterCustomer
	if utils.GetUserRole(c) == models.RoleRepresentative {
		submitterType = models.SubmitterRepresentative
	}

	service := services.NewPendingSettlementService()
	request, err := service.Submit(submitterID, submitterType, input)
	if err != nil {
		c.JSON(settlementErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, request)
}

// List solicitations. Admins see everything; submitters see their own.
func GetPendingSettlements(c *gin.Context) {
	db := config.DB.Model(&models.PendingSettlement{})

	if status := c.Query("status"); status != "" {
		db = db.Where("status = ?", status)
	}
	if customerStr := c.Query("customer_id"); customerStr != "" {
		customerID, _ := strconv.Atoi(customerStr)
		db = db.Where("customer_id = ?", customerID)
	}
	if utils.GetUserRole(c) != models.RoleAdmin {
		db = db.Where("submitter_id = ?", utils.GetUserID(c))
	}

	var requests []models.PendingSettlement
	if err := db.Preload("Orders.Order").
		Preload("Payments").
		Preload("Attachments").
		Preload("Customer").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

func GetPendingSettlementByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var request models.PendingSettlement
	if err := config.DB.Preload("Orders.Order").
		Preload("DiscountCascade").
		Preload("Payments").
		Preload("Attachments").
		Preload("Customer").
		First(&request, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement request not found"})
		return
	}

	if utils.GetUserRole(c) != models.RoleAdmin {
		submitterID := utils.GetUserID(c)
		if request.SubmitterID == nil || submitterID == nil || *request.SubmitterID != *submitterID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
	}

	c.JSON(http.StatusOK, request)
}

// Reviewer edits before a terminal action (admin only)
func UpdatePendingSettlement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var input dtos.ReviewUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service := services.NewPendingSettlementService()
	request, err := service.UpdateReview(id, input)
	if err != nil {
		c.JSON(settlementErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, request)
}

// Approve a solicitation: settles every covered order atomically
func ApprovePendingSettlement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	reviewerID := utils.GetUserID(c)
	if reviewerID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Reviewer identity required"})
		return
	}

	var reviewer models.User
	if err := config.DB.First(&reviewer, *reviewerID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Reviewer not found"})
		return
	}

	service := services.NewPendingSettlementService()
	record, err := service.Approve(id, reviewer.ID, reviewer.Username)
	if err != nil {
		c.JSON(settlementErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Settlement request approved",
		"record":  record,
	})
}

// Reject a solicitation; requires a reason, touches no ledger state
func RejectPendingSettlement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request id"})
		return
	}

	var input dtos.RejectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reviewerID := utils.GetUserID(c)
	if reviewerID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Reviewer identity required"})
		return
	}

	service := services.NewPendingSettlementService()
	request, err := service.Reject(id, *reviewerID, input.Reason)
	if err != nil {
		c.JSON(settlementErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, request)
}
