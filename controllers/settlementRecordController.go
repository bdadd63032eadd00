package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cobranca-api/config"
	"cobranca-api/models"
)

// Get settlement records with pagination (audit/printing)
func GetSettlementRecords(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "10")
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

	db := config.DB.Model(&models.SettlementRecord{})

	if customerStr := c.Query("customer_id"); customerStr != "" {
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

	var records []models.SettlementRecord
	if err := db.Preload("Orders").Preload("Payments").Preload("Attachments").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       records,
		"page":       page,
		"limit":      limit,
		"total":      total,
		"totalPages": int((total + int64(limit) - 1) / int64(limit)),
	})
}

func GetSettlementRecordByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record id"})
		return
	}

	var record models.SettlementRecord
	if err := config.DB.Preload("Orders").Preload("Payments").Preload("Attachments").
		First(&record, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Settlement record not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}
