package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cobranca-api/config"
	"cobranca-api/dtos"
	"cobranca-api/models"
	"cobranca-api/services"
	"cobranca-api/utils"
)

// settlementErrorStatus maps engine failures onto HTTP statuses. Unknown
// errors stay 500 so they reach the operator's logs.
func settlementErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidPaymentAmount),
		errors.Is(err, services.ErrMalformedSettlementRequest),
		errors.Is(err, services.ErrInsufficientCreditRequested),
		errors.Is(err, services.ErrApprovalPreconditionFailed),
		errors.Is(err, services.ErrRejectionReasonRequired),
		errors.Is(err, services.ErrAttachmentRequired):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrRequestNotPending),
		errors.Is(err, services.ErrStaleOrder),
		errors.Is(err, services.ErrStaleCredit):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Create a direct settlement (admin path). The overpayment confirmation is
// a UI concern; by the time the request lands here it is final.
func CreateSettlement(c *gin.Context) {
	var input dtos.DirectSettlementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	operatorID := utils.GetUserID(c)
	if operatorID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Operator identity required"})
		return
	}

	var operator models.User
	if err := config.DB.First(&operator, *operatorID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Operator not found"})
		return
	}

	service := services.NewSettlementService()
	record, outcome, warnings, err := service.SettleDirect(operator.ID, operator.Username, input)
	if err != nil {
		c.JSON(settlementErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"record":  record,
		"outcome": outcome,
	}
	if len(warnings) > 0 {
		response["warnings"] = warnings
	}

	c.JSON(http.StatusCreated, response)
}
