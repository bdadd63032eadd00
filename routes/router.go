package routes

import (
	"cobranca-api/controllers"
	"cobranca-api/middlewares"
	"cobranca-api/models"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {

	r.POST("/login", controllers.Login)

	// Orders and deposits
	orders := r.Group("/orders")
	orders.Use(middlewares.AuthMiddleware())
	{
		orders.GET("/", controllers.GetOrders)
		orders.GET("/:id", controllers.GetOrderByID)
		orders.GET("/:id/history", controllers.GetOrderHistory)
		orders.POST("/", middlewares.RoleMiddleware(models.RoleAdmin), controllers.CreateOrder)
		orders.POST("/:id/deposits", middlewares.RoleMiddleware(models.RoleAdmin), controllers.AddDeposit)
	}

	// Credit ledger
	credits := r.Group("/credits")
	credits.Use(middlewares.AuthMiddleware())
	{
		credits.GET("/", controllers.GetCredits)
		credits.GET("/available", controllers.GetAvailableCredit)
	}

	// Direct settlement (admin only)
	settlements := r.Group("/settlements")
	settlements.Use(middlewares.AuthMiddleware(), middlewares.RoleMiddleware(models.RoleAdmin))
	{
		settlements.POST("/", controllers.CreateSettlement)
	}

	// Settlement records (audit/printing)
	records := r.Group("/settlement-records")
	records.Use(middlewares.AuthMiddleware(), middlewares.RoleMiddleware(models.RoleAdmin))
	{
		records.GET("/", controllers.GetSettlementRecords)
		records.GET("/:id", controllers.GetSettlementRecordByID)
	}

	// Pending settlements (remote submission + admin review)
	pending := r.Group("/pending-settlements")
	pending.Use(middlewares.AuthMiddleware())
	{
		pending.POST("/", middlewares.RoleMiddleware(models.RoleRepresentative, models.RoleCustomer), controllers.CreatePendingSettlement)
		pending.GET("/", controllers.GetPendingSettlements)
		pending.GET("/:id", controllers.GetPendingSettlementByID)
		pending.PUT("/:id", middlewares.RoleMiddleware(models.RoleAdmin), controllers.UpdatePendingSettlement)
		pending.POST("/:id/approve", middlewares.RoleMiddleware(models.RoleAdmin), controllers.ApprovePendingSettlement)
		pending.POST("/:id/reject", middlewares.RoleMiddleware(models.RoleAdmin), controllers.RejectPendingSettlement)
	}

	// Dashboard (admin only)
	dashboard := r.Group("/dashboard")
	dashboard.Use(middlewares.AuthMiddleware(), middlewares.RoleMiddleware(models.RoleAdmin))
	{
		dashboard.GET("/", controllers.GetDashboard)
	}
}
