package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/fleetpay-backend/handlers"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, adminKey string) {
	router.GET("/health", handlers.Health)

	v1 := router.Group("/api/v1", handlers.ActorMiddleware())
	{
		// Account level endpoints
		v1.GET("/workspaces", handlers.ListWorkspaces)
		v1.POST("/workspaces", handlers.CreateWorkspace)
		v1.PUT("/workspaces/:id", handlers.UpdateWorkspace)
		v1.DELETE("/workspaces/:id", handlers.DeleteWorkspace)

		v1.GET("/managers", handlers.ListManagers)
		v1.POST("/managers", handlers.SaveManager)
		v1.DELETE("/managers/:id", handlers.DeleteManager)
	}

	ws := v1.Group("", handlers.RequireWorkspace())
	{
		ws.GET("/dashboard", handlers.Dashboard)

		// Roster endpoints
		ws.GET("/drivers", handlers.ListDrivers)
		ws.POST("/drivers", handlers.CreateDriver)
		ws.PUT("/drivers/:id", handlers.UpdateDriver)
		ws.DELETE("/drivers/:id", handlers.DeleteDriver)

		// Ledger endpoints
		ws.GET("/advances", handlers.ListAdvances)
		ws.POST("/advances", handlers.CreateAdvance)
		ws.DELETE("/advances/:id", handlers.DeleteAdvance)
		ws.GET("/deductions", handlers.ListDeductions)
		ws.POST("/deductions", handlers.CreateDeduction)
		ws.DELETE("/deductions/:id", handlers.DeleteDeduction)

		// Trip endpoints
		ws.GET("/trips", handlers.ListTrips)
		ws.POST("/trips", handlers.SaveTrip)
		ws.POST("/trips/:id/complete", handlers.CompleteTrip)
		ws.DELETE("/trips/:id", handlers.DeleteTrip)
		ws.GET("/trip-templates", handlers.ListTripTemplates)
		ws.POST("/trip-templates", handlers.CreateTripTemplate)
		ws.DELETE("/trip-templates/:id", handlers.DeleteTripTemplate)

		// Payroll endpoints
		ws.GET("/payroll/:month", handlers.PreviewPayroll)
		ws.POST("/payroll/:month/close", handlers.ClosePayroll)
		ws.GET("/payroll/:month/records", handlers.PayrollHistory)
		ws.GET("/payroll/:month/export", handlers.ExportPayroll)

		// Settings endpoints
		ws.GET("/settings", handlers.GetSettings)
		ws.PUT("/settings", handlers.UpdateSettings)
	}

	admin := router.Group("/admin", handlers.AdminKeyMiddleware(adminKey))
	{
		admin.PUT("/accounts/:id/lock", handlers.SetAccountLock)
	}
}
