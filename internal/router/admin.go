package router

import (
	"milkline/internal/handler"
	"milkline/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AdminRouter struct {
	employeeHandler   *handler.EmployeeHandler
	consumerHandler   *handler.ConsumerHandler
	assignmentHandler *handler.AssignmentHandler
	milkEntryHandler  *handler.MilkEntryHandler
	billingHandler    *handler.BillingHandler
	settingsHandler   *handler.SettingsHandler
	auth              *middleware.Auth
	roleGuard         *middleware.RoleGuard
}

func NewAdminRouter(
	employeeHandler *handler.EmployeeHandler,
	consumerHandler *handler.ConsumerHandler,
	assignmentHandler *handler.AssignmentHandler,
	milkEntryHandler *handler.MilkEntryHandler,
	billingHandler *handler.BillingHandler,
	settingsHandler *handler.SettingsHandler,
	auth *middleware.Auth,
	roleGuard *middleware.RoleGuard,
) *AdminRouter {
	return &AdminRouter{
		employeeHandler:   employeeHandler,
		consumerHandler:   consumerHandler,
		assignmentHandler: assignmentHandler,
		milkEntryHandler:  milkEntryHandler,
		billingHandler:    billingHandler,
		settingsHandler:   settingsHandler,
		auth:              auth,
		roleGuard:         roleGuard,
	}
}

func (ar *AdminRouter) RegisterRoutes(r *gin.Engine) {
	admin := r.Group("/admin", ar.auth.Handler(), ar.roleGuard.AdminOnly())

	employees := admin.Group("/employees")
	{
		employees.GET("", ar.employeeHandler.List)
		employees.GET("/:employeeID", ar.employeeHandler.Get)
		employees.POST("", ar.employeeHandler.Create)
		employees.PUT("/:employeeID", ar.employeeHandler.Update)
		employees.POST("/:employeeID/reset-password", ar.employeeHandler.ResetPassword)
		employees.DELETE("/:employeeID", ar.employeeHandler.Delete)
	}

	consumers := admin.Group("/consumers")
	{
		// 固定路徑需先於 :consumerID 註冊
		consumers.GET("/areas", ar.consumerHandler.Areas)
		consumers.GET("", ar.consumerHandler.List)
		consumers.GET("/:consumerID", ar.consumerHandler.Get)
		consumers.POST("", ar.consumerHandler.Create)
		consumers.PUT("/:consumerID", ar.consumerHandler.Update)
		consumers.DELETE("/:consumerID", ar.consumerHandler.Delete)
	}

	assignments := admin.Group("/assignments")
	{
		assignments.GET("", ar.assignmentHandler.List)
		assignments.GET("/:assignmentID", ar.assignmentHandler.Get)
		assignments.POST("", ar.assignmentHandler.Create)
		assignments.PUT("/:assignmentID", ar.assignmentHandler.Update)
		assignments.DELETE("/:assignmentID", ar.assignmentHandler.Delete)
	}

	milkEntries := admin.Group("/milk-entries")
	{
		milkEntries.GET("", ar.milkEntryHandler.List)
		milkEntries.POST("", ar.milkEntryHandler.Create)
		milkEntries.POST("/verify", ar.milkEntryHandler.Verify)
		milkEntries.GET("/:date", ar.milkEntryHandler.GetByDate)
	}

	billing := admin.Group("/billing")
	{
		billing.GET("/consumers/:consumerID", ar.billingHandler.ConsumerBill)
		billing.GET("/report", ar.billingHandler.MonthlyReport)
		billing.GET("/outstanding", ar.billingHandler.Outstanding)
	}

	settings := admin.Group("/settings")
	{
		settings.GET("", ar.settingsHandler.Get)
		settings.PUT("", ar.settingsHandler.Update)
	}
}
