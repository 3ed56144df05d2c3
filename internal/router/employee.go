package router

import (
	"milkline/internal/handler"
	"milkline/internal/middleware"

	"github.com/gin-gonic/gin"
)

type EmployeeRouter struct {
	assignmentHandler *handler.AssignmentHandler
	milkEntryHandler  *handler.MilkEntryHandler
	auth              *middleware.Auth
}

func NewEmployeeRouter(
	assignmentHandler *handler.AssignmentHandler,
	milkEntryHandler *handler.MilkEntryHandler,
	auth *middleware.Auth,
) *EmployeeRouter {
	return &EmployeeRouter{
		assignmentHandler: assignmentHandler,
		milkEntryHandler:  milkEntryHandler,
		auth:              auth,
	}
}

func (er *EmployeeRouter) RegisterRoutes(r *gin.Engine) {
	employee := r.Group("/employee", er.auth.Handler())
	{
		employee.GET("/assignments", er.assignmentHandler.Mine)
		employee.GET("/my-quota", er.milkEntryHandler.MyQuota)
	}
}
