package router

import (
	"milkline/internal/handler"
	"milkline/internal/middleware"

	"github.com/gin-gonic/gin"
)

type DeliveryRouter struct {
	deliveryHandler *handler.DeliveryHandler
	auth            *middleware.Auth
}

func NewDeliveryRouter(
	deliveryHandler *handler.DeliveryHandler,
	auth *middleware.Auth,
) *DeliveryRouter {
	return &DeliveryRouter{
		deliveryHandler: deliveryHandler,
		auth:            auth,
	}
}

// 管理員與配送員皆可使用；角色限制由 service 層處理
func (dr *DeliveryRouter) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/deliveries", dr.auth.Handler())
	{
		g.POST("", dr.deliveryHandler.Record)
		g.GET("", dr.deliveryHandler.List)
	}
}
