package handler

import (
	"strconv"

	"milkline/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
)

// ProviderSet Provider对象集合
var ProviderSet = wire.NewSet(
	NewAuthHandler,
	NewEmployeeHandler,
	NewConsumerHandler,
	NewAssignmentHandler,
	NewMilkEntryHandler,
	NewDeliveryHandler,
	NewBillingHandler,
	NewSettingsHandler,
	NewHealthHandler,
)

func getInt64Query(c *gin.Context, key string, defaultVal int64) int64 {
	if v := c.Query(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}

// currentPrincipal 取出 auth middleware 放入的身份；未經驗證路由回 nil
func currentPrincipal(c *gin.Context) *core.Principal {
	if v, ok := c.Get(core.ContextPrincipalKey); ok {
		if p, ok := v.(*core.Principal); ok {
			return p
		}
	}
	return nil
}
