package router

import (
	"milkline/internal/handler"
	"milkline/internal/middleware"

	"github.com/gin-gonic/gin"
)

type AuthRouter struct {
	authHandler *handler.AuthHandler
	auth        *middleware.Auth
}

func NewAuthRouter(
	authHandler *handler.AuthHandler,
	auth *middleware.Auth,
) *AuthRouter {
	return &AuthRouter{
		authHandler: authHandler,
		auth:        auth,
	}
}

func (ar *AuthRouter) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/auth")
	{
		g.POST("/login", ar.authHandler.Login)
		g.GET("/me", ar.auth.Handler(), ar.authHandler.Me)
	}
}
