package middleware

import (
	"strings"

	"milkline/internal/core"
	cErr "milkline/internal/pkg/error"
	"milkline/internal/pkg/response"
	"milkline/internal/service"
	"milkline/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Auth struct {
	logger      *zap.Logger
	trace       *telemetry.Trace
	authService *service.AuthService
}

func NewAuth(
	logger *zap.Logger,
	trace *telemetry.Trace,
	authService *service.AuthService,
) *Auth {
	return &Auth{
		logger:      logger,
		trace:       trace,
		authService: authService,
	}
}

// Handler 驗證 Bearer token 並把 Principal 放入 context 供下游使用
func (m *Auth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanAuthMiddleware))

		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			m.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{Status: "missing_token"})
			cause := cErr.Unauthorized("missing bearer token")
			end(cause)
			response.AbortWithError(c, cause)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		principal, err := m.authService.ParseToken(token)
		if err != nil {
			m.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{Status: "invalid_token"})
			m.logger.Warn("[Auth] token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			end(err)
			response.AbortWithError(c, err)
			return
		}

		m.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{
			PrincipalID: principal.ID.Hex(),
			Role:        string(principal.Role),
			Status:      "ok",
		})
		end(nil)

		c.Set(core.ContextPrincipalKey, principal)
		c.Next()
	}
}
