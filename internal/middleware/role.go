package middleware

import (
	"milkline/internal/core"
	cErr "milkline/internal/pkg/error"
	"milkline/internal/pkg/response"
	"milkline/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type RoleGuard struct {
	trace *telemetry.Trace
}

func NewRoleGuard(trace *telemetry.Trace) *RoleGuard {
	return &RoleGuard{trace: trace}
}

// AdminOnly 必須在 Auth 之後掛載；非管理員一律 403
func (m *RoleGuard) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanRoleMiddleware))

		raw, exists := c.Get(core.ContextPrincipalKey)
		principal, _ := raw.(*core.Principal)
		if !exists || principal == nil {
			m.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{Status: "missing_principal"})
			cause := cErr.Unauthorized("missing principal")
			end(cause)
			response.AbortWithError(c, cause)
			return
		}
		if !principal.IsAdmin() {
			m.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{
				PrincipalID: principal.ID.Hex(),
				Role:        string(principal.Role),
				Status:      "forbidden",
			})
			cause := cErr.Forbidden("admin access required")
			end(cause)
			response.AbortWithError(c, cause)
			return
		}

		m.trace.ApplyTraceAttributes(span, core.TraceAuthMeta{
			PrincipalID: principal.ID.Hex(),
			Role:        string(principal.Role),
			Status:      "ok",
		})
		end(nil)
		c.Next()
	}
}
