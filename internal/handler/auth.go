package handler

import (
	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"
	"milkline/internal/pkg/response"
	"milkline/internal/service"
	"milkline/internal/telemetry"
	"milkline/utils/validate"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	trace       *telemetry.Trace
	authService *service.AuthService
}

func NewAuthHandler(trace *telemetry.Trace, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{trace: trace, authService: authService}
}

// Login 登入
// @Summary 管理員 / 配送員登入
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginDto true "登入資訊"
// @Success 200 {object} dto.LoginResponseDto
// @Failure 401 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.LoginDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.authService.Login(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// Me 取得目前登入者
// @Summary 目前登入者資訊
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.ProfileDto
// @Failure 401 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	principal := currentPrincipal(c)
	if principal == nil {
		response.AbortWithError(c, cErr.Unauthorized("not authenticated"))
		return
	}
	res, err := h.authService.Me(ctx, principal)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}
