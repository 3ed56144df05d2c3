package handler

import (
	"milkline/internal/dto"
	"milkline/internal/pkg/response"
	"milkline/internal/service"
	"milkline/internal/telemetry"
	"milkline/utils/validate"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	trace           *telemetry.Trace
	settingsService *service.SettingsService
}

func NewSettingsHandler(trace *telemetry.Trace, settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{trace: trace, settingsService: settingsService}
}

// Get 取得系統設定
// @Summary 取得系統設定
// @Tags Admin-Settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.SettingsResponseDto
// @Router /admin/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	settings, err := h.settingsService.GetSettings(ctx)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, settings)
}

// Update 更新系統設定
// @Summary 更新系統設定
// @Tags Admin-Settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.UpdateSettingsDto true "設定欄位"
// @Success 200 {object} dto.SettingsResponseDto
// @Failure 400 {object} map[string]string
// @Router /admin/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.UpdateSettingsDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	settings, err := h.settingsService.UpdateSettings(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, settings)
}
