package handler

import (
	"time"

	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"
	"milkline/internal/pkg/response"
	"milkline/internal/service"
	"milkline/internal/telemetry"
	"milkline/utils/validate"

	"github.com/gin-gonic/gin"
)

type MilkEntryHandler struct {
	trace            *telemetry.Trace
	milkEntryService *service.MilkEntryService
}

func NewMilkEntryHandler(trace *telemetry.Trace, milkEntryService *service.MilkEntryService) *MilkEntryHandler {
	return &MilkEntryHandler{trace: trace, milkEntryService: milkEntryService}
}

// List 集乳記錄列表
// @Summary 取得每日集乳記錄列表
// @Tags Admin-MilkEntry
// @Security BearerAuth
// @Produce json
// @Param page query int false "頁碼"
// @Param limit query int false "每頁筆數"
// @Param from query string false "起日 YYYY-MM-DD"
// @Param to query string false "迄日 YYYY-MM-DD"
// @Success 200 {array} dto.MilkEntryResponseDto
// @Failure 500 {object} map[string]string
// @Router /admin/milk-entries [get]
func (h *MilkEntryHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	page := getInt64Query(c, "page", 1)
	limit := getInt64Query(c, "limit", 20)

	from, cause, respErr := validate.ParseDateQuery(c, "from")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	to, cause, respErr := validate.ParseDateQuery(c, "to")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	entries, total, err := h.milkEntryService.ListEntries(ctx, from, to, page, limit)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Paginated(c, entries, total, page, limit)
}

// GetByDate 取得指定日期的集乳記錄
// @Summary 取得指定日期的集乳記錄
// @Tags Admin-MilkEntry
// @Security BearerAuth
// @Produce json
// @Param date path string true "日期 YYYY-MM-DD"
// @Success 200 {object} dto.MilkEntryResponseDto
// @Failure 404 {object} map[string]string
// @Router /admin/milk-entries/{date} [get]
func (h *MilkEntryHandler) GetByDate(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	date, cause, respErr := validate.ParseDateParam(c, "date")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	entry, err := h.milkEntryService.GetEntryByDate(ctx, date)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, entry)
}

// Create 建立每日集乳記錄
// @Summary 建立每日集乳記錄與配送員分配
// @Tags Admin-MilkEntry
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateMilkEntryDto true "集乳與分配資訊"
// @Success 201 {object} dto.MilkEntryResponseDto
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/milk-entries [post]
func (h *MilkEntryHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateMilkEntryDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.milkEntryService.CreateEntry(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, res)
}

// Verify 核銷配送員當日份額
// @Summary 核銷指定日期 / 配送員的份額
// @Tags Admin-MilkEntry
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.VerifyAllocationDto true "核銷對象"
// @Success 200 {object} dto.MilkEntryResponseDto
// @Failure 404 {object} map[string]string
// @Router /admin/milk-entries/verify [post]
func (h *MilkEntryHandler) Verify(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.VerifyAllocationDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.milkEntryService.VerifyAllocation(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// MyQuota 配送員視角的當日份額
// @Summary 取得自己的份額（預設今日）
// @Tags Employee
// @Security BearerAuth
// @Produce json
// @Param date query string false "日期 YYYY-MM-DD"
// @Success 200 {object} dto.MyQuotaResponseDto
// @Failure 404 {object} map[string]string
// @Router /employee/my-quota [get]
func (h *MilkEntryHandler) MyQuota(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	principal := currentPrincipal(c)
	if principal == nil {
		response.AbortWithError(c, cErr.Unauthorized("not authenticated"))
		return
	}

	var date time.Time
	date, cause, respErr := validate.ParseDateQuery(c, "date")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.milkEntryService.MyQuota(ctx, principal.ID, date)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}
