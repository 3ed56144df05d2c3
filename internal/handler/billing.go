package handler

import (
	"milkline/internal/dto"
	"milkline/internal/pkg/response"
	"milkline/internal/service"
	"milkline/internal/telemetry"
	"milkline/utils/validate"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	trace          *telemetry.Trace
	billingService *service.BillingService
}

func NewBillingHandler(trace *telemetry.Trace, billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{trace: trace, billingService: billingService}
}

func billingPeriod(c *gin.Context) *dto.BillingPeriodDto {
	return &dto.BillingPeriodDto{
		Month:     c.Query("month"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
}

// ConsumerBill 單戶帳單
// @Summary 取得單一訂奶戶的期間帳單
// @Tags Admin-Billing
// @Security BearerAuth
// @Produce json
// @Param consumerID path string true "Consumer ID"
// @Param month query string false "月份 YYYY-MM"
// @Param startDate query string false "起日 YYYY-MM-DD，與 endDate 成對，優先於 month"
// @Param endDate query string false "訖日 YYYY-MM-DD（含當日）"
// @Success 200 {object} dto.ConsumerBillDto
// @Failure 404 {object} map[string]string
// @Router /admin/billing/consumers/{consumerID} [get]
func (h *BillingHandler) ConsumerBill(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "consumerID")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	bill, err := h.billingService.ConsumerMonthlyBill(ctx, id, billingPeriod(c))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, bill)
}

// MonthlyReport 全站期間報表
// @Summary 取得全站期間報表
// @Tags Admin-Billing
// @Security BearerAuth
// @Produce json
// @Param month query string false "月份 YYYY-MM"
// @Param startDate query string false "起日 YYYY-MM-DD，與 endDate 成對，優先於 month"
// @Param endDate query string false "訖日 YYYY-MM-DD（含當日）"
// @Success 200 {object} dto.MonthlyReportDto
// @Failure 400 {object} map[string]string
// @Router /admin/billing/report [get]
func (h *BillingHandler) MonthlyReport(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	report, err := h.billingService.MonthlyReport(ctx, billingPeriod(c))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, report)
}

// Outstanding 應收清單
// @Summary 取得期間內應收金額大於零的作用中訂奶戶
// @Tags Admin-Billing
// @Security BearerAuth
// @Produce json
// @Param month query string false "月份 YYYY-MM"
// @Param startDate query string false "起日 YYYY-MM-DD，與 endDate 成對，優先於 month"
// @Param endDate query string false "訖日 YYYY-MM-DD（含當日）"
// @Success 200 {array} dto.OutstandingItemDto
// @Failure 400 {object} map[string]string
// @Router /admin/billing/outstanding [get]
func (h *BillingHandler) Outstanding(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	items, err := h.billingService.Outstanding(ctx, billingPeriod(c))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, items)
}
