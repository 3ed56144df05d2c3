package handler

import (
	"milkline/internal/dto"
	cErr "milkline/internal/pkg/error"
	"milkline/internal/pkg/response"
	"milkline/internal/service"
	"milkline/internal/telemetry"
	"milkline/utils/validate"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DeliveryHandler struct {
	trace           *telemetry.Trace
	deliveryService *service.DeliveryService
}

func NewDeliveryHandler(trace *telemetry.Trace, deliveryService *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{trace: trace, deliveryService: deliveryService}
}

// Record 記錄配送
// @Summary 記錄一筆配送
// @Tags Delivery
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.RecordDeliveryDto true "配送資訊"
// @Success 201 {object} dto.DeliveryResponseDto
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /deliveries [post]
func (h *DeliveryHandler) Record(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	principal := currentPrincipal(c)
	if principal == nil {
		response.AbortWithError(c, cErr.Unauthorized("not authenticated"))
		return
	}

	var req dto.RecordDeliveryDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.deliveryService.RecordDelivery(ctx, principal, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, res)
}

// List 配送記錄列表。配送員只看得到自己的記錄
// @Summary 取得配送記錄列表
// @Tags Delivery
// @Security BearerAuth
// @Produce json
// @Param page query int false "頁碼"
// @Param limit query int false "每頁筆數"
// @Param consumerId query string false "訂奶戶 ID"
// @Param employeeId query string false "配送員 ID（僅管理員）"
// @Param from query string false "起日 YYYY-MM-DD"
// @Param to query string false "迄日 YYYY-MM-DD"
// @Success 200 {array} dto.DeliveryResponseDto
// @Failure 500 {object} map[string]string
// @Router /deliveries [get]
func (h *DeliveryHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	principal := currentPrincipal(c)
	if principal == nil {
		response.AbortWithError(c, cErr.Unauthorized("not authenticated"))
		return
	}

	page := getInt64Query(c, "page", 1)
	limit := getInt64Query(c, "limit", 20)

	filter := bson.M{}
	if raw := c.Query("consumerId"); raw != "" {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			filter["consumerId"] = id
		}
	}
	if raw := c.Query("employeeId"); raw != "" {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			filter["employeeId"] = id
		}
	}

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
	dateRange := bson.M{}
	if !from.IsZero() {
		dateRange["$gte"] = from
	}
	if !to.IsZero() {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		filter["deliveryDate"] = dateRange
	}

	deliveries, total, err := h.deliveryService.ListDeliveries(ctx, principal, filter, page, limit)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Paginated(c, deliveries, total, page, limit)
}
