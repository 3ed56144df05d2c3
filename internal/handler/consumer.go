package handler

import (
	"milkline/internal/dto"
	"milkline/internal/pkg/response"
	"milkline/internal/service"
	"milkline/internal/telemetry"
	"milkline/utils/validate"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConsumerHandler struct {
	trace           *telemetry.Trace
	consumerService *service.ConsumerService
}

func NewConsumerHandler(trace *telemetry.Trace, consumerService *service.ConsumerService) *ConsumerHandler {
	return &ConsumerHandler{trace: trace, consumerService: consumerService}
}

// List 訂奶戶列表
// @Summary 取得訂奶戶列表
// @Tags Admin-Consumer
// @Security BearerAuth
// @Produce json
// @Param page query int false "頁碼"
// @Param limit query int false "每頁筆數"
// @Param area query string false "配送區域"
// @Param isActive query bool false "啟用狀態"
// @Param assignedEmployee query string false "指派配送員 ID"
// @Success 200 {array} dto.ConsumerResponseDto
// @Failure 500 {object} map[string]string
// @Router /admin/consumers [get]
func (h *ConsumerHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	page := getInt64Query(c, "page", 1)
	limit := getInt64Query(c, "limit", 20)

	filter := bson.M{}
	if area := c.Query("area"); area != "" {
		filter["area"] = area
	}
	if isActive := c.Query("isActive"); isActive != "" {
		filter["isActive"] = isActive == "true"
	}
	if raw := c.Query("assignedEmployee"); raw != "" {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			filter["assignedEmployee"] = id
		}
	}

	consumers, total, err := h.consumerService.ListConsumers(ctx, filter, page, limit)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Paginated(c, consumers, total, page, limit)
}

// Get 取得訂奶戶
// @Summary 取得單一訂奶戶
// @Tags Admin-Consumer
// @Security BearerAuth
// @Produce json
// @Param consumerID path string true "Consumer ID"
// @Success 200 {object} dto.ConsumerResponseDto
// @Failure 404 {object} map[string]string
// @Router /admin/consumers/{consumerID} [get]
func (h *ConsumerHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "consumerID")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	consumer, err := h.consumerService.GetConsumerByID(ctx, id)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, consumer)
}

// Create 新增訂奶戶
// @Summary 新增訂奶戶
// @Tags Admin-Consumer
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateConsumerDto true "訂奶戶資訊"
// @Success 201 {object} dto.ConsumerResponseDto
// @Failure 400 {object} map[string]string
// @Router /admin/consumers [post]
func (h *ConsumerHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateConsumerDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.consumerService.CreateConsumer(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, res)
}

// Update 更新訂奶戶
// @Summary 更新訂奶戶
// @Tags Admin-Consumer
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param consumerID path string true "Consumer ID"
// @Param body body dto.UpdateConsumerDto true "更新欄位"
// @Success 200 {object} dto.ConsumerResponseDto
// @Failure 404 {object} map[string]string
// @Router /admin/consumers/{consumerID} [put]
func (h *ConsumerHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "consumerID")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}
	var req dto.UpdateConsumerDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.consumerService.UpdateConsumerByID(ctx, id, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// Delete 刪除訂奶戶
// @Summary 刪除訂奶戶
// @Tags Admin-Consumer
// @Security BearerAuth
// @Produce json
// @Param consumerID path string true "Consumer ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/consumers/{consumerID} [delete]
func (h *ConsumerHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "consumerID")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	if err := h.consumerService.DeleteConsumerByID(ctx, id); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.SuccessMsg(c, "consumer deleted", nil)
}

// Areas 配送區域清單
// @Summary 取得配送區域清單
// @Tags Admin-Consumer
// @Security BearerAuth
// @Produce json
// @Success 200 {array} string
// @Router /admin/consumers/areas [get]
func (h *ConsumerHandler) Areas(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	areas, err := h.consumerService.ListAreas(ctx)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, areas)
}
