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

type AssignmentHandler struct {
	trace             *telemetry.Trace
	assignmentService *service.AssignmentService
}

func NewAssignmentHandler(trace *telemetry.Trace, assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{trace: trace, assignmentService: assignmentService}
}

// List 指派列表
// @Summary 取得指派列表
// @Tags Admin-Assignment
// @Security BearerAuth
// @Produce json
// @Param page query int false "頁碼"
// @Param limit query int false "每頁筆數"
// @Param employeeId query string false "配送員 ID"
// @Param consumerId query string false "訂奶戶 ID"
// @Param isActive query bool false "啟用狀態"
// @Success 200 {array} dto.AssignmentResponseDto
// @Failure 500 {object} map[string]string
// @Router /admin/assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	page := getInt64Query(c, "page", 1)
	limit := getInt64Query(c, "limit", 20)

	filter := bson.M{}
	if raw := c.Query("employeeId"); raw != "" {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			filter["employeeId"] = id
		}
	}
	if raw := c.Query("consumerId"); raw != "" {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			filter["consumerId"] = id
		}
	}
	if isActive := c.Query("isActive"); isActive != "" {
		filter["isActive"] = isActive == "true"
	}

	assignments, total, err := h.assignmentService.ListAssignments(ctx, filter, page, limit)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Paginated(c, assignments, total, page, limit)
}

// Get 取得指派
// @Summary 取得單一指派
// @Tags Admin-Assignment
// @Security BearerAuth
// @Produce json
// @Param assignmentID path string true "Assignment ID"
// @Success 200 {object} dto.AssignmentResponseDto
// @Failure 404 {object} map[string]string
// @Router /admin/assignments/{assignmentID} [get]
func (h *AssignmentHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "assignmentID")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	assignment, err := h.assignmentService.GetAssignmentByID(ctx, id)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, assignment)
}

// Create 建立指派
// @Summary 建立配送指派
// @Tags Admin-Assignment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateAssignmentDto true "指派資訊"
// @Success 201 {object} dto.AssignmentResponseDto
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateAssignmentDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.assignmentService.CreateAssignment(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, res)
}

// Update 更新指派
// @Summary 更新指派
// @Tags Admin-Assignment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param assignmentID path string true "Assignment ID"
// @Param body body dto.UpdateAssignmentDto true "更新欄位"
// @Success 200 {object} dto.AssignmentResponseDto
// @Failure 404 {object} map[string]string
// @Router /admin/assignments/{assignmentID} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "assignmentID")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}
	var req dto.UpdateAssignmentDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.assignmentService.UpdateAssignmentByID(ctx, id, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// Delete 刪除指派
// @Summary 刪除指派
// @Tags Admin-Assignment
// @Security BearerAuth
// @Produce json
// @Param assignmentID path string true "Assignment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/assignments/{assignmentID} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "assignmentID")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	if err := h.assignmentService.DeleteAssignmentByID(ctx, id); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.SuccessMsg(c, "assignment deleted", nil)
}

// Mine 配送員本人的作用中指派
// @Summary 取得自己的配送名單
// @Tags Employee
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.AssignmentResponseDto
// @Failure 401 {object} map[string]string
// @Router /employee/assignments [get]
func (h *AssignmentHandler) Mine(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	principal := currentPrincipal(c)
	if principal == nil {
		response.AbortWithError(c, cErr.Unauthorized("not authenticated"))
		return
	}

	assignments, err := h.assignmentService.MyAssignments(ctx, principal.ID)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, assignments)
}
