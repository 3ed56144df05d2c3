package handler

import (
	"milkline/internal/dto"
	"milkline/internal/pkg/response"
	"milkline/internal/service"
	"milkline/internal/telemetry"
	"milkline/utils/validate"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type EmployeeHandler struct {
	trace           *telemetry.Trace
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(trace *telemetry.Trace, employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{trace: trace, employeeService: employeeService}
}

// List 配送員列表
// @Summary 取得配送員列表
// @Tags Admin-Employee
// @Security BearerAuth
// @Produce json
// @Param page query int false "頁碼"
// @Param limit query int false "每頁筆數"
// @Param area query string false "配送區域"
// @Param isActive query bool false "啟用狀態"
// @Success 200 {array} dto.EmployeeResponseDto
// @Failure 500 {object} map[string]string
// @Router /admin/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	page := getInt64Query(c, "page", 1)
	limit := getInt64Query(c, "limit", 20)

	filter := bson.M{}
	if area := c.Query("area"); area != "" {
		filter["assignedArea"] = area
	}
	if isActive := c.Query("isActive"); isActive != "" {
		filter["isActive"] = isActive == "true"
	}

	employees, total, err := h.employeeService.ListEmployees(ctx, filter, page, limit)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Paginated(c, employees, total, page, limit)
}

// Get 取得配送員
// @Summary 取得單一配送員
// @Tags Admin-Employee
// @Security BearerAuth
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponseDto
// @Failure 404 {object} map[string]string
// @Router /admin/employees/{employeeID} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "employeeID")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(ctx, id)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, employee)
}

// Create 新增配送員
// @Summary 新增配送員
// @Tags Admin-Employee
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateEmployeeDto true "配送員資訊"
// @Success 201 {object} dto.EmployeeResponseDto
// @Failure 400 {object} map[string]string
// @Router /admin/employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateEmployeeDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.employeeService.CreateEmployee(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, res)
}

// Update 更新配送員
// @Summary 更新配送員
// @Tags Admin-Employee
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param body body dto.UpdateEmployeeDto true "更新欄位"
// @Success 200 {object} dto.EmployeeResponseDto
// @Failure 404 {object} map[string]string
// @Router /admin/employees/{employeeID} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "employeeID")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}
	var req dto.UpdateEmployeeDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	res, err := h.employeeService.UpdateEmployeeByID(ctx, id, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, res)
}

// ResetPassword 重設配送員密碼
// @Summary 重設配送員密碼
// @Tags Admin-Employee
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param body body dto.ResetPasswordDto true "新密碼"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/employees/{employeeID}/reset-password [post]
func (h *EmployeeHandler) ResetPassword(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "employeeID")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}
	var req dto.ResetPasswordDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.employeeService.ResetPassword(ctx, id, &req); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.SuccessMsg(c, "password reset", nil)
}

// Delete 刪除配送員
// @Summary 刪除配送員
// @Tags Admin-Employee
// @Security BearerAuth
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/employees/{employeeID} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, err := validate.ParseObjectID(c, "employeeID")
	if err != nil {
		end(cause)
		response.AbortWithError(c, err)
		return
	}

	if err := h.employeeService.DeleteEmployeeByID(ctx, id); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.SuccessMsg(c, "employee deleted", nil)
}
