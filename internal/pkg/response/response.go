package response

import (
	"net/http"

	cErr "milkline/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

// Response API 統一回應格式（與前端 SPA 契約一致）
type Response struct {
	RequestID   string `json:"requestID,omitempty"`
	Success     bool   `json:"success"`
	Data        any    `json:"data,omitempty"`
	Message     string `json:"message,omitempty"`
	TotalPages  int64  `json:"totalPages,omitempty"`
	CurrentPage int64  `json:"currentPage,omitempty"`
	Total       int64  `json:"total,omitempty"`
}

// PageMeta 分頁資訊，由 handler 放入 context，Response middleware 統一輸出
type PageMeta struct {
	TotalPages  int64
	CurrentPage int64
	Total       int64
}

// Success 200，交由 Response middleware 統一輸出
func Success(c *gin.Context, data any) {
	c.Set("data", data)
	c.Set("httpStatus", http.StatusOK)
	c.Abort()
}

// Create 201
func Create(c *gin.Context, data any) {
	c.Set("data", data)
	c.Set("httpStatus", http.StatusCreated)
	c.Abort()
}

// SuccessMsg 200 + message（無 data 或 data 為訊息本身時使用）
func SuccessMsg(c *gin.Context, message string, data any) {
	c.Set("data", data)
	c.Set("message", message)
	c.Set("httpStatus", http.StatusOK)
	c.Abort()
}

// Paginated 200 + 分頁欄位
func Paginated(c *gin.Context, data any, total, page, limit int64) {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	c.Set("data", data)
	c.Set("pageMeta", PageMeta{TotalPages: totalPages, CurrentPage: page, Total: total})
	c.Set("httpStatus", http.StatusOK)
	c.Abort()
}

// AbortWithError 掛上錯誤並中止，由 Response middleware 輸出失敗格式
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, requestID string, httpCode int, errorCode int, msg string, desc string) {
	c.JSON(httpCode, gin.H{
		"requestID":   requestID,
		"success":     false,
		"code":        errorCode,
		"message":     msg,
		"description": desc,
	})
	c.Abort()
}

func FailByErr(c *gin.Context, requestID string, err error) {
	if v, ok := err.(*cErr.Error); ok {
		Fail(c, requestID, v.HttpCode(), v.ErrorCode(), v.Error(), v.ErrorDesc())
		return
	}
	Fail(c, requestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, err.Error(), "internal error")
}
