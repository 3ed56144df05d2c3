package error

import "net/http"

type Error struct {
	httpCode  int
	errorCode int
	errorMsg  string
	errorDesc string
}

func New(httpCode, errorCode int, errorMsg string, errorDesc string) *Error {
	return &Error{
		httpCode:  httpCode,
		errorCode: errorCode,
		errorMsg:  errorMsg,
		errorDesc: errorDesc,
	}
}

func From(err error) *Error {
	if appErr, ok := err.(*Error); ok {
		return appErr
	}
	return InternalServer(err.Error())
}

func (e *Error) Error() string    { return e.errorMsg }
func (e *Error) HttpCode() int    { return e.httpCode }
func (e *Error) ErrorCode() int   { return e.errorCode }
func (e *Error) ErrorDesc() string { return e.errorDesc }

// ✅ 用戶端錯誤 (400 系列)
func ValidateErr(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_BODY, "bad-request/body", errorDesc)
}
func ValidatePathParamsErr(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_PARAMS, "bad-request/params", errorDesc)
}
func BadRequestParams(errorDesc string) *Error {
	return New(http.StatusBadRequest, BAD_REQUEST_PARAMS, "bad-request-params", errorDesc)
}

// ✅ 配奶領域錯誤（語義化建構器）
func DuplicateEntry(errorDesc string) *Error {
	return New(http.StatusBadRequest, DUPLICATE_ENTRY, "duplicate-entry", errorDesc)
}
func DuplicateAssignment(errorDesc string) *Error {
	return New(http.StatusBadRequest, DUPLICATE_ASSIGNMENT, "duplicate-assignment", errorDesc)
}
func DuplicateDelivery(errorDesc string) *Error {
	return New(http.StatusBadRequest, DUPLICATE_DELIVERY, "duplicate-delivery", errorDesc)
}
func OverAllocation(errorDesc string) *Error {
	return New(http.StatusBadRequest, OVER_ALLOCATION, "over-allocation", errorDesc)
}
func QuotaExceeded(errorDesc string) *Error {
	return New(http.StatusBadRequest, QUOTA_EXCEEDED, "quota-exceeded", errorDesc)
}
func NotAssigned(errorDesc string) *Error {
	return New(http.StatusBadRequest, NOT_ASSIGNED, "not-assigned", errorDesc)
}

// ✅ 權限錯誤 (401, 403)
func Unauthorized(errorDesc string) *Error {
	return New(http.StatusUnauthorized, UNAUTHORIZED, "unauthorized", errorDesc)
}
func InvalidSession(errorDesc string) *Error {
	return New(http.StatusUnauthorized, INVALID_SESSION, "invalid-session", errorDesc)
}
func Forbidden(errorDesc string) *Error {
	return New(http.StatusForbidden, FORBIDDEN, "forbidden", errorDesc)
}

// ✅ 資源錯誤 (404)
func NotFound(errorDesc string) *Error {
	return New(http.StatusNotFound, NOT_FOUND, "not-found", errorDesc)
}

// ✅ 流量限制 (429)
func RateLimitExceeded(errorDesc string) *Error {
	return New(http.StatusTooManyRequests, RATE_LIMIT_EXCEEDED, "rate-limit-exceeded", errorDesc)
}

// ✅ 伺服器內部錯誤 (500 系列)
func InternalServer(errorDesc string) *Error {
	return New(http.StatusInternalServerError, INTERNAL_ERROR, "internal-server-error", errorDesc)
}
func DatabaseError(errorDesc string) *Error {
	return New(http.StatusInternalServerError, DATABASE_ERROR, "database-error", errorDesc)
}
func ServiceUnavailable(errorDesc string) *Error {
	return New(http.StatusServiceUnavailable, SERVICE_UNAVAILABLE, "service-unavailable", errorDesc)
}
func RateLimiterUnavailable(desc string) *Error {
	return New(http.StatusServiceUnavailable, SERVICE_UNAVAILABLE, "rate-limiter-unavailable", desc)
}

// MapHttpStatusToError 把下游裸 HTTP status 轉成應用錯誤，交由 Recovery 統一輸出
func MapHttpStatusToError(status int, desc string) *Error {
	switch status {
	case http.StatusBadRequest:
		return BadRequestParams(desc)
	case http.StatusUnauthorized:
		return Unauthorized(desc)
	case http.StatusForbidden:
		return Forbidden(desc)
	case http.StatusNotFound:
		return NotFound(desc)
	case http.StatusTooManyRequests:
		return RateLimitExceeded(desc)
	case http.StatusServiceUnavailable:
		return ServiceUnavailable(desc)
	default:
		return InternalServer(desc)
	}
}
